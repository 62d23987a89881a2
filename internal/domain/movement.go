package domain

import (
	"fmt"
	"strings"
)

type MovementStatus string

const (
	MovementOngoing  MovementStatus = "ongoing"
	MovementReturned MovementStatus = "returned"
	MovementOverdue  MovementStatus = "overdue"
)

// Movement is one entry of the in/out register, denormalised with the
// resident's name and bed so the register can be searched without a join.
type Movement struct {
	ID            string         `json:"id"`
	ResidentID    string         `json:"resident_id"`
	ResidentName  string         `json:"resident_name"`
	RoomNumber    string         `json:"room_number"`
	BedNumber     int            `json:"bed_number"`
	Destination   string         `json:"destination"`
	Purpose       string         `json:"purpose"`
	DepartureDate Date           `json:"departure_date"`
	ReturnDate    Date           `json:"return_date"`
	Status        MovementStatus `json:"status"`
}

func (m Movement) Key() string { return m.ID }

func (m Movement) Clone() Movement { return m }

func (m Movement) Validate() error {
	if strings.TrimSpace(m.Destination) == "" || strings.TrimSpace(m.Purpose) == "" {
		return fmt.Errorf("%w: destination and purpose are required", ErrInvalidInput)
	}
	if m.DepartureDate.IsZero() || m.ReturnDate.IsZero() {
		return fmt.Errorf("%w: departure and return dates are required", ErrInvalidInput)
	}
	if m.ReturnDate.Before(m.DepartureDate) {
		return fmt.Errorf("%w: return date is before departure", ErrInvalidInput)
	}
	return nil
}

// MarkReturned closes an ongoing or overdue movement.
func (m Movement) MarkReturned(on Date) (Movement, error) {
	if m.Status == MovementReturned {
		return m, fmt.Errorf("%w: movement %s already returned", ErrInvalidTransition, m.ID)
	}
	m.Status = MovementReturned
	if !on.IsZero() {
		m.ReturnDate = on
	}
	return m, nil
}

// Overdue reports whether an ongoing movement is past its return date.
func (m Movement) Overdue(today Date) bool {
	return m.Status == MovementOngoing && m.ReturnDate.Before(today)
}
