package domain

import (
	"fmt"
	"slices"
	"strings"
)

type ResidentStatus string

const (
	ResidentActive      ResidentStatus = "active"
	ResidentCheckingOut ResidentStatus = "checking-out"
	ResidentCheckedOut  ResidentStatus = "checked-out"
)

// next holds the only forward step allowed from each status.
var nextResidentStatus = map[ResidentStatus]ResidentStatus{
	ResidentActive:      ResidentCheckingOut,
	ResidentCheckingOut: ResidentCheckedOut,
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type Resident struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	RoomNumber       string             `json:"room_number"`
	BedNumber        int                `json:"bed_number"`
	Phone            string             `json:"phone,omitempty"`
	Email            string             `json:"email,omitempty"`
	CheckIn          Date               `json:"check_in"`
	CheckOut         Date               `json:"check_out"`
	Status           ResidentStatus     `json:"status"`
	EmergencyContact EmergencyContact   `json:"emergency_contact"`
	Attendance       []AttendanceRecord `json:"attendance,omitempty"`
}

func (r Resident) Key() string { return r.ID }

func (r Resident) Clone() Resident {
	c := r
	c.Attendance = slices.Clone(r.Attendance)
	return c
}

func (r Resident) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: resident name is required", ErrInvalidInput)
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out are required", ErrInvalidInput)
	}
	if r.CheckOut.Before(r.CheckIn) {
		return ErrInvalidStay
	}
	return nil
}

// Advance moves the resident one step along active -> checking-out -> checked-out.
func (r Resident) Advance(to ResidentStatus) (Resident, error) {
	if next, ok := nextResidentStatus[r.Status]; !ok || next != to {
		return r, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	c := r.Clone()
	c.Status = to
	return c, nil
}

func (r Resident) WithAttendance(date Date, present bool, note string) Resident {
	c := r
	c.Attendance = ToggleAttendance(r.Attendance, date, present, note)
	return c
}

func (r Resident) AttendanceOn(date Date) (AttendanceRecord, bool) {
	for _, a := range r.Attendance {
		if a.Date == date {
			return a, true
		}
	}
	return AttendanceRecord{}, false
}
