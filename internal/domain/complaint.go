package domain

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "pending"
	ComplaintResolved ComplaintStatus = "resolved"
)

type Complaint struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    Priority        `json:"priority"`
	Status      ComplaintStatus `json:"status"`
	SubmittedBy string          `json:"submitted_by"`
	RoomNumber  string          `json:"room_number"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Category    string          `json:"category"`
}

func (c Complaint) Key() string { return c.ID }

func (c Complaint) Clone() Complaint { return c }

func (c Complaint) Validate() error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: complaint title and description are required", ErrInvalidInput)
	}
	return nil
}

func (c Complaint) Resolve() (Complaint, error) {
	if c.Status == ComplaintResolved {
		return c, ErrAlreadyResolved
	}
	c.Status = ComplaintResolved
	return c, nil
}
