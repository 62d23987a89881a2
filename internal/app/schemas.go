package app

import (
	"strconv"
	"time"

	"hostel_portal/internal/domain"
	"hostel_portal/internal/listing"
)

// List schemas: which fields each page searches, what its status filter reads
// and the sort keys it accepts.

var ResidentSchema = listing.Schema[domain.Resident]{
	Fields: func(r domain.Resident) []string {
		return []string{r.Name, r.RoomNumber, r.Email, r.Phone}
	},
	Status: func(r domain.Resident) string { return string(r.Status) },
	Sorts: map[string]func(a, b domain.Resident) int{
		"name":      listing.ByString(func(r domain.Resident) string { return r.Name }),
		"room":      listing.ByString(func(r domain.Resident) string { return r.RoomNumber }),
		"check_in":  listing.ByTime(func(r domain.Resident) time.Time { return r.CheckIn.Time() }),
		"check_out": listing.ByTime(func(r domain.Resident) time.Time { return r.CheckOut.Time() }),
	},
}

var RoomSchema = listing.Schema[domain.Room]{
	Fields: func(r domain.Room) []string {
		out := []string{r.Number, string(r.Type)}
		for _, rr := range r.Residents {
			out = append(out, rr.Name)
		}
		return out
	},
	Status: func(r domain.Room) string { return string(r.Status) },
	Sorts: map[string]func(a, b domain.Room) int{
		"number":       listing.ByString(func(r domain.Room) string { return r.Number }),
		"type":         listing.ByString(func(r domain.Room) string { return string(r.Type) }),
		"occupancy":    listing.ByNumber(func(r domain.Room) int { return r.CurrentOccupants }),
		"last_cleaned": listing.ByTime(func(r domain.Room) time.Time { return r.LastCleaned.Time() }),
	},
}

var PollSchema = listing.Schema[domain.Poll]{
	Fields: func(p domain.Poll) []string { return []string{p.Title, p.Description, string(p.Category)} },
	Status: func(p domain.Poll) string { return string(p.Status) },
	Sorts: map[string]func(a, b domain.Poll) int{
		"title":    listing.ByString(func(p domain.Poll) string { return p.Title }),
		"created":  listing.ByTime(func(p domain.Poll) time.Time { return p.CreatedAt }),
		"-created": listing.Desc(listing.ByTime(func(p domain.Poll) time.Time { return p.CreatedAt })),
		"votes":    listing.Desc(listing.ByNumber(func(p domain.Poll) int { return p.TotalVotes })),
	},
}

var ComplaintSchema = listing.Schema[domain.Complaint]{
	Fields: func(c domain.Complaint) []string {
		return []string{c.Title, c.Description, c.SubmittedBy, c.RoomNumber, c.Category}
	},
	Status: func(c domain.Complaint) string { return string(c.Status) },
	Sorts: map[string]func(a, b domain.Complaint) int{
		"submitted": listing.Desc(listing.ByTime(func(c domain.Complaint) time.Time { return c.SubmittedAt })),
		"priority":  listing.ByNumber(func(c domain.Complaint) int { return priorityRank(c.Priority) }),
		"title":     listing.ByString(func(c domain.Complaint) string { return c.Title }),
		"submitter": listing.ByString(func(c domain.Complaint) string { return c.SubmittedBy }),
	},
}

func priorityRank(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 0
	case domain.PriorityMedium:
		return 1
	}
	return 2
}

var MovementSchema = listing.Schema[domain.Movement]{
	Fields: func(m domain.Movement) []string {
		return []string{m.ResidentName, m.RoomNumber, m.Destination, m.Purpose}
	},
	Status: func(m domain.Movement) string { return string(m.Status) },
	Sorts: map[string]func(a, b domain.Movement) int{
		"departure": listing.ByTime(func(m domain.Movement) time.Time { return m.DepartureDate.Time() }),
		"return":    listing.ByTime(func(m domain.Movement) time.Time { return m.ReturnDate.Time() }),
		"resident":  listing.ByString(func(m domain.Movement) string { return m.ResidentName }),
	},
}

var MenuItemSchema = listing.Schema[domain.MenuItem]{
	Fields: func(m domain.MenuItem) []string {
		return append([]string{m.Name, m.Description, string(m.Type)}, m.Allergens...)
	},
	// The menu page filters by category rather than by a lifecycle status.
	Status: func(m domain.MenuItem) string { return string(m.Category) },
	Sorts: map[string]func(a, b domain.MenuItem) int{
		"name":       listing.ByString(func(m domain.MenuItem) string { return m.Name }),
		"price":      listing.ByNumber(func(m domain.MenuItem) float64 { return m.Price }),
		"popularity": listing.Desc(listing.ByNumber(func(m domain.MenuItem) float64 { return m.Popularity })),
	},
}

// AttendanceRow is one resident's line on the attendance board for a day.
type AttendanceRow struct {
	ResidentID string `json:"resident_id"`
	Name       string `json:"name"`
	RoomNumber string `json:"room_number"`
	BedNumber  int    `json:"bed_number"`
	Marked     bool   `json:"marked"`
	Present    bool   `json:"present"`
	Note       string `json:"note,omitempty"`
}

const (
	AttendancePresent  = "present"
	AttendanceAbsent   = "absent"
	AttendanceUnmarked = "unmarked"
)

func (r AttendanceRow) status() string {
	switch {
	case !r.Marked:
		return AttendanceUnmarked
	case r.Present:
		return AttendancePresent
	}
	return AttendanceAbsent
}

var AttendanceSchema = listing.Schema[AttendanceRow]{
	Fields: func(r AttendanceRow) []string { return []string{r.Name, r.RoomNumber, strconv.Itoa(r.BedNumber)} },
	Status: AttendanceRow.status,
	Sorts: map[string]func(a, b AttendanceRow) int{
		"name": listing.ByString(func(r AttendanceRow) string { return r.Name }),
		"room": listing.ByString(func(r AttendanceRow) string { return r.RoomNumber }),
	},
}
