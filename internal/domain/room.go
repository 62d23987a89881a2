package domain

import (
	"fmt"
	"slices"
	"strings"
)

type RoomType string

const (
	RoomSingle    RoomType = "single"
	RoomDouble    RoomType = "double"
	RoomDormitory RoomType = "dormitory"
)

// CapacityFor returns the bed count of a room type, 0 for unknown types.
func CapacityFor(t RoomType) int {
	switch t {
	case RoomSingle:
		return 1
	case RoomDouble:
		return 2
	case RoomDormitory:
		return 4
	}
	return 0
}

type RoomStatus string

const (
	RoomOccupied    RoomStatus = "occupied"
	RoomVacant      RoomStatus = "vacant"
	RoomMaintenance RoomStatus = "maintenance"
)

type RoomCondition string

const (
	ConditionClean         RoomCondition = "clean"
	ConditionNeedsCleaning RoomCondition = "needs-cleaning"
	ConditionMaintenance   RoomCondition = "maintenance"
)

// RoomResident is the summary of a resident embedded in its room.
type RoomResident struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	CheckIn  Date           `json:"check_in"`
	CheckOut Date           `json:"check_out"`
	Status   ResidentStatus `json:"status"`
}

type Room struct {
	ID                string         `json:"id"`
	Number            string         `json:"number"`
	Type              RoomType       `json:"type"`
	Status            RoomStatus     `json:"status"`
	Capacity          int            `json:"capacity"`
	CurrentOccupants  int            `json:"current_occupants"`
	Condition         RoomCondition  `json:"condition"`
	LastCleaned       Date           `json:"last_cleaned"`
	MaintenanceStatus string         `json:"maintenance_status,omitempty"`
	Amenities         []string       `json:"amenities"`
	Residents         []RoomResident `json:"residents"`
}

func (r Room) Key() string { return r.ID }

func (r Room) Clone() Room {
	c := r
	c.Amenities = slices.Clone(r.Amenities)
	c.Residents = slices.Clone(r.Residents)
	return c
}

func (r Room) HasAmenity(name string) bool { return slices.Contains(r.Amenities, strings.TrimSpace(name)) }

func (r Room) AddAmenity(name string) (Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r, fmt.Errorf("%w: amenity name is required", ErrInvalidInput)
	}
	if r.HasAmenity(name) {
		return r, fmt.Errorf("amenity %q: %w", name, ErrDuplicate)
	}
	c := r.Clone()
	c.Amenities = append(c.Amenities, name)
	return c, nil
}

func (r Room) RemoveAmenity(name string) (Room, error) {
	name = strings.TrimSpace(name)
	i := slices.Index(r.Amenities, name)
	if i < 0 {
		return r, fmt.Errorf("amenity %q: %w", name, ErrNotFound)
	}
	c := r.Clone()
	c.Amenities = slices.Delete(c.Amenities, i, i+1)
	return c, nil
}

func (r Room) AddResident(rr RoomResident) (Room, error) {
	rr.Name = strings.TrimSpace(rr.Name)
	if rr.Name == "" || rr.CheckOut.IsZero() {
		return r, fmt.Errorf("%w: resident name and check-out are required", ErrInvalidInput)
	}
	if !rr.CheckIn.IsZero() && rr.CheckOut.Before(rr.CheckIn) {
		return r, ErrInvalidStay
	}
	if len(r.Residents) >= r.Capacity {
		return r, fmt.Errorf("room %s: %w", r.Number, ErrRoomFull)
	}
	if slices.ContainsFunc(r.Residents, func(x RoomResident) bool { return x.ID == rr.ID }) {
		return r, fmt.Errorf("resident %s: %w", rr.ID, ErrDuplicate)
	}
	if rr.Status == "" {
		rr.Status = ResidentActive
	}
	c := r.Clone()
	c.Residents = append(c.Residents, rr)
	c.CurrentOccupants = len(c.Residents)
	if c.Status == RoomVacant {
		c.Status = RoomOccupied
	}
	return c, nil
}

func (r Room) RemoveResident(id string) (Room, error) {
	i := slices.IndexFunc(r.Residents, func(x RoomResident) bool { return x.ID == id })
	if i < 0 {
		return r, fmt.Errorf("resident %s: %w", id, ErrNotFound)
	}
	c := r.Clone()
	c.Residents = slices.Delete(c.Residents, i, i+1)
	c.CurrentOccupants = len(c.Residents)
	if c.CurrentOccupants == 0 && c.Status == RoomOccupied {
		c.Status = RoomVacant
	}
	return c, nil
}
