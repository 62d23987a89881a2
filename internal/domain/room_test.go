package domain_test

import (
	"errors"
	"testing"

	"hostel_portal/internal/domain"
)

func newRoom(t domain.RoomType) domain.Room {
	return domain.Room{
		ID: "A01", Number: "A01", Type: t, Status: domain.RoomVacant,
		Capacity: domain.CapacityFor(t), Amenities: []string{"Bed", "Desk"},
	}
}

func TestCapacityFor(t *testing.T) {
	cases := map[domain.RoomType]int{domain.RoomSingle: 1, domain.RoomDouble: 2, domain.RoomDormitory: 4, "suite": 0}
	for typ, want := range cases {
		if got := domain.CapacityFor(typ); got != want {
			t.Fatalf("CapacityFor(%s)=%d want %d", typ, got, want)
		}
	}
}

func TestRoom_AddAmenity_SetSemantics(t *testing.T) {
	r := newRoom(domain.RoomDouble)

	r2, err := r.AddAmenity("  WiFi ")
	if err != nil {
		t.Fatalf("AddAmenity: %v", err)
	}
	if len(r.Amenities) != 2 {
		t.Fatalf("original room mutated: %v", r.Amenities)
	}
	if r2.Amenities[2] != "WiFi" {
		t.Fatalf("expected trimmed amenity, got %v", r2.Amenities)
	}
	if _, err := r2.AddAmenity("WiFi"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := r2.AddAmenity("   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoom_RemoveAmenity(t *testing.T) {
	r := newRoom(domain.RoomSingle)
	r2, err := r.RemoveAmenity("Bed")
	if err != nil {
		t.Fatalf("RemoveAmenity: %v", err)
	}
	if len(r2.Amenities) != 1 || r2.Amenities[0] != "Desk" || r.Amenities[0] != "Bed" {
		t.Fatalf("unexpected amenities: before=%v after=%v", r.Amenities, r2.Amenities)
	}
	if _, err := r2.RemoveAmenity("Bed"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoom_AddResident_RespectsCapacity(t *testing.T) {
	r := newRoom(domain.RoomDouble)
	in := func(id string) domain.RoomResident {
		return domain.RoomResident{ID: id, Name: "Res " + id, CheckIn: "2024-03-01", CheckOut: "2024-06-01"}
	}

	r, err := r.AddResident(in("1"))
	if err != nil {
		t.Fatalf("first resident: %v", err)
	}
	if r.Status != domain.RoomOccupied || r.CurrentOccupants != 1 {
		t.Fatalf("expected occupied with 1 occupant, got %s/%d", r.Status, r.CurrentOccupants)
	}
	if r, err = r.AddResident(in("2")); err != nil {
		t.Fatalf("second resident: %v", err)
	}
	if _, err := r.AddResident(in("3")); !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
	if r.CurrentOccupants > r.Capacity {
		t.Fatalf("occupants %d exceed capacity %d", r.CurrentOccupants, r.Capacity)
	}
}

func TestRoom_AddResident_RequiresCheckOut(t *testing.T) {
	r := newRoom(domain.RoomSingle)
	if _, err := r.AddResident(domain.RoomResident{ID: "1", Name: "Ana"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRoom_RemoveResident_VacatesRoom(t *testing.T) {
	r := newRoom(domain.RoomSingle)
	r, _ = r.AddResident(domain.RoomResident{ID: "1", Name: "Ana", CheckOut: "2024-06-01"})

	r2, err := r.RemoveResident("1")
	if err != nil {
		t.Fatalf("RemoveResident: %v", err)
	}
	if r2.CurrentOccupants != 0 || r2.Status != domain.RoomVacant {
		t.Fatalf("expected vacant empty room, got %s/%d", r2.Status, r2.CurrentOccupants)
	}
	if len(r.Residents) != 1 {
		t.Fatalf("original room mutated")
	}
}
