package domain_test

import (
	"testing"

	"hostel_portal/internal/domain"
)

func TestToggleAttendance_UpsertKeepsOneRecordPerDate(t *testing.T) {
	day := domain.Date("2024-03-10")
	var recs []domain.AttendanceRecord

	recs = domain.ToggleAttendance(recs, day, true, "")
	recs = domain.ToggleAttendance(recs, day, false, "")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record for %s, got %d", day, len(recs))
	}
	if recs[0].Present {
		t.Fatalf("expected latest value (absent) to win")
	}
}

func TestToggleAttendance_DoesNotAliasInput(t *testing.T) {
	orig := []domain.AttendanceRecord{
		{Date: "2024-03-09", Present: true, Note: "Late arrival"},
		{Date: "2024-03-10", Present: true},
	}
	out := domain.ToggleAttendance(orig, "2024-03-09", false, "")

	if !orig[0].Present {
		t.Fatalf("input slice was mutated")
	}
	if out[0].Present || out[0].Note != "Late arrival" {
		t.Fatalf("unexpected toggled record: %+v", out[0])
	}
	if out[1] != orig[1] {
		t.Fatalf("unrelated record changed: %+v", out[1])
	}
}

func TestToggleAttendance_AppendsNewDate(t *testing.T) {
	orig := []domain.AttendanceRecord{{Date: "2024-03-09", Present: true}}
	out := domain.ToggleAttendance(orig, "2024-03-11", true, "back late")
	if len(out) != 2 || out[1].Date != "2024-03-11" || out[1].Note != "back late" {
		t.Fatalf("unexpected records: %+v", out)
	}
}

func TestTally(t *testing.T) {
	recs := []domain.AttendanceRecord{
		{Date: "2024-03-01", Present: true},
		{Date: "2024-03-02", Present: false},
		{Date: "2024-03-03", Present: true},
		{Date: "2024-02-01", Present: false},
	}
	p, a := domain.Tally(recs, "2024-03-01", "2024-03-31")
	if p != 2 || a != 1 {
		t.Fatalf("got present=%d absent=%d", p, a)
	}
}

func TestResidentAdvance(t *testing.T) {
	r := domain.Resident{ID: "r1", Name: "Ana", Status: domain.ResidentActive}

	r, err := r.Advance(domain.ResidentCheckingOut)
	if err != nil {
		t.Fatalf("active -> checking-out: %v", err)
	}
	r, err = r.Advance(domain.ResidentCheckedOut)
	if err != nil {
		t.Fatalf("checking-out -> checked-out: %v", err)
	}
	if _, err := r.Advance(domain.ResidentActive); err == nil {
		t.Fatalf("expected checked-out -> active to fail")
	}
	if _, err := (domain.Resident{Status: domain.ResidentActive}).Advance(domain.ResidentCheckedOut); err == nil {
		t.Fatalf("expected skipping checking-out to fail")
	}
}

func TestResidentValidate_Stay(t *testing.T) {
	r := domain.Resident{Name: "Ana", CheckIn: "2024-03-10", CheckOut: "2024-03-01"}
	if err := r.Validate(); err != domain.ErrInvalidStay {
		t.Fatalf("expected ErrInvalidStay, got %v", err)
	}
	r.CheckOut = "2024-03-10"
	if err := r.Validate(); err != nil {
		t.Fatalf("same-day stay should be valid: %v", err)
	}
}
