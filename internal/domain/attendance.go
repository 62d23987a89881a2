package domain

import "slices"

type AttendanceRecord struct {
	Date    Date   `json:"date"`
	Present bool   `json:"present"`
	Note    string `json:"note,omitempty"`
}

// ToggleAttendance upserts the record for date: an existing record keeps its
// position and gets the new present flag, otherwise a record is appended.
// A non-empty note replaces the stored one. The input slice is not modified.
func ToggleAttendance(records []AttendanceRecord, date Date, present bool, note string) []AttendanceRecord {
	out := slices.Clone(records)
	for i := range out {
		if out[i].Date != date {
			continue
		}
		out[i].Present = present
		if note != "" {
			out[i].Note = note
		}
		return out
	}
	return append(out, AttendanceRecord{Date: date, Present: present, Note: note})
}

// Tally counts present and absent records with from <= date <= to.
func Tally(records []AttendanceRecord, from, to Date) (present, absent int) {
	lo, hi := from.Time(), to.Time()
	for _, r := range records {
		t := r.Date.Time()
		if t.Before(lo) || t.After(hi) {
			continue
		}
		if r.Present {
			present++
		} else {
			absent++
		}
	}
	return present, absent
}
