package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form.
type Date string

func DateOf(t time.Time) Date { return Date(t.UTC().Format(dateLayout)) }

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date %q: want YYYY-MM-DD", ErrInvalidInput, s)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of d, or the zero time when d does not parse.
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) IsZero() bool { return d == "" }
