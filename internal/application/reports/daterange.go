package reports

import (
	"time"

	"cuy-farm/internal/apperr"
)

const dateLayout = "2006-01-02"

// DateRange is an optional inclusive [start, end] window over civil dates.
// A nil bound leaves that side open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange parses optional ISO date bounds. A present-but-malformed bound
// fails the whole request; empty strings leave the range open.
func ParseRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return DateRange{}, apperr.Validation("invalid date format; use YYYY-MM-DD")
		}
		r.Start = &t
	}
	if end != "" {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return DateRange{}, apperr.Validation("invalid date format; use YYYY-MM-DD")
		}
		r.End = &t
	}
	return r, nil
}

// Contains reports whether d falls inside the range, bounds inclusive.
func (r DateRange) Contains(d time.Time) bool {
	if r.Start != nil && d.Before(*r.Start) {
		return false
	}
	if r.End != nil && d.After(*r.End) {
		return false
	}
	return true
}

// daysBetween returns whole days from first to last.
func daysBetween(first, last time.Time) int {
	return int(last.Sub(first).Hours() / 24)
}
