package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for input and display.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar date at midnight UTC, keeping t's own year/month/day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants, truncated to calendar dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// LastYear returns the range ending on today's date and starting 365 days earlier.
func LastYear(today time.Time) DateRange {
	return NewDateRange(today.AddDate(0, 0, -365), today)
}

// Ordered reports whether Start is not after End.
func (r DateRange) Ordered() bool { return !r.Start.After(r.End) }

// Contains reports whether d falls within the range, both ends inclusive.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}
