package finance

import "time"

// DateRange is an inclusive filter at day granularity. From is the start of
// its calendar day and To the last instant of its calendar day. A zero bound
// is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange normalises optional bounds to whole days in loc.
func NewDateRange(from, to *time.Time, loc *time.Location) DateRange {
	var r DateRange
	if from != nil && !from.IsZero() {
		r.From = StartOfDay(*from, loc)
	}
	if to != nil && !to.IsZero() {
		r.To = EndOfDay(*to, loc)
	}
	return r
}

// IsOpen reports whether the range filters nothing.
func (r DateRange) IsOpen() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t is inside the range. An unknown (zero) time is
// only accepted by an open range.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsOpen() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports calendar-day equality in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ThisMonth covers the calendar month of now.
func ThisMonth(now time.Time) DateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return NewDateRange(&first, &last, now.Location())
}

// ThisYear covers January 1st to December 31st of now's year.
func ThisYear(now time.Time) DateRange {
	first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return NewDateRange(&first, &last, now.Location())
}

// LastDays covers the n days before today plus today.
func LastDays(now time.Time, n int) DateRange {
	from := now.AddDate(0, 0, -n)
	return NewDateRange(&from, &now, now.Location())
}

// Preset resolves a named range relative to now.
func Preset(name string, now time.Time) (DateRange, bool) {
	switch name {
	case "this-month":
		return ThisMonth(now), true
	case "this-year":
		return ThisYear(now), true
	case "last-7-days":
		return LastDays(now, 7), true
	case "all", "":
		return DateRange{}, true
	}
	return DateRange{}, false
}

// CalendarDate re-anchors a date-only value (as read from a DATE column, where
// drivers return UTC midnight) to midnight of the same calendar date in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
