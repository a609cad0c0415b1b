package finance

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// RentalDays returns ceil(|end-start| / 1 day), never less than one day.
// The difference is taken between wall clocks so a daylight saving shift
// inside the span does not add or remove a day.
func RentalDays(start, end time.Time) int {
	diff := wallClock(end).Sub(wallClock(start))
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// BookingDays is RentalDays for optional dates. ok is false when either date
// is missing and the duration cannot be determined.
func BookingDays(start, end *time.Time) (days int, ok bool) {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return 0, false
	}
	return RentalDays(*start, *end), true
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
