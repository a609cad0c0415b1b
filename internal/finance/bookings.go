package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricedBooking is a booking together with its computed price. Priced is
// false when the price fell back to zero.
type PricedBooking struct {
	Booking
	Quote  Quote
	Priced bool
}

// BookingStats is the booking half of a financial summary.
type BookingStats struct {
	TotalBookings     int                   `json:"totalBookings"`
	CompletedBookings int                   `json:"completedBookings"`
	RunningBookings   int                   `json:"runningBookings"`
	OtherBookings     int                   `json:"otherBookings"`
	TodayBookings     int                   `json:"todayBookings"`
	ByStatus          map[BookingStatus]int `json:"byStatus"`
	TotalRevenue      decimal.Decimal       `json:"totalRevenue"`
	PotentialRevenue  decimal.Decimal       `json:"potentialRevenue"`

	// Unpriced holds ids of completed or running bookings that contributed
	// zero because their car or dates could not be resolved.
	Unpriced  []uint          `json:"-"`
	Completed []PricedBooking `json:"-"`
	Running   []PricedBooking `json:"-"`
}

// AggregateBookings filters bookings by creation time, buckets them by status
// and sums realized (completed) and potential (running) revenue. "Today" is
// the calendar day of now in now's location.
func AggregateBookings(bookings []Booking, cars []Car, rng DateRange, now time.Time) BookingStats {
	idx := IndexCars(cars)
	stats := BookingStats{
		ByStatus:         make(map[BookingStatus]int),
		TotalRevenue:     decimal.Zero,
		PotentialRevenue: decimal.Zero,
	}

	for _, b := range bookings {
		if !rng.Contains(b.CreatedAt) {
			continue
		}
		stats.TotalBookings++
		stats.ByStatus[b.Status]++
		if !b.CreatedAt.IsZero() && SameDay(b.CreatedAt, now, now.Location()) {
			stats.TodayBookings++
		}

		bucket := BucketOf(b.Status)
		if bucket == BucketOther {
			stats.OtherBookings++
			continue
		}

		q, ok := PriceBooking(b, idx)
		if !ok {
			stats.Unpriced = append(stats.Unpriced, b.ID)
		}
		pb := PricedBooking{Booking: b, Quote: q, Priced: ok}

		switch bucket {
		case BucketCompleted:
			stats.CompletedBookings++
			stats.TotalRevenue = stats.TotalRevenue.Add(q.Total)
			stats.Completed = append(stats.Completed, pb)
		case BucketRunning:
			stats.RunningBookings++
			stats.PotentialRevenue = stats.PotentialRevenue.Add(q.Total)
			stats.Running = append(stats.Running, pb)
		}
	}
	return stats
}
