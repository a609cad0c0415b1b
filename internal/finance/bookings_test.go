package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBookingsEmpty(t *testing.T) {
	stats := AggregateBookings(nil, nil, DateRange{}, at(2024, time.January, 10, 12, 0))

	assert.Zero(t, stats.TotalBookings)
	assert.Zero(t, stats.CompletedBookings)
	assert.Zero(t, stats.RunningBookings)
	assert.Zero(t, stats.TodayBookings)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.PotentialRevenue.IsZero())
	assert.Empty(t, stats.Unpriced)
}

func TestAggregateBookingsRevenue(t *testing.T) {
	cars := []Car{avanza, {ID: 2, Name: "Xenia", DayRate: rupiah(250000)}}
	created := at(2024, time.January, 1, 8, 0)
	bookings := []Booking{
		{ID: 1, Unit: "Avanza", RentalType: RentalNormal, Status: StatusCompleted, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4), CreatedAt: created},
		{ID: 2, Unit: "Avanza", RentalType: RentalWithDriver, Status: StatusCompleted, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 4), CreatedAt: created},
		{ID: 3, Unit: "Xenia", RentalType: RentalNormal, Status: StatusRunning, StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 4), CreatedAt: created},
		{ID: 4, Unit: "Xenia", RentalType: RentalNormal, Status: StatusCancelled, StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 4), CreatedAt: created},
	}

	stats := AggregateBookings(bookings, cars, DateRange{}, at(2024, time.January, 5, 10, 0))

	assertDecimal(t, "1620000", stats.TotalRevenue)
	assertDecimal(t, "500000", stats.PotentialRevenue)
	assert.Equal(t, 2, stats.CompletedBookings)
	assert.Equal(t, 1, stats.RunningBookings)
	assert.Equal(t, 1, stats.OtherBookings)
	assert.Equal(t, 4, stats.TotalBookings)
	assert.Equal(t, 1, stats.ByStatus[StatusCancelled])
	require.Len(t, stats.Completed, 2)
	assert.True(t, stats.Completed[0].Priced)
}

func TestAggregateBookingsUnknownCarDoesNotAbort(t *testing.T) {
	created := at(2024, time.January, 1, 8, 0)
	bookings := []Booking{
		{ID: 7, Unit: "Ghost", Status: StatusCompleted, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2), CreatedAt: created},
		{ID: 8, Unit: "Avanza", Status: StatusCompleted, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2), CreatedAt: created},
		{ID: 9, Unit: "Avanza", Status: StatusRunning, CreatedAt: created},
	}

	stats := AggregateBookings(bookings, []Car{avanza}, DateRange{}, created)

	assert.Equal(t, 2, stats.CompletedBookings)
	assert.Equal(t, 1, stats.RunningBookings)
	assertDecimal(t, "300000", stats.TotalRevenue)
	assert.True(t, stats.PotentialRevenue.IsZero())
	assert.Equal(t, []uint{7, 9}, stats.Unpriced)
}

func TestAggregateBookingsDateFilter(t *testing.T) {
	bookings := []Booking{
		{ID: 1, Status: StatusBooking, CreatedAt: at(2024, time.January, 9, 23, 59)},
		{ID: 2, Status: StatusBooking, CreatedAt: at(2024, time.January, 10, 0, 0)},
		{ID: 3, Status: StatusBooking, CreatedAt: at(2024, time.January, 12, 23, 59)},
		{ID: 4, Status: StatusBooking, CreatedAt: at(2024, time.January, 13, 0, 0)},
		{ID: 5, Status: StatusBooking},
	}
	rng := NewDateRange(date(2024, 1, 10), date(2024, 1, 12), jakarta)

	stats := AggregateBookings(bookings, nil, rng, at(2024, time.January, 12, 9, 0))

	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.TodayBookings)
}

func TestAggregateBookingsTodayUsesBusinessDay(t *testing.T) {
	// 18:00 UTC on Jan 9 is already Jan 10 in Jakarta.
	lateUTC := time.Date(2024, time.January, 9, 18, 0, 0, 0, time.UTC)
	bookings := []Booking{
		{ID: 1, Status: StatusBooking, CreatedAt: lateUTC},
		{ID: 2, Status: StatusBooking, CreatedAt: at(2024, time.January, 9, 12, 0)},
	}

	stats := AggregateBookings(bookings, nil, DateRange{}, at(2024, time.January, 10, 8, 0))

	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.TodayBookings)
}
