// Package dashboard serves the admin landing page: fleet counts, booking
// counters, this month's result and a revenue chart.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SnapshotLoader interface {
	Load(ctx context.Context) (repository.Snapshot, error)
}

var chartColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4"}

type Statistics struct {
	TotalCars       int             `json:"totalCars"`
	AvailableCars   int             `json:"availableCars"`
	RentedCars      int             `json:"rentedCars"`
	MaintenanceCars int             `json:"maintenanceCars"`
	TotalBookings   int             `json:"totalBookings"`
	RunningBookings int             `json:"runningBookings"`
	TodayBookings   int             `json:"todayBookings"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	MonthRevenue    decimal.Decimal `json:"monthRevenue"`
	MonthExpenses   decimal.Decimal `json:"monthExpenses"`
	MonthProfit     decimal.Decimal `json:"monthProfit"`
}

type ChartPoint struct {
	Month    string          `json:"month"`
	Year     int             `json:"year"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expense  decimal.Decimal `json:"expense"`
	Bookings int             `json:"bookings"`
	Color    string          `json:"color"`
}

type Response struct {
	Statistics Statistics   `json:"statistics"`
	ChartData  []ChartPoint `json:"chartData"`
}

// chart turns the monthly series into chart points. Bookings counts every
// booking created in the month, whatever its status.
func chart(series finance.MonthlySeries, months []finance.Month, bookings []finance.Booking) []ChartPoint {
	points := make([]ChartPoint, len(series.Months))
	for i, b := range series.Months {
		n := 0
		for _, bk := range bookings {
			if !bk.CreatedAt.IsZero() && months[i].Contains(bk.CreatedAt) {
				n++
			}
		}
		points[i] = ChartPoint{
			Month:    b.Month,
			Year:     b.Year,
			Revenue:  b.Income,
			Expense:  b.Expense,
			Bookings: n,
			Color:    chartColors[i%len(chartColors)],
		}
	}
	return points
}

// GET /api/dashboard
func DashboardHandler(snapshots SnapshotLoader, clk clock.Clock, months int, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := snapshots.Load(c.UserContext())
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		now := clk.Now()
		stats := Statistics{
			TotalCars:       snap.Fleet.Total,
			AvailableCars:   snap.Fleet.Available,
			RentedCars:      snap.Fleet.Rented,
			MaintenanceCars: snap.Fleet.Maintenance,
		}

		all := finance.AggregateBookings(snap.Bookings, snap.Cars, finance.DateRange{}, now)
		if len(all.Unpriced) > 0 {
			log.WarnContext(c.UserContext(), "bookings priced at zero", slog.Any("booking_ids", all.Unpriced))
		}
		stats.TotalBookings = all.TotalBookings
		stats.RunningBookings = all.RunningBookings
		stats.TodayBookings = all.TodayBookings
		stats.TotalRevenue = all.TotalRevenue

		month := finance.BuildSummary(snap.Cars, snap.Bookings, snap.Expenses, finance.ThisMonth(now), now)
		stats.MonthRevenue = month.TotalRevenue
		stats.MonthExpenses = month.TotalExpenses
		stats.MonthProfit = month.NetProfit

		window := finance.MonthWindow(now, months)
		series := finance.BuildMonthlySeries(snap.Cars, snap.Bookings, snap.Expenses, window)

		return c.JSON(Response{
			Statistics: stats,
			ChartData:  chart(series, window, snap.Bookings),
		})
	}
}
