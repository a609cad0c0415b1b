package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

// Snapshot is everything a report needs, read once per request and already
// mapped to pricing inputs.
type Snapshot struct {
	Cars     []finance.Car
	Fleet    models.Fleet
	Bookings []finance.Booking
	Expenses []finance.Expense
}

type Snapshots struct {
	db  *gorm.DB
	loc *time.Location
}

// NewSnapshots reads snapshots whose date-only columns are interpreted in loc.
func NewSnapshots(db *gorm.DB, loc *time.Location) *Snapshots {
	return &Snapshots{db: db, loc: loc}
}

// Load reads cars, bookings and expenses in one read-only transaction so the
// three lists are consistent with each other.
func (r *Snapshots) Load(ctx context.Context) (Snapshot, error) {
	var (
		cars     []models.Car
		bookings []models.Booking
		expenses []models.Expense
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&cars).Error; err != nil {
			return fmt.Errorf("cars: %w", err)
		}
		if err := tx.Order("created_at").Find(&bookings).Error; err != nil {
			return fmt.Errorf("bookings: %w", err)
		}
		if err := tx.Order("date, created_at").Find(&expenses).Error; err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	return Snapshot{
		Cars:     models.FinanceCars(cars),
		Fleet:    models.CountFleet(cars),
		Bookings: models.FinanceBookings(bookings),
		Expenses: models.FinanceExpenses(expenses, r.loc),
	}, nil
}
