package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/models"

	"gorm.io/gorm"
)

type BookingFilter struct {
	Status finance.BookingStatus
	Unit   string
	// Search matches customer name, order id or unit.
	Search string
}

type Bookings struct {
	db *gorm.DB
}

func NewBookings(db *gorm.DB) *Bookings {
	return &Bookings{db: db}
}

func (r *Bookings) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Unit != "" {
		q = q.Where("unit = ?", f.Unit)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(order_id) LIKE ? OR LOWER(unit) LIKE ?", like, like, like)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *Bookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, translate(err))
	}
	return &b, nil
}

func (r *Bookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create booking: %w", translate(err))
	}
	return nil
}

func (r *Bookings) Update(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update booking %d: %w", b.ID, translate(err))
	}
	return nil
}

func (r *Bookings) Delete(ctx context.Context, id uint) error {
	if err := deleted(r.db.WithContext(ctx).Delete(&models.Booking{}, id)); err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	return nil
}
