package models

import (
	"strings"
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is a rental order. Unit holds the car name; there is no foreign key.
type Booking struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	OrderID      string                `gorm:"size:50;uniqueIndex;not null" json:"order_id"`
	CustomerName string                `gorm:"size:100;not null" json:"customer_name"`
	Unit         string                `gorm:"size:100;index" json:"unit"`
	Jenis        string                `gorm:"size:100" json:"jenis"`
	RentalType   finance.RentalType    `gorm:"size:20;not null;default:normal" json:"rental_type"`
	StartDate    *time.Time            `gorm:"type:date" json:"start_date"`
	EndDate      *time.Time            `gorm:"type:date" json:"end_date"`
	Status       finance.BookingStatus `gorm:"size:30;not null;default:Booking;index" json:"status"`
	CreatedAt    time.Time             `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewOrderID returns an order number of the form ORD-XXXXXXXX.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// BeforeSave classifies the rental type from jenis and fills a missing order
// id and status.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	b.RentalType = finance.ClassifyRentalType(b.Jenis)
	if strings.TrimSpace(b.OrderID) == "" {
		b.OrderID = NewOrderID()
	}
	if b.Status == "" {
		b.Status = finance.StatusBooking
	}
	return nil
}

// FinanceBooking maps a stored booking to the pricing input. Statuses stored
// with a different spelling are normalised; unknown ones pass through and
// land in the "other" bucket.
func (b Booking) FinanceBooking() finance.Booking {
	status := b.Status
	if parsed, ok := finance.ParseBookingStatus(string(b.Status)); ok {
		status = parsed
	}
	rt := b.RentalType
	if !rt.Valid() {
		rt = finance.ClassifyRentalType(b.Jenis)
	}
	return finance.Booking{
		ID:           b.ID,
		OrderID:      b.OrderID,
		CustomerName: b.CustomerName,
		Unit:         b.Unit,
		Jenis:        b.Jenis,
		RentalType:   rt,
		Status:       status,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CreatedAt:    b.CreatedAt,
	}
}

func FinanceBookings(bookings []Booking) []finance.Booking {
	out := make([]finance.Booking, len(bookings))
	for i, b := range bookings {
		out[i] = b.FinanceBooking()
	}
	return out
}
