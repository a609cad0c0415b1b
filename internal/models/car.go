package models

import (
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/shopspring/decimal"
)

type CarStatus string

const (
	CarAvailable   CarStatus = "available"
	CarRented      CarStatus = "rented"
	CarMaintenance CarStatus = "maintenance"
)

func (s CarStatus) Valid() bool {
	switch s {
	case CarAvailable, CarRented, CarMaintenance:
		return true
	}
	return false
}

// Car is a catalog entry. Bookings refer to it by Name.
type Car struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Type           string          `gorm:"size:50" json:"type"`
	Price          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"` // day-rate
	Transmission   string          `gorm:"size:20" json:"transmission"`
	Fuel           string          `gorm:"size:20" json:"fuel"`
	Doors          int             `json:"doors"`
	Seats          int             `json:"seats"`
	AirConditioner bool            `json:"air_conditioner"`
	Description    string          `gorm:"type:text" json:"description"`
	Status         CarStatus       `gorm:"size:20;not null;default:available;index" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c Car) FinanceCar() finance.Car {
	return finance.Car{ID: c.ID, Name: c.Name, DayRate: c.Price}
}

func FinanceCars(cars []Car) []finance.Car {
	out := make([]finance.Car, len(cars))
	for i, c := range cars {
		out[i] = c.FinanceCar()
	}
	return out
}

// Fleet counts cars by status. Unknown statuses only count toward Total.
type Fleet struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Rented      int `json:"rented"`
	Maintenance int `json:"maintenance"`
}

func CountFleet(cars []Car) Fleet {
	f := Fleet{Total: len(cars)}
	for _, c := range cars {
		switch c.Status {
		case CarAvailable:
			f.Available++
		case CarRented:
			f.Rented++
		case CarMaintenance:
			f.Maintenance++
		}
	}
	return f
}
