package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Car is the part of a catalog entry needed for pricing.
type Car struct {
	ID      uint
	Name    string
	DayRate decimal.Decimal
}

// Booking is a request-scoped view of a stored booking. RentalType and Status
// are already classified; CreatedAt is zero when unknown.
type Booking struct {
	ID           uint
	OrderID      string
	CustomerName string
	Unit         string
	Jenis        string
	RentalType   RentalType
	Status       BookingStatus
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
}

// Expense is a request-scoped view of a stored expense. Date is zero when unknown.
type Expense struct {
	ID          uint
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
}

// CarIndex resolves a booking's unit name to a car. When names collide the
// first car wins.
type CarIndex map[string]Car

func IndexCars(cars []Car) CarIndex {
	idx := make(CarIndex, len(cars))
	for _, c := range cars {
		if _, dup := idx[c.Name]; dup {
			continue
		}
		idx[c.Name] = c
	}
	return idx
}
