package finance

import "github.com/shopspring/decimal"

// Quote is the price breakdown of one rental.
type Quote struct {
	Days       int             `json:"days"`
	DayRate    decimal.Decimal `json:"day_rate"`
	RentalType RentalType      `json:"rental_type"`
	Base       decimal.Decimal `json:"base"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

// Price returns dayRate x days, minus 20% of that whole subtotal for a rental
// with driver. A non-positive rate or a duration under one day prices at zero.
func Price(dayRate decimal.Decimal, days int, rt RentalType) decimal.Decimal {
	return NewQuote(dayRate, days, rt).Total
}

func NewQuote(dayRate decimal.Decimal, days int, rt RentalType) Quote {
	q := Quote{Days: days, DayRate: dayRate, RentalType: rt}
	if days < 1 || !dayRate.IsPositive() {
		return q
	}
	q.Base = dayRate.Mul(decimal.NewFromInt(int64(days)))
	q.Total = q.Base
	if rt == RentalWithDriver {
		q.Total = q.Base.Mul(DriverDiscount)
		q.Discount = q.Base.Sub(q.Total)
	}
	return q
}

// PriceBooking prices a booking against the car index. ok is false when the
// car is unknown or the dates are missing; the quote is then zero.
func PriceBooking(b Booking, cars CarIndex) (q Quote, ok bool) {
	car, found := cars[b.Unit]
	if !found {
		return Quote{RentalType: b.RentalType}, false
	}
	days, known := BookingDays(b.StartDate, b.EndDate)
	if !known {
		return Quote{DayRate: car.DayRate, RentalType: b.RentalType}, false
	}
	return NewQuote(car.DayRate, days, b.RentalType), true
}
