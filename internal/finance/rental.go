package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RentalType is the service variant of a booking.
type RentalType string

const (
	RentalNormal     RentalType = "normal"
	RentalWithDriver RentalType = "with-driver"
)

// driverToken marks a "jenis" text as a rental that includes a driver.
const driverToken = "sopir"

// DriverDiscount is the multiplier applied to the whole subtotal of a rental
// with driver (20% off).
var DriverDiscount = decimal.New(8, -1)

// ClassifyRentalType turns the free-text "jenis" field into a RentalType. Any
// occurrence of "sopir", in any case, means a rental with driver.
func ClassifyRentalType(jenis string) RentalType {
	if strings.Contains(strings.ToLower(jenis), driverToken) {
		return RentalWithDriver
	}
	return RentalNormal
}

func (t RentalType) Valid() bool {
	return t == RentalNormal || t == RentalWithDriver
}
