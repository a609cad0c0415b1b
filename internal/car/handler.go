package car

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drizz21/car-rent-new/internal/audit"
	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	List(ctx context.Context) ([]models.Car, error)
	Get(ctx context.Context, id uint) (*models.Car, error)
	Create(ctx context.Context, car *models.Car) error
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id uint) error
}

const (
	msgNotFound  = "Mobil tidak ditemukan"
	msgDuplicate = "Nama mobil sudah dipakai"
)

type CarRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Type           string           `json:"type" validate:"max=50"`
	Price          json.RawMessage  `json:"price"`
	Transmission   string           `json:"transmission" validate:"max=20"`
	Fuel           string           `json:"fuel" validate:"max=20"`
	Doors          int              `json:"doors" validate:"gte=0,lte=10"`
	Seats          int              `json:"seats" validate:"gte=0,lte=60"`
	AirConditioner bool             `json:"air_conditioner"`
	Description    string           `json:"description"`
	Status         models.CarStatus `json:"status"`

	price decimal.Decimal
}

func (r *CarRequest) bind(c *fiber.Ctx) error {
	if err := httpx.Bind(c, r); err != nil {
		return err
	}
	price, ok := finance.ParseAmount(r.Price)
	if !ok || !price.IsPositive() {
		return &httpx.ValidationError{Message: "Validasi gagal", Details: map[string]string{"Price": "gt"}}
	}
	r.price = price
	if r.Status == "" {
		r.Status = models.CarAvailable
	}
	if !r.Status.Valid() {
		return &httpx.ValidationError{Message: "Validasi gagal", Details: map[string]string{"Status": "oneof"}}
	}
	r.Name = strings.TrimSpace(r.Name)
	return nil
}

func (r *CarRequest) apply(car *models.Car) {
	car.Name = r.Name
	car.Type = r.Type
	car.Price = r.price
	car.Transmission = r.Transmission
	car.Fuel = r.Fuel
	car.Doors = r.Doors
	car.Seats = r.Seats
	car.AirConditioner = r.AirConditioner
	car.Description = r.Description
	car.Status = r.Status
}

// GET /api/cars?status=available
func ListCarsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cars, err := store.List(c.UserContext())
		if err != nil {
			return err
		}
		if status := models.CarStatus(c.Query("status")); status != "" {
			filtered := cars[:0]
			for _, car := range cars {
				if car.Status == status {
					filtered = append(filtered, car)
				}
			}
			cars = filtered
		}
		if cars == nil {
			cars = []models.Car{}
		}
		return c.JSON(cars)
	}
}

// GET /api/cars/:id
func GetCarHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		car, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		return c.JSON(car)
	}
}

// GET /api/cars/:id/quote?start=2024-01-01&end=2024-01-04&jenis=Mobil+%2B+sopir
func QuoteHandler(store Store, clk clock.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		loc := clk.Location()
		start, err := httpx.ParseDate(c.Query("start"), loc)
		if err != nil {
			return err
		}
		end, err := httpx.ParseDate(c.Query("end"), loc)
		if err != nil {
			return err
		}
		if start == nil || end == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tanggal mulai dan selesai wajib diisi")
		}
		if end.Before(*start) {
			return fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")
		}

		car, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		rt := finance.ClassifyRentalType(c.Query("jenis"))
		quote := finance.NewQuote(car.Price, finance.RentalDays(*start, *end), rt)
		return c.JSON(fiber.Map{
			"car_id":   car.ID,
			"car_name": car.Name,
			"quote":    quote,
		})
	}
}

// POST /api/admin/cars
func CreateCarHandler(store Store, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CarRequest
		if err := body.bind(c); err != nil {
			return err
		}

		var car models.Car
		body.apply(&car)
		if err := store.Create(c.UserContext(), &car); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityCar,
			EntityID:    car.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Mobil ditambahkan: %s", car.Name),
			After:       car,
		})
		return c.Status(fiber.StatusCreated).JSON(car)
	}
}

// PUT /api/admin/cars/:id
func UpdateCarHandler(store Store, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		var body CarRequest
		if err := body.bind(c); err != nil {
			return err
		}

		car, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		before := *car
		body.apply(car)
		if err := store.Update(c.UserContext(), car); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityCar,
			EntityID:    car.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Mobil diubah: %s", car.Name),
			Before:      before,
			After:       car,
		})
		return c.JSON(car)
	}
}

// DELETE /api/admin/cars/:id
func DeleteCarHandler(store Store, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		car, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		if err := store.Delete(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityCar,
			EntityID:    car.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Mobil dihapus: %s", car.Name),
			Before:      car,
		})
		return c.JSON(fiber.Map{"message": "Mobil berhasil dihapus"})
	}
}
