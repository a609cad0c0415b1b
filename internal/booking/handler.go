package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/drizz21/car-rent-new/internal/audit"
	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	List(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uint) error
}

type CarLister interface {
	List(ctx context.Context) ([]models.Car, error)
}

type SnapshotLoader interface {
	Load(ctx context.Context) (repository.Snapshot, error)
}

const (
	msgNotFound  = "Booking tidak ditemukan"
	msgDuplicate = "Order ID sudah ada, gunakan Order ID yang berbeda"
)

type BookingRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	Unit         string `json:"unit" validate:"required,max=100"`
	Jenis        string `json:"jenis" validate:"max=100"`
	OrderID      string `json:"order_id" validate:"max=50"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`

	start, end *time.Time
	status     finance.BookingStatus
}

func (r *BookingRequest) bind(c *fiber.Ctx, loc *time.Location) error {
	if err := httpx.Bind(c, r); err != nil {
		return err
	}

	var err error
	if r.start, err = httpx.ParseDate(r.StartDate, loc); err != nil {
		return err
	}
	if r.end, err = httpx.ParseDate(r.EndDate, loc); err != nil {
		return err
	}
	if r.start != nil && r.end != nil && !r.end.After(*r.start) {
		return fiber.NewError(fiber.StatusBadRequest, "Tanggal selesai harus lebih besar dari tanggal mulai")
	}

	r.status = finance.StatusBooking
	if r.Status != "" {
		st, ok := finance.ParseBookingStatus(r.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Status tidak dikenal: "+r.Status)
		}
		r.status = st
	}
	return nil
}

func (r *BookingRequest) apply(b *models.Booking) {
	b.CustomerName = strings.TrimSpace(r.CustomerName)
	b.Unit = strings.TrimSpace(r.Unit)
	b.Jenis = r.Jenis
	b.OrderID = strings.TrimSpace(r.OrderID)
	b.StartDate = r.start
	b.EndDate = r.end
	b.Status = r.status
}

// BookingView is a stored booking with its computed price.
type BookingView struct {
	models.Booking
	Days   int           `json:"days"`
	Price  finance.Quote `json:"price"`
	Priced bool          `json:"priced"`
}

func views(bookings []models.Booking, cars []models.Car) []BookingView {
	idx := finance.IndexCars(models.FinanceCars(cars))
	out := make([]BookingView, len(bookings))
	for i, b := range bookings {
		q, ok := finance.PriceBooking(b.FinanceBooking(), idx)
		out[i] = BookingView{Booking: b, Days: q.Days, Price: q, Priced: ok}
	}
	return out
}

// GET /api/bookings?status=Berjalan&unit=Avanza&q=budi
func ListBookingsHandler(store Store, cars CarLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.BookingFilter{Unit: c.Query("unit"), Search: c.Query("q")}
		if s := c.Query("status"); s != "" {
			st, ok := finance.ParseBookingStatus(s)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "Status tidak dikenal: "+s)
			}
			filter.Status = st
		}

		bookings, err := store.List(c.UserContext(), filter)
		if err != nil {
			return err
		}
		catalog, err := cars.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(views(bookings, catalog))
	}
}

// GET /api/bookings/:id
func GetBookingHandler(store Store, cars CarLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		b, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		catalog, err := cars.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(views([]models.Booking{*b}, catalog)[0])
	}
}

// POST /api/bookings
func CreateBookingHandler(store Store, clk clock.Clock, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BookingRequest
		if err := body.bind(c, clk.Location()); err != nil {
			return err
		}

		var b models.Booking
		body.apply(&b)
		if err := store.Create(c.UserContext(), &b); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityBooking,
			EntityID:    b.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Booking %s ditambahkan untuk %s", b.OrderID, b.CustomerName),
			After:       b,
		})
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// PUT /api/bookings/:id
func UpdateBookingHandler(store Store, clk clock.Clock, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		var body BookingRequest
		if err := body.bind(c, clk.Location()); err != nil {
			return err
		}

		b, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		before := *b
		body.apply(b)
		if b.OrderID == "" {
			b.OrderID = before.OrderID
		}
		if err := store.Update(c.UserContext(), b); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityBooking,
			EntityID:    b.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Booking %s diubah", b.OrderID),
			Before:      before,
			After:       b,
		})
		return c.JSON(b)
	}
}

// DELETE /api/bookings/:id
func DeleteBookingHandler(store Store, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		b, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		if err := store.Delete(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityBooking,
			EntityID:    b.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Booking %s dihapus", b.OrderID),
			Before:      b,
		})
		return c.JSON(fiber.Map{"message": "Booking berhasil dihapus"})
	}
}

type StatsResponse struct {
	TotalBookings     int                           `json:"total_bookings"`
	TodayBookings     int                           `json:"today_bookings"`
	CompletedBookings int                           `json:"completed_bookings"`
	RunningBookings   int                           `json:"running_bookings"`
	ByStatus          map[finance.BookingStatus]int `json:"by_status"`
	TotalRevenue      decimal.Decimal               `json:"total_revenue"`
	RunningRevenue    decimal.Decimal               `json:"running_revenue"`
}

// GET /api/bookings/stats
//
// Order page cards over all bookings: today's orders and the revenue still
// expected from running rentals.
func StatsHandler(snapshots SnapshotLoader, clk clock.Clock, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := snapshots.Load(c.UserContext())
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		stats := finance.AggregateBookings(snap.Bookings, snap.Cars, finance.DateRange{}, clk.Now())
		if len(stats.Unpriced) > 0 {
			log.WarnContext(c.UserContext(), "bookings priced at zero", slog.Any("booking_ids", stats.Unpriced))
		}

		return c.JSON(StatsResponse{
			TotalBookings:     stats.TotalBookings,
			TodayBookings:     stats.TodayBookings,
			CompletedBookings: stats.CompletedBookings,
			RunningBookings:   stats.RunningBookings,
			ByStatus:          stats.ByStatus,
			TotalRevenue:      stats.TotalRevenue,
			RunningRevenue:    stats.PotentialRevenue,
		})
	}
}
