package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drizz21/car-rent-new/internal/audit"
	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

type fakeStore struct {
	bookings []models.Booking
	filter   repository.BookingFilter
}

func (f *fakeStore) List(_ context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	f.filter = filter
	return f.bookings, nil
}

func (f *fakeStore) Get(_ context.Context, id uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("get booking: %w", repository.ErrNotFound)
}

func (f *fakeStore) Create(_ context.Context, b *models.Booking) error {
	if err := b.BeforeSave(nil); err != nil {
		return err
	}
	for _, existing := range f.bookings {
		if existing.OrderID == b.OrderID {
			return fmt.Errorf("create booking: %w", repository.ErrDuplicate)
		}
	}
	b.ID = uint(len(f.bookings) + 1)
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeStore) Update(_ context.Context, b *models.Booking) error {
	if err := b.BeforeSave(nil); err != nil {
		return err
	}
	for i := range f.bookings {
		if f.bookings[i].ID == b.ID {
			f.bookings[i] = *b
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCars []models.Car

func (f fakeCars) List(context.Context) ([]models.Car, error) { return f, nil }

type fakeSnapshots struct {
	snap repository.Snapshot
	err  error
}

func (f fakeSnapshots) Load(context.Context) (repository.Snapshot, error) { return f.snap, f.err }

type nopAudit struct{ n int }

func (a *nopAudit) WriteLog(context.Context, audit.LogOptions) { a.n++ }

var catalog = fakeCars{{ID: 1, Name: "Avanza", Price: decimal.NewFromInt(300000)}}

func newApp(store Store, snaps SnapshotLoader, rec audit.Writer) *fiber.App {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMock(time.Date(2024, time.January, 4, 10, 0, 0, 0, wib))
	app := fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler(log)})
	app.Get("/bookings/stats", StatsHandler(snaps, clk, log))
	app.Get("/bookings", ListBookingsHandler(store, catalog))
	app.Get("/bookings/:id", GetBookingHandler(store, catalog))
	app.Post("/bookings", CreateBookingHandler(store, clk, rec))
	app.Put("/bookings/:id", UpdateBookingHandler(store, clk, rec))
	app.Delete("/bookings/:id", DeleteBookingHandler(store, rec))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateBooking(t *testing.T) {
	store := &fakeStore{}
	rec := &nopAudit{}
	app := newApp(store, fakeSnapshots{}, rec)

	body := `{"customer_name":"Budi","unit":"Avanza","jenis":"Mobil + Sopir","start_date":"2024-01-01","end_date":"2024-01-04"}`
	resp := do(t, app, "POST", "/bookings", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, store.bookings, 1)
	b := store.bookings[0]
	assert.Equal(t, finance.RentalWithDriver, b.RentalType)
	assert.Equal(t, finance.StatusBooking, b.Status)
	assert.True(t, strings.HasPrefix(b.OrderID, "ORD-"))
	assert.Equal(t, 1, rec.n)
}

func TestCreateBookingRejects(t *testing.T) {
	store := &fakeStore{bookings: []models.Booking{{ID: 1, OrderID: "ORD-1"}}}
	app := newApp(store, fakeSnapshots{}, &nopAudit{})

	cases := map[string]string{
		"end before start": `{"customer_name":"Budi","unit":"Avanza","start_date":"2024-01-04","end_date":"2024-01-01"}`,
		"end equals start": `{"customer_name":"Budi","unit":"Avanza","start_date":"2024-01-04","end_date":"2024-01-04"}`,
		"bad date":         `{"customer_name":"Budi","unit":"Avanza","start_date":"4 Jan"}`,
		"unknown status":   `{"customer_name":"Budi","unit":"Avanza","status":"Hilang"}`,
		"missing customer": `{"unit":"Avanza"}`,
		"duplicate order":  `{"customer_name":"Budi","unit":"Avanza","order_id":"ORD-1"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusBadRequest, do(t, app, "POST", "/bookings", body).StatusCode)
		})
	}
}

func TestListBookingsIncludesPrice(t *testing.T) {
	store := &fakeStore{bookings: []models.Booking{
		{ID: 1, OrderID: "ORD-1", Unit: "Avanza", RentalType: finance.RentalNormal, Status: finance.StatusCompleted,
			StartDate: ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, wib)), EndDate: ptr(time.Date(2024, 1, 4, 0, 0, 0, 0, wib))},
		{ID: 2, OrderID: "ORD-2", Unit: "Ghost", Status: finance.StatusRunning},
	}}
	app := newApp(store, fakeSnapshots{}, &nopAudit{})

	resp := do(t, app, "GET", "/bookings?status=selesai&q=budi", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, finance.StatusCompleted, store.filter.Status)
	assert.Equal(t, "budi", store.filter.Search)

	var out []struct {
		OrderID string `json:"order_id"`
		Days    int    `json:"days"`
		Priced  bool   `json:"priced"`
		Price   struct {
			Total decimal.Decimal `json:"total"`
		} `json:"price"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].Days)
	assert.True(t, out[0].Price.Total.Equal(decimal.NewFromInt(900000)))
	assert.False(t, out[1].Priced)

	assert.Equal(t, fiber.StatusBadRequest, do(t, app, "GET", "/bookings?status=nope", "").StatusCode)
}

func TestUpdateKeepsOrderID(t *testing.T) {
	store := &fakeStore{bookings: []models.Booking{{ID: 1, OrderID: "ORD-KEEP", CustomerName: "Budi", Unit: "Avanza"}}}
	app := newApp(store, fakeSnapshots{}, &nopAudit{})

	resp := do(t, app, "PUT", "/bookings/1", `{"customer_name":"Budi","unit":"Avanza","status":"Berjalan"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ORD-KEEP", store.bookings[0].OrderID)
	assert.Equal(t, finance.StatusRunning, store.bookings[0].Status)

	assert.Equal(t, fiber.StatusNotFound, do(t, app, "PUT", "/bookings/9", `{"customer_name":"X","unit":"Y"}`).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, "DELETE", "/bookings/1", "").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, do(t, app, "DELETE", "/bookings/1", "").StatusCode)
}

func TestStats(t *testing.T) {
	today := time.Date(2024, 1, 4, 8, 0, 0, 0, wib)
	snap := repository.Snapshot{
		Cars: []finance.Car{{ID: 1, Name: "Avanza", DayRate: decimal.NewFromInt(300000)}},
		Bookings: []finance.Booking{
			{ID: 1, Unit: "Avanza", Status: finance.StatusRunning, RentalType: finance.RentalNormal,
				StartDate: ptr(today), EndDate: ptr(today.AddDate(0, 0, 2)), CreatedAt: today},
			{ID: 2, Unit: "Avanza", Status: finance.StatusBooking, CreatedAt: today.AddDate(0, 0, -1)},
		},
	}
	app := newApp(&fakeStore{}, fakeSnapshots{snap: snap}, &nopAudit{})

	resp := do(t, app, "GET", "/bookings/stats", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.TotalBookings)
	assert.Equal(t, 1, out.TodayBookings)
	assert.Equal(t, 1, out.RunningBookings)
	assert.True(t, out.RunningRevenue.Equal(decimal.NewFromInt(600000)))
}

func TestStatsLoadFailure(t *testing.T) {
	app := newApp(&fakeStore{}, fakeSnapshots{err: errors.New("db down")}, &nopAudit{})
	resp := do(t, app, "GET", "/bookings/stats", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Gagal memuat data", out["error"])
}

func ptr(t time.Time) *time.Time { return &t }
