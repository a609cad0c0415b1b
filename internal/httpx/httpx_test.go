package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))})
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

func TestErrorHandler(t *testing.T) {
	app := newApp()
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "dilarang") })
	app.Get("/validation", func(c *fiber.Ctx) error {
		return &ValidationError{Message: "Validasi gagal", Details: map[string]string{"Name": "required"}}
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })

	resp, err := app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "dilarang", decode(t, resp.Body)["error"])

	resp, err = app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, map[string]any{"Name": "required"}, body["details"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, decode(t, resp.Body)["error"], "db down")
}

func TestStoreError(t *testing.T) {
	var fe *fiber.Error

	err := StoreError(fmt.Errorf("get car 1: %w", repository.ErrNotFound), "Mobil tidak ditemukan", "")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	err = StoreError(fmt.Errorf("create: %w", repository.ErrDuplicate), "", "Order ID sudah ada")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	raw := errors.New("other")
	assert.Same(t, raw, StoreError(raw, "", ""))
}

func TestValidate(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}
	err := Validate(req{Email: "nope"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Details["Name"])
	assert.Equal(t, "email", ve.Details["Email"])

	assert.NoError(t, Validate(req{Name: "a", Email: "a@b.co"}))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29", wib)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, wib), *d)

	d, err = ParseDate("2024-02-29T20:00:00Z", wib)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Day())

	d, err = ParseDate("", wib)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("29/02/2024", wib)
	assert.Error(t, err)
}

func TestDateRangeQuery(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, wib)
	app := newApp()
	app.Get("/r", func(c *fiber.Ctx) error {
		rng, err := DateRangeQuery(c, now)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"from": rng.From, "to": rng.To, "open": rng.IsOpen()})
	})

	cases := []struct {
		query  string
		status int
	}{
		{"", fiber.StatusOK},
		{"?from=2024-06-01&to=2024-06-30", fiber.StatusOK},
		{"?from=2024-06-01", fiber.StatusOK},
		{"?preset=this-month", fiber.StatusOK},
		{"?preset=bogus", fiber.StatusBadRequest},
		{"?from=2024-07-01&to=2024-06-01", fiber.StatusBadRequest},
		{"?to=kemarin", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/r"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
