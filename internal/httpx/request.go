package httpx

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct tags and returns a *ValidationError keyed by field name.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fiber.NewError(fiber.StatusBadRequest, "Input tidak valid")
	}
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Message: "Validasi gagal", Details: details}
}

// Bind parses the JSON body into v and validates it.
func Bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
	}
	return Validate(v)
}

// ParamID reads a positive numeric :id route parameter.
func ParamID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return uint(id), nil
}

// ParseDate accepts YYYY-MM-DD (a calendar date in loc) or RFC 3339. An
// empty string yields nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid: "+s)
	}
	t = t.In(loc)
	return &t, nil
}

// DateRangeQuery reads ?preset= or ?from=&to= into a day-inclusive range
// relative to now. Either bound may be omitted.
func DateRangeQuery(c *fiber.Ctx, now time.Time) (finance.DateRange, error) {
	if preset := c.Query("preset"); preset != "" {
		rng, ok := finance.Preset(preset, now)
		if !ok {
			return finance.DateRange{}, fiber.NewError(fiber.StatusBadRequest, "Preset tidak dikenal: "+preset)
		}
		return rng, nil
	}

	from, err := ParseDate(c.Query("from"), now.Location())
	if err != nil {
		return finance.DateRange{}, err
	}
	to, err := ParseDate(c.Query("to"), now.Location())
	if err != nil {
		return finance.DateRange{}, err
	}
	rng := finance.NewDateRange(from, to, now.Location())
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.From.After(rng.To) {
		return finance.DateRange{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal awal harus sebelum tanggal akhir")
	}
	return rng, nil
}
