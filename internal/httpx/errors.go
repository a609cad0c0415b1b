package httpx

import (
	"errors"
	"log/slog"

	"github.com/drizz21/car-rent-new/internal/obs"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ValidationError carries per-field failures; the error handler renders them
// under "details".
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrorHandler renders every error as {"error": message}. Anything that is not
// a *fiber.Error or *ValidationError is logged and hidden behind a 500.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   ve.Message,
				"details": ve.Details,
			})
		}

		log.Error("unexpected error",
			slog.String("request_id", obs.RequestID(c)),
			slog.String("path", c.Path()),
			slog.Any("err", err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Terjadi kesalahan pada server",
		})
	}
}

// StoreError converts a repository error into an HTTP error. Unknown errors
// pass through unchanged and end up as a logged 500.
func StoreError(err error, notFound, duplicate string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fiber.NewError(fiber.StatusBadRequest, duplicate)
	}
	return err
}

// ErrLoadData is returned when a report snapshot cannot be read.
var ErrLoadData = fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat data")

// LoadFailed logs why report data could not be read and returns ErrLoadData.
func LoadFailed(c *fiber.Ctx, log *slog.Logger, err error) error {
	log.ErrorContext(c.UserContext(), "load report data",
		slog.String("request_id", obs.RequestID(c)),
		slog.Any("err", err),
	)
	return ErrLoadData
}
