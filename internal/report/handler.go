// Package report serves the financial report page: the period summary, the
// monthly income/expense series and the xlsx download.
package report

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/drizz21/car-rent-new/internal/clock"
	"github.com/drizz21/car-rent-new/internal/export"
	"github.com/drizz21/car-rent-new/internal/finance"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	MaxMonths  = 60
	xlsxMIME   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	rangeLabel = "2006-01-02"
)

type SnapshotLoader interface {
	Load(ctx context.Context) (repository.Snapshot, error)
}

type RangeView struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Label string `json:"label"`
}

func viewOf(r finance.DateRange) RangeView {
	v := RangeView{Label: export.PeriodText(r)}
	if !r.From.IsZero() {
		v.From = r.From.Format(rangeLabel)
	}
	if !r.To.IsZero() {
		v.To = r.To.Format(rangeLabel)
	}
	return v
}

type SummaryResponse struct {
	finance.Summary
	Range RangeView `json:"range"`
}

func warnUnpriced(c *fiber.Ctx, log *slog.Logger, ids []uint) {
	if len(ids) > 0 {
		log.WarnContext(c.UserContext(), "bookings priced at zero", slog.Any("booking_ids", ids))
	}
}

// GET /api/reports/summary?from=2024-01-01&to=2024-01-31
// GET /api/reports/summary?preset=this-month
func SummaryHandler(snapshots SnapshotLoader, clk clock.Clock, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := clk.Now()
		rng, err := httpx.DateRangeQuery(c, now)
		if err != nil {
			return err
		}

		snap, err := snapshots.Load(c.UserContext())
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		summary := finance.BuildSummary(snap.Cars, snap.Bookings, snap.Expenses, rng, now)
		warnUnpriced(c, log, summary.Bookings.Unpriced)

		return c.JSON(SummaryResponse{Summary: summary, Range: viewOf(rng)})
	}
}

// GET /api/reports/monthly?months=6
func MonthlyHandler(snapshots SnapshotLoader, clk clock.Clock, defaultMonths int, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n := c.QueryInt("months", defaultMonths)
		if n < 1 || n > MaxMonths {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah bulan harus antara 1 dan 60")
		}

		snap, err := snapshots.Load(c.UserContext())
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		months := finance.MonthWindow(clk.Now(), n)
		return c.JSON(finance.BuildMonthlySeries(snap.Cars, snap.Bookings, snap.Expenses, months))
	}
}

// GET /api/admin/reports/export?from=2024-01-01&to=2024-01-31
func ExportHandler(snapshots SnapshotLoader, clk clock.Clock, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := clk.Now()
		rng, err := httpx.DateRangeQuery(c, now)
		if err != nil {
			return err
		}

		snap, err := snapshots.Load(c.UserContext())
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		summary := finance.BuildSummary(snap.Cars, snap.Bookings, snap.Expenses, rng, now)
		warnUnpriced(c, log, summary.Bookings.Unpriced)

		var buf bytes.Buffer
		if err := export.Write(&buf, export.Report{Summary: summary, Range: rng, Generated: now}); err != nil {
			log.ErrorContext(c.UserContext(), "export workbook", slog.Any("err", err))
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat file laporan")
		}

		c.Attachment(export.FileName(now))
		c.Set(fiber.HeaderContentType, xlsxMIME)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(buf.Bytes())
	}
}
