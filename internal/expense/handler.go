package expense

import (
	"context"
	"encoding/json"
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
	List(ctx context.Context, f repository.ExpenseFilter) ([]models.Expense, error)
	Get(ctx context.Context, id uint) (*models.Expense, error)
	Create(ctx context.Context, e *models.Expense) error
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id uint) error
}

const (
	msgNotFound  = "Pengeluaran tidak ditemukan"
	msgDuplicate = "Pengeluaran sudah ada"
)

type ExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=255"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date" validate:"required"` // "2024-01-31"

	amount decimal.Decimal
	date   time.Time
}

func (r *ExpenseRequest) bind(c *fiber.Ctx, loc *time.Location) error {
	if err := httpx.Bind(c, r); err != nil {
		return err
	}
	amount, ok := finance.ParseAmount(r.Amount)
	if !ok || !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "Jumlah harus berupa angka positif")
	}
	r.amount = amount

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		r.Category = finance.DefaultCategory
	}
	if !models.IsExpenseCategory(r.Category) {
		return fiber.NewError(fiber.StatusBadRequest, "Kategori tidak dikenal: "+r.Category)
	}

	d, err := httpx.ParseDate(r.Date, loc)
	if err != nil {
		return err
	}
	r.date = finance.StartOfDay(*d, loc)
	return nil
}

func (r *ExpenseRequest) apply(e *models.Expense) {
	e.Description = strings.TrimSpace(r.Description)
	e.Amount = r.amount
	e.Category = r.Category
	e.Date = r.date
}

func filterFromQuery(c *fiber.Ctx, loc *time.Location) (repository.ExpenseFilter, error) {
	var (
		f   repository.ExpenseFilter
		err error
	)
	if f.From, err = httpx.ParseDate(c.Query("from"), loc); err != nil {
		return f, err
	}
	if f.To, err = httpx.ParseDate(c.Query("to"), loc); err != nil {
		return f, err
	}
	f.Category = c.Query("category")
	f.Search = c.Query("q")
	return f, nil
}

// GET /api/expense-categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.ExpenseCategories)
	}
}

// GET /api/expenses?from=2024-01-01&to=2024-01-31&category=Gaji&q=bensin
func ListExpensesHandler(store Store, clk clock.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := filterFromQuery(c, clk.Location())
		if err != nil {
			return err
		}
		expenses, err := store.List(c.UserContext(), filter)
		if err != nil {
			return err
		}
		if expenses == nil {
			expenses = []models.Expense{}
		}
		return c.JSON(expenses)
	}
}

// GET /api/expenses/:id
func GetExpenseHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		e, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		return c.JSON(e)
	}
}

// POST /api/expenses
func CreateExpenseHandler(store Store, clk clock.Clock, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpenseRequest
		if err := body.bind(c, clk.Location()); err != nil {
			return err
		}

		var e models.Expense
		body.apply(&e)
		if err := store.Create(c.UserContext(), &e); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityExpense,
			EntityID:    e.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pengeluaran %s: %s", e.Category, e.Amount.StringFixed(0)),
			After:       e,
		})
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler(store Store, clk clock.Clock, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		var body ExpenseRequest
		if err := body.bind(c, clk.Location()); err != nil {
			return err
		}

		e, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		before := *e
		body.apply(e)
		if err := store.Update(c.UserContext(), e); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityExpense,
			EntityID:    e.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Pengeluaran diubah: %s", e.Description),
			Before:      before,
			After:       e,
		})
		return c.JSON(e)
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler(store Store, rec audit.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c)
		if err != nil {
			return err
		}
		e, err := store.Get(c.UserContext(), id)
		if err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}
		if err := store.Delete(c.UserContext(), id); err != nil {
			return httpx.StoreError(err, msgNotFound, msgDuplicate)
		}

		audit.Record(c, rec, audit.LogOptions{
			EntityType:  models.EntityExpense,
			EntityID:    e.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Pengeluaran dihapus: %s", e.Description),
			Before:      e,
		})
		return c.JSON(fiber.Map{"message": "Pengeluaran berhasil dihapus"})
	}
}

// GET /api/expenses/stats?from&to&category&q
//
// Expense page cards: all-time, today and this month totals, plus the
// breakdown of the list as currently filtered.
func StatsHandler(store Store, clk clock.Clock, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc := clk.Location()
		filter, err := filterFromQuery(c, loc)
		if err != nil {
			return err
		}

		all, err := store.List(c.UserContext(), repository.ExpenseFilter{})
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}
		filtered := all
		if filter != (repository.ExpenseFilter{}) {
			if filtered, err = store.List(c.UserContext(), filter); err != nil {
				return httpx.LoadFailed(c, log, err)
			}
		}

		overview := finance.OverviewExpenses(
			models.FinanceExpenses(all, loc),
			models.FinanceExpenses(filtered, loc),
			clk.Now(),
		)
		return c.JSON(overview)
	}
}

type MonthlySummaryResponse struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Label      string                 `json:"label"`
	Items      finance.CategoryTotals `json:"items"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}

// GET /api/expenses/summary/monthly?year=2024&month=1
func MonthlySummaryHandler(store Store, clk clock.Clock, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := clk.Now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if year < 2000 || year > 9999 {
			return fiber.NewError(fiber.StatusBadRequest, "Tahun tidak valid")
		}
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Bulan tidak valid")
		}

		m := finance.Month{Year: year, Month: time.Month(month), Loc: clk.Location()}
		rng := m.Range()
		from, to := rng.From, rng.To
		expenses, err := store.List(c.UserContext(), repository.ExpenseFilter{From: &from, To: &to})
		if err != nil {
			return httpx.LoadFailed(c, log, err)
		}

		stats := finance.AggregateExpenses(models.FinanceExpenses(expenses, clk.Location()), rng)
		return c.JSON(MonthlySummaryResponse{
			Year:       year,
			Month:      month,
			Label:      m.Label(),
			Items:      stats.ExpensesByCategory,
			GrandTotal: stats.TotalExpenses,
		})
	}
}
