package models

import (
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/shopspring/decimal"
)

// ExpenseCategories is the set accepted on write. Older rows may carry other
// values and are still aggregated under their own name.
var ExpenseCategories = []string{
	"Operasional",
	"Maintenance",
	"Bahan Bakar",
	"Asuransi",
	"Pajak",
	"Gaji",
	"Marketing",
	finance.DefaultCategory,
}

func IsExpenseCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string          `gorm:"size:50;index" json:"category"`
	Date        time.Time       `gorm:"type:date;index;not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FinanceExpense maps a stored expense to the aggregation input. The DATE
// column is re-anchored to loc so day filters see the stored calendar date.
func (e Expense) FinanceExpense(loc *time.Location) finance.Expense {
	return finance.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    finance.CategoryOf(e.Category),
		Date:        finance.CalendarDate(e.Date, loc),
	}
}

func FinanceExpenses(expenses []Expense, loc *time.Location) []finance.Expense {
	out := make([]finance.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = e.FinanceExpense(loc)
	}
	return out
}
