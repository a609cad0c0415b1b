package finance

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is used for expenses stored without a category.
const DefaultCategory = "Lainnya"

// CategoryOf returns the aggregation key of an expense category.
func CategoryOf(category string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	return DefaultCategory
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryTotals is ordered by descending amount; equal amounts keep the order
// in which their category was first seen. It marshals as a JSON object whose
// keys follow that order.
type CategoryTotals []CategoryTotal

func (ct CategoryTotals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range ct {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(c.Amount.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Map returns the totals keyed by category.
func (ct CategoryTotals) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(ct))
	for _, c := range ct {
		m[c.Category] = c.Amount
	}
	return m
}

// Top returns the largest category, or false when there is none.
func (ct CategoryTotals) Top() (CategoryTotal, bool) {
	if len(ct) == 0 {
		return CategoryTotal{}, false
	}
	return ct[0], true
}

// GroupByCategory sums amounts per category.
func GroupByCategory(expenses []Expense) CategoryTotals {
	pos := make(map[string]int)
	var out CategoryTotals
	for _, e := range expenses {
		key := CategoryOf(e.Category)
		i, seen := pos[key]
		if !seen {
			pos[key] = len(out)
			out = append(out, CategoryTotal{Category: key, Amount: decimal.Zero})
			i = len(out) - 1
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	return out
}

// SumExpenses adds up all amounts.
func SumExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// FilterExpenses keeps expenses whose date falls inside rng.
func FilterExpenses(expenses []Expense, rng DateRange) []Expense {
	if rng.IsOpen() {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if rng.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// ExpenseStats is the expense half of a financial summary.
type ExpenseStats struct {
	TotalExpenses            decimal.Decimal `json:"totalExpenses"`
	TotalExpenseTransactions int             `json:"totalExpenseTransactions"`
	ExpensesByCategory       CategoryTotals  `json:"expensesByCategory"`

	Items []Expense `json:"-"`
}

func AggregateExpenses(expenses []Expense, rng DateRange) ExpenseStats {
	filtered := FilterExpenses(expenses, rng)
	return ExpenseStats{
		TotalExpenses:            SumExpenses(filtered),
		TotalExpenseTransactions: len(filtered),
		ExpensesByCategory:       GroupByCategory(filtered),
		Items:                    filtered,
	}
}

// ExpenseOverview backs the expense page cards: all-time, today's and this
// month's totals plus the breakdown of the currently filtered list.
type ExpenseOverview struct {
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TodayExpenses     decimal.Decimal `json:"today_expenses"`
	MonthlyExpenses   decimal.Decimal `json:"monthly_expenses"`
	FilteredTotal     decimal.Decimal `json:"filtered_total"`
	TotalTransactions int             `json:"total_transactions"`
	ByCategory        CategoryTotals  `json:"expenses_by_category"`
	TopCategory       string          `json:"top_category"`
	TopAmount         decimal.Decimal `json:"top_amount"`
}

// NoTopCategory labels the top category when there are no expenses.
const NoTopCategory = "Belum ada data"

func OverviewExpenses(all, filtered []Expense, now time.Time) ExpenseOverview {
	today := NewDateRange(&now, &now, now.Location())
	ov := ExpenseOverview{
		TotalExpenses:     SumExpenses(all),
		TodayExpenses:     SumExpenses(FilterExpenses(all, today)),
		MonthlyExpenses:   SumExpenses(FilterExpenses(all, ThisMonth(now))),
		FilteredTotal:     SumExpenses(filtered),
		TotalTransactions: len(filtered),
		ByCategory:        GroupByCategory(filtered),
		TopCategory:       NoTopCategory,
		TopAmount:         decimal.Zero,
	}
	if top, ok := ov.ByCategory.Top(); ok {
		ov.TopCategory = top.Category
		ov.TopAmount = top.Amount
	}
	return ov
}
