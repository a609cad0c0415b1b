package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// MonthLabel returns the Indonesian short name of m.
func MonthLabel(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthLabels[m-1]
}

// Month is one calendar month in a given location.
type Month struct {
	Year  int
	Month time.Month
	Loc   *time.Location
}

func (m Month) Label() string { return MonthLabel(m.Month) }

// Range covers the whole month.
func (m Month) Range() DateRange {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.Loc)
	last := first.AddDate(0, 1, -1)
	return NewDateRange(&first, &last, m.Loc)
}

// Contains compares month and year of t in the month's location.
func (m Month) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(m.Loc)
	return t.Year() == m.Year && t.Month() == m.Month
}

// MonthWindow returns n consecutive months ending with now's month, oldest first.
func MonthWindow(now time.Time, n int) []Month {
	if n < 1 {
		return nil
	}
	loc := now.Location()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	months := make([]Month, n)
	for i := 0; i < n; i++ {
		t := anchor.AddDate(0, -(n - 1 - i), 0)
		months[i] = Month{Year: t.Year(), Month: t.Month(), Loc: loc}
	}
	return months
}

// MonthBucket is one row of the monthly series.
type MonthBucket struct {
	Month     string          `json:"month"`
	Year      int             `json:"year"`
	Income    decimal.Decimal `json:"pemasukan"`
	Expense   decimal.Decimal `json:"pengeluaran"`
	Profit    decimal.Decimal `json:"profit"`
	Completed int             `json:"order_selesai"`
}

type MonthlyTotals struct {
	Income    decimal.Decimal `json:"pemasukan"`
	Expense   decimal.Decimal `json:"pengeluaran"`
	Profit    decimal.Decimal `json:"profit"`
	Completed int             `json:"order_selesai"`
}

type MonthlySeries struct {
	Months []MonthBucket `json:"months"`
	Totals MonthlyTotals `json:"totals"`
}

// BuildMonthlySeries buckets completed income by booking creation month and
// expenses by expense date. Every month in the window is present.
func BuildMonthlySeries(cars []Car, bookings []Booking, expenses []Expense, months []Month) MonthlySeries {
	idx := IndexCars(cars)
	series := MonthlySeries{
		Months: make([]MonthBucket, len(months)),
		Totals: MonthlyTotals{Income: decimal.Zero, Expense: decimal.Zero, Profit: decimal.Zero},
	}

	for i, m := range months {
		bucket := MonthBucket{
			Month:   m.Label(),
			Year:    m.Year,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		for _, b := range bookings {
			if BucketOf(b.Status) != BucketCompleted || !m.Contains(b.CreatedAt) {
				continue
			}
			bucket.Completed++
			q, _ := PriceBooking(b, idx)
			bucket.Income = bucket.Income.Add(q.Total)
		}
		for _, e := range expenses {
			if m.Contains(e.Date) {
				bucket.Expense = bucket.Expense.Add(e.Amount)
			}
		}
		bucket.Profit = bucket.Income.Sub(bucket.Expense)
		series.Months[i] = bucket

		series.Totals.Income = series.Totals.Income.Add(bucket.Income)
		series.Totals.Expense = series.Totals.Expense.Add(bucket.Expense)
		series.Totals.Profit = series.Totals.Profit.Add(bucket.Profit)
		series.Totals.Completed += bucket.Completed
	}
	return series
}

// Metrics are ratios derived from a summary. Each is zero when its
// denominator is zero.
type Metrics struct {
	AvgRevenuePerBooking decimal.Decimal `json:"avgRevenuePerBooking"`
	AvgExpense           decimal.Decimal `json:"avgExpense"`
	ProfitMargin         decimal.Decimal `json:"profitMargin"`
}

var hundred = decimal.NewFromInt(100)

func ComputeMetrics(revenue, expenses, profit decimal.Decimal, completed, expenseCount int) Metrics {
	m := Metrics{AvgRevenuePerBooking: decimal.Zero, AvgExpense: decimal.Zero, ProfitMargin: decimal.Zero}
	if completed > 0 {
		m.AvgRevenuePerBooking = revenue.Div(decimal.NewFromInt(int64(completed)))
	}
	if expenseCount > 0 {
		m.AvgExpense = expenses.Div(decimal.NewFromInt(int64(expenseCount)))
	}
	if !revenue.IsZero() {
		m.ProfitMargin = profit.Div(revenue).Mul(hundred)
	}
	return m
}

// Summary is the financial statistics object of a report page.
type Summary struct {
	TotalRevenue             decimal.Decimal `json:"totalRevenue"`
	PotentialRevenue         decimal.Decimal `json:"potentialRevenue"`
	TotalExpenses            decimal.Decimal `json:"totalExpenses"`
	NetProfit                decimal.Decimal `json:"netProfit"`
	CompletedBookings        int             `json:"completedBookings"`
	RunningBookings          int             `json:"runningBookings"`
	TotalBookings            int             `json:"totalBookings"`
	TodayBookings            int             `json:"todayBookings"`
	TotalExpenseTransactions int             `json:"totalExpenseTransactions"`
	ExpensesByCategory       CategoryTotals  `json:"expensesByCategory"`
	Metrics                  Metrics         `json:"metrics"`

	Bookings BookingStats `json:"-"`
	Expenses ExpenseStats `json:"-"`
}

// BuildSummary aggregates bookings and expenses over rng. now fixes "today"
// and the business location.
func BuildSummary(cars []Car, bookings []Booking, expenses []Expense, rng DateRange, now time.Time) Summary {
	bs := AggregateBookings(bookings, cars, rng, now)
	es := AggregateExpenses(expenses, rng)
	profit := bs.TotalRevenue.Sub(es.TotalExpenses)

	return Summary{
		TotalRevenue:             bs.TotalRevenue,
		PotentialRevenue:         bs.PotentialRevenue,
		TotalExpenses:            es.TotalExpenses,
		NetProfit:                profit,
		CompletedBookings:        bs.CompletedBookings,
		RunningBookings:          bs.RunningBookings,
		TotalBookings:            bs.TotalBookings,
		TodayBookings:            bs.TodayBookings,
		TotalExpenseTransactions: es.TotalExpenseTransactions,
		ExpensesByCategory:       es.ExpensesByCategory,
		Metrics:                  ComputeMetrics(bs.TotalRevenue, es.TotalExpenses, profit, bs.CompletedBookings, es.TotalExpenseTransactions),
		Bookings:                 bs,
		Expenses:                 es,
	}
}
