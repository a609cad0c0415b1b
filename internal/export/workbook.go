// Package export renders a financial summary as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Laporan Keuangan"

const (
	dateLayout = "02/01/2006"
	rupiahFmt  = "#,##0"
)

type Report struct {
	Summary   finance.Summary
	Range     finance.DateRange
	Generated time.Time
}

// FileName is the download name for a report generated at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("laporan-keuangan_%s.xlsx", t.Format(time.DateOnly))
}

// PeriodText describes the filter range in Indonesian.
func PeriodText(r finance.DateRange) string {
	switch {
	case r.IsOpen():
		return "Semua data"
	case r.From.IsZero():
		return "Sampai " + r.To.Format(dateLayout)
	case r.To.IsZero():
		return "Sejak " + r.From.Format(dateLayout)
	}
	return r.From.Format(dateLayout) + " - " + r.To.Format(dateLayout)
}

// sheet appends rows top to bottom and remembers the first error.
type sheet struct {
	f     *excelize.File
	name  string
	row   int
	money int
	title int
	err   error
}

func (s *sheet) add(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			values[i] = finance.RoundForDisplay(d).InexactFloat64()
		}
	}
	s.err = s.f.SetSheetRow(s.name, cell, &values)
}

// addMoney is add with the rupiah number format on the given 1-based columns.
func (s *sheet) addMoney(cols []int, values ...any) {
	s.add(values...)
	for _, col := range cols {
		s.style(col, s.money)
	}
}

func (s *sheet) section(title string) {
	s.add(title)
	s.style(1, s.title)
}

func (s *sheet) blank() { s.row++ }

func (s *sheet) style(col, style int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellStyle(s.name, cell, cell, style)
}

func rentalPeriod(b finance.Booking) string {
	if b.StartDate == nil || b.EndDate == nil {
		return "-"
	}
	return b.StartDate.Format(dateLayout) + " - " + b.EndDate.Format(dateLayout)
}

func duration(q finance.Quote) string {
	if q.Days < 1 {
		return "-"
	}
	return fmt.Sprintf("%d hari", q.Days)
}

func percent(part, whole decimal.Decimal) string {
	if whole.IsZero() {
		return "0.00"
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// Workbook lays the report out on a single sheet: summary, booking
// statistics, income detail, expense detail, category breakdown, running
// bookings and report info.
func Workbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	numFmt := rupiahFmt
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		f.Close()
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		f.Close()
		return nil, err
	}

	s := &sheet{f: f, name: SheetName, money: money, title: title}
	sum := r.Summary
	period := PeriodText(r.Range)

	s.section("LAPORAN KEUANGAN RENTAL MOBIL")
	s.blank()
	s.section("Informasi Laporan")
	s.add("Periode", "Tanggal Export")
	s.add(period, r.Generated.Format(dateLayout))
	s.blank()

	s.section("RINGKASAN KEUANGAN")
	s.add("Kategori", "Jumlah (Rp)", "Keterangan")
	s.addMoney([]int{2}, "Total Pemasukan", sum.TotalRevenue, fmt.Sprintf("%d booking selesai", sum.CompletedBookings))
	s.addMoney([]int{2}, "Total Pengeluaran", sum.TotalExpenses, fmt.Sprintf("%d transaksi", sum.TotalExpenseTransactions))
	verdict := "Untung"
	if sum.NetProfit.IsNegative() {
		verdict = "Rugi"
	}
	s.addMoney([]int{2}, "Keuntungan Bersih", sum.NetProfit, verdict)
	s.addMoney([]int{2}, "Potensi Pemasukan", sum.PotentialRevenue, fmt.Sprintf("%d booking berjalan", sum.RunningBookings))
	s.blank()

	s.section("STATISTIK BOOKING")
	s.add("Metrik", "Nilai", "Satuan")
	s.add("Total Booking", sum.TotalBookings, "unit")
	s.add("Booking Selesai", sum.CompletedBookings, "unit")
	s.add("Booking Berjalan", sum.RunningBookings, "unit")
	s.addMoney([]int{2}, "Rata-rata per Booking", sum.Metrics.AvgRevenuePerBooking, "Rp")
	s.addMoney([]int{2}, "Rata-rata Pengeluaran", sum.Metrics.AvgExpense, "Rp")
	s.add("Margin Keuntungan", sum.Metrics.ProfitMargin.StringFixed(2), "%")
	s.blank()

	s.section("DETAIL PEMASUKAN")
	s.add("No", "Tanggal", "Customer", "Unit", "Durasi", "Periode Sewa", "Jenis", "Order ID", "Harga Dasar", "Diskon", "Total Harga")
	for i, pb := range sum.Bookings.Completed {
		s.addMoney([]int{9, 10, 11}, i+1, pb.CreatedAt.Format(dateLayout), pb.CustomerName, pb.Unit,
			duration(pb.Quote), rentalPeriod(pb.Booking), pb.Jenis, pb.OrderID,
			pb.Quote.Base, pb.Quote.Discount, pb.Quote.Total)
	}
	s.blank()
	s.section("SUBTOTAL PEMASUKAN")
	s.add("Item", "Jumlah")
	s.add("Total Booking Selesai", fmt.Sprintf("%d booking", len(sum.Bookings.Completed)))
	s.addMoney([]int{2}, "Total Pemasukan", sum.TotalRevenue)
	s.blank()

	s.section("DETAIL PENGELUARAN")
	s.add("No", "Tanggal", "Deskripsi", "Kategori", "Jumlah (Rp)")
	for i, e := range sum.Expenses.Items {
		s.addMoney([]int{5}, i+1, e.Date.Format(dateLayout), e.Description, finance.CategoryOf(e.Category), e.Amount)
	}
	s.blank()
	s.section("SUBTOTAL PENGELUARAN")
	s.add("Item", "Jumlah")
	s.add("Total Transaksi", fmt.Sprintf("%d transaksi", len(sum.Expenses.Items)))
	s.addMoney([]int{2}, "Total Pengeluaran", sum.TotalExpenses)
	s.blank()

	s.section("PENGELUARAN PER KATEGORI")
	s.add("Kategori", "Jumlah (Rp)", "Persentase (%)")
	for _, c := range sum.ExpensesByCategory {
		s.addMoney([]int{2}, c.Category, c.Amount, percent(c.Amount, sum.TotalExpenses))
	}
	s.blank()

	if len(sum.Bookings.Running) > 0 {
		s.section("BOOKING BERJALAN (POTENSI PEMASUKAN)")
		s.add("No", "Customer", "Unit", "Durasi", "Periode Sewa", "Jenis", "Order ID", "Potensi Harga (Rp)")
		for i, pb := range sum.Bookings.Running {
			s.addMoney([]int{8}, i+1, pb.CustomerName, pb.Unit, duration(pb.Quote), rentalPeriod(pb.Booking),
				pb.Jenis, pb.OrderID, pb.Quote.Total)
		}
		s.blank()
		s.section("SUBTOTAL BOOKING BERJALAN")
		s.add("Item", "Jumlah")
		s.add("Total Booking Berjalan", fmt.Sprintf("%d booking", len(sum.Bookings.Running)))
		s.addMoney([]int{2}, "Total Potensi Pemasukan", sum.PotentialRevenue)
		s.blank()
	}

	s.section("INFORMASI LAPORAN")
	s.add("Item", "Detail")
	s.add("Dibuat pada", r.Generated.Format(dateLayout+" 15:04"))
	s.add("Total Data Booking", fmt.Sprintf("%d record", sum.TotalBookings))
	s.add("Total Data Pengeluaran", fmt.Sprintf("%d record", sum.TotalExpenseTransactions))
	s.add("Filter Periode", period)

	if s.err == nil {
		s.err = f.SetColWidth(SheetName, "A", "K", 18)
	}
	if s.err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", s.err)
	}
	return f, nil
}

// Write renders the report straight to w.
func Write(w io.Writer, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
