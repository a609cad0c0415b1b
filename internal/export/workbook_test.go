package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/drizz21/car-rent-new/internal/finance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var wib = time.FixedZone("WIB", 7*3600)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, wib)
	return &t
}

func sampleSummary() finance.Summary {
	created := time.Date(2024, time.January, 1, 9, 0, 0, 0, wib)
	cars := []finance.Car{{ID: 1, Name: "Avanza", DayRate: decimal.NewFromInt(300000)}}
	bookings := []finance.Booking{
		{ID: 1, OrderID: "ORD-A", CustomerName: "Budi", Unit: "Avanza", Jenis: "Lepas kunci", RentalType: finance.RentalNormal,
			Status: finance.StatusCompleted, StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 4), CreatedAt: created},
		{ID: 2, OrderID: "ORD-B", CustomerName: "Sari", Unit: "Avanza", Jenis: "Mobil + sopir", RentalType: finance.RentalWithDriver,
			Status: finance.StatusRunning, StartDate: day(2024, 1, 2), EndDate: day(2024, 1, 3), CreatedAt: created},
	}
	expenses := []finance.Expense{
		{ID: 1, Description: "Isi bensin", Amount: decimal.NewFromInt(150000), Category: "Bahan Bakar", Date: created},
	}
	return finance.BuildSummary(cars, bookings, expenses, finance.DateRange{}, created)
}

func rowsByLabel(t *testing.T, buf *bytes.Buffer) map[string][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	out := make(map[string][]string)
	for _, r := range rows {
		if len(r) > 0 && r[0] != "" {
			if _, seen := out[r[0]]; !seen {
				out[r[0]] = r
			}
		}
	}
	return out
}

func TestWriteContainsSummaryValues(t *testing.T) {
	var buf bytes.Buffer
	rng := finance.NewDateRange(day(2024, 1, 1), day(2024, 1, 31), wib)
	err := Write(&buf, Report{Summary: sampleSummary(), Range: rng, Generated: time.Date(2024, 2, 1, 8, 0, 0, 0, wib)})
	require.NoError(t, err)

	rows := rowsByLabel(t, &buf)

	assert.Equal(t, "900000", rows["Total Pemasukan"][1])
	assert.Equal(t, "150000", rows["Total Pengeluaran"][1])
	assert.Equal(t, "750000", rows["Keuntungan Bersih"][1])
	assert.Equal(t, "Untung", rows["Keuntungan Bersih"][2])
	assert.Equal(t, "240000", rows["Potensi Pemasukan"][1])
	assert.Equal(t, "01/01/2024 - 31/01/2024", rows["Filter Periode"][1])
	assert.Equal(t, "100.00", rows["Bahan Bakar"][2])
	assert.Contains(t, rows, "BOOKING BERJALAN (POTENSI PEMASUKAN)")
}

func TestWorkbookWithoutData(t *testing.T) {
	empty := finance.BuildSummary(nil, nil, nil, finance.DateRange{}, time.Now())
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Report{Summary: empty, Generated: time.Now()}))

	rows := rowsByLabel(t, &buf)
	assert.Equal(t, "Semua data", rows["Filter Periode"][1])
	assert.NotContains(t, rows, "BOOKING BERJALAN (POTENSI PEMASUKAN)")
}

func TestPeriodText(t *testing.T) {
	assert.Equal(t, "Sejak 05/03/2024", PeriodText(finance.NewDateRange(day(2024, 3, 5), nil, wib)))
	assert.Equal(t, "Sampai 05/03/2024", PeriodText(finance.NewDateRange(nil, day(2024, 3, 5), wib)))
	assert.Equal(t, "laporan-keuangan_2024-03-05.xlsx", FileName(*day(2024, 3, 5)))
}
