package finance

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	s := "125000.50"
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"nil", nil, "0", false},
		{"int", 50000, "50000", true},
		{"int64", int64(75000), "75000", true},
		{"float", 12.5, "12.5", true},
		{"numeric string", " 30000 ", "30000", true},
		{"string pointer", &s, "125000.50", true},
		{"json number", json.Number("20000"), "20000", true},
		{"decimal", decimal.NewFromInt(42), "42", true},
		{"raw json number", json.RawMessage(`250000`), "250000", true},
		{"raw json string", json.RawMessage(`"275000.5"`), "275000.5", true},
		{"raw json null", json.RawMessage(`null`), "0", false},
		{"raw json bool", json.RawMessage(`true`), "0", false},
		{"raw json missing", json.RawMessage(nil), "0", false},
		{"empty string", "", "0", false},
		{"garbage", "abc", "0", false},
		{"nan", math.NaN(), "0", false},
		{"unsupported type", []int{1}, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestRoundForDisplay(t *testing.T) {
	assertDecimal(t, "1001", RoundForDisplay(decimal.RequireFromString("1000.5")))
	assertDecimal(t, "1000", RoundForDisplay(decimal.RequireFromString("1000.49")))
}
