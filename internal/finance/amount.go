package finance

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a money value from loosely typed input: decimals, Go
// numbers, json.Number, raw JSON numbers or strings and numeric strings. ok is
// false for nil, empty, non-numeric, NaN or infinite input.
func ParseAmount(v any) (amount decimal.Decimal, ok bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false
		}
		return *x, true
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return decimal.NewFromInt(int64(x)), true
	case json.Number:
		return fromString(x.String())
	case json.RawMessage:
		return fromJSON(x)
	case string:
		return fromString(x)
	case *string:
		if x == nil {
			return decimal.Zero, false
		}
		return fromString(*x)
	default:
		return decimal.Zero, false
	}
}

// AmountOrZero is ParseAmount with the zero fallback applied.
func AmountOrZero(v any) decimal.Decimal {
	d, _ := ParseAmount(v)
	return d
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromJSON(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		return fromString(s)
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return decimal.Zero, false
	}
	return fromString(text)
}

func fromString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RoundForDisplay rounds to whole rupiah. Only presentation code calls this;
// sums are always taken over unrounded values.
func RoundForDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
