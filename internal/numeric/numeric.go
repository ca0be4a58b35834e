package numeric

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Package numeric centralizes the best-effort coercion policy used by the
// pricing and analytics engines: unparsable values never fail, they fall
// back to a caller-supplied default.

// ParseAmount parses a numeric string, accepting a comma as the decimal
// separator ("12,50" == "12.50"). The boolean reports whether the string
// was parsable at all.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d.InexactFloat64(), true
	}
	// second chance: comma-as-decimal-separator
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return d.InexactFloat64(), true
	}
	return 0, false
}

// FloatOK coerces an arbitrary decoded-JSON value to float64, reporting
// whether the coercion succeeded.
func FloatOK(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		return ParseAmount(t)
	default:
		return 0, false
	}
}

// Float coerces an arbitrary decoded-JSON value to float64, returning def
// when the value is missing or unparsable.
func Float(v any, def float64) float64 {
	if f, ok := FloatOK(v); ok {
		return f
	}
	return def
}

// IntOK coerces an arbitrary decoded-JSON value to an int, truncating
// fractional parts, reporting whether the coercion succeeded.
func IntOK(v any) (int, bool) {
	if f, ok := FloatOK(v); ok {
		return int(math.Trunc(f)), true
	}
	return 0, false
}

// Int coerces an arbitrary decoded-JSON value to an int, truncating
// fractional parts, returning def when missing or unparsable.
func Int(v any, def int) int {
	if n, ok := IntOK(v); ok {
		return n
	}
	return def
}

// Truthy reports whether a decoded-JSON value counts as selected: true for
// true booleans, non-zero numbers, non-empty strings and non-empty
// collections. Mirrors the loose truthiness callers send for toggle options.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		return t.String() != "" && t.String() != "0"
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// Round2 rounds to 2 decimal places. Midpoints go to the even neighbor
// (banker's rounding).
func Round2(f float64) float64 {
	return math.RoundToEven(f*100) / 100
}

// Round1 rounds to 1 decimal place, half to even.
func Round1(f float64) float64 {
	return math.RoundToEven(f*10) / 10
}
