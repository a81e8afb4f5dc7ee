package offer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePrice converts an arbitrary provider value into a price. It accepts
// numbers, numeric strings, and currency-formatted strings ("$1,299.99").
// Every rune that is not a digit, a decimal point, or a leading minus sign
// is stripped before parsing. Returns nil when no usable number remains.
// It never panics on malformed input.
func ParsePrice(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return finite(float64(val))
	case int64:
		return finite(float64(val))
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		return finite(f)
	case string:
		return parsePriceString(val)
	default:
		return nil
	}
}

// FirstPrice resolves the first present key in rec against the candidate
// list and parses it. Keys are tried in order; a key that is present but
// unparseable still wins the resolution (and yields nil).
func FirstPrice(rec map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return ParsePrice(v)
		}
	}
	return nil
}

func parsePriceString(s string) *float64 {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
