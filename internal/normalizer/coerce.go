package normalizer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// SafeInt parses value as an integer. Empty or unparsable input yields def.
func SafeInt(value string, def int) int {
	v, ok := parseInt(value)
	if !ok {
		return def
	}
	return v
}

// SafeFloat parses value as a float. Empty, unparsable or non-finite input yields def.
func SafeFloat(value string, def float64) float64 {
	v, ok := parseFloat(value)
	if !ok {
		return def
	}
	return v
}

// NormalizeCost rewrites a Swedish formatted amount ("1 234,56") into
// a plain decimal literal ("1234.56"). Thousands separators may be regular,
// no-break or narrow no-break spaces.
func NormalizeCost(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == ',':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseCost normalizes and parses a cost field. Empty input is zero.
// fellBack is true when a non-empty value could not be parsed.
func ParseCost(value string) (cost decimal.Decimal, fellBack bool) {
	normalized := NormalizeCost(value)
	if normalized == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}

func parseInt(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
