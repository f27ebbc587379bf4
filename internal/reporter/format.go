package reporter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// FormatSEK renders an amount with two decimals, space thousands grouping
// and a decimal comma: 1234.5 -> "1 234,50".
func FormatSEK(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + groupThousands(intPart) + "," + fracPart
}

// FormatDecimal renders v with the given number of decimals and a decimal comma.
func FormatDecimal(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return strings.Replace(s, ".", ",", 1)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// padRight left-aligns s in a column of display width w. Longer values are
// kept whole.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

// padLeft right-aligns s in a column of display width w.
func padLeft(s string, w int) string {
	return runewidth.FillLeft(s, w)
}
