// Package format renders money, numbers and dates the way the back office
// prints them (pt-BR conventions).
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var hundred = decimal.NewFromInt(100)

// Currency formats v as Brazilian reais with two decimals: "R$ 1.234,56".
func Currency(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	v = v.Round(2)
	units := v.Truncate(0)
	cents := v.Sub(units).Mul(hundred).IntPart()
	return fmt.Sprintf("%sR$ %s,%02d", sign, Thousands(units.IntPart()), cents)
}

// Thousands groups the digits of n with the pt-BR separator: "1.234.567".
func Thousands(n int64) string {
	return printer.Sprintf("%d", n)
}

// PercentageOf returns total * (percentage / 100).
func PercentageOf(percentage, total decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage.Div(hundred))
}

// Date parses an ISO-8601 date or timestamp and formats it with a
// date-fns style pattern such as "dd-MM-yyyy" or "d/MM/yyyy".
func Date(iso, pattern string) (string, error) {
	t, err := parseISO(iso)
	if err != nil {
		return "", err
	}
	return t.Format(Layout(pattern)), nil
}

// DateOr is Date with a fallback for empty or unparseable input.
func DateOr(iso, pattern, fallback string) string {
	if iso == "" {
		return fallback
	}
	s, err := Date(iso, pattern)
	if err != nil {
		return fallback
	}
	return s
}

// Layout converts a date-fns pattern to a Go time layout. Only the tokens the
// reports use are translated; anything else is copied through.
func Layout(pattern string) string {
	tokens := []struct{ from, to string }{
		{"yyyy", "2006"},
		{"yy", "06"},
		{"MM", "01"},
		{"dd", "02"},
		{"HH", "15"},
		{"mm", "04"},
		{"ss", "05"},
		{"M", "1"},
		{"d", "2"},
	}
	var b strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tk := range tokens {
			if strings.HasPrefix(pattern[i:], tk.from) {
				b.WriteString(tk.to)
				i += len(tk.from)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func parseISO(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format: unrecognized date %q", s)
}
