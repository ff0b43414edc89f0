// Package engine holds the pure budget computations: recurring expense
// generation, spend aggregation, allocation planning and report rendering.
// Nothing in this package performs I/O.
package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbol = "€"

// SetCurrencySymbol changes the symbol appended by FormatCurrency. It is
// meant to be called once at startup.
func SetCurrencySymbol(symbol string) {
	if symbol != "" {
		currencySymbol = symbol
	}
}

// FormatCurrency renders an amount the French way: "1 234,56 €".
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + fracPart + " " + currencySymbol
	if negative {
		return "-" + out
	}
	return out
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
