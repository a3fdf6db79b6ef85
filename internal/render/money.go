package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats d as $1,234.56.
func Money(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-$" + Grouped(d.Abs())
	}

	return "$" + Grouped(d)
}

// Grouped formats d with two decimals and thousands separators.
func Grouped(d decimal.Decimal) string {
	fixed := d.Round(2).Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n := decimal.RequireFromString(whole).IntPart()

	out := printer.Sprintf("%d", n) + "." + frac
	if d.Round(2).IsNegative() {
		return "-" + out
	}

	return out
}

func float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
