package report

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultPrecision is the number of decimal places used when none is given.
const DefaultPrecision = 2

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Round rounds half away from zero to places decimals. Non-finite values
// round to 0.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64() //nolint:gosec // places is small
}

// FormatNumber renders v with thousand separators and exactly places
// decimals.
func FormatNumber(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	return printer.Sprint(number.Decimal(Round(v, places), number.Scale(places)))
}

// FormatCurrency renders a pound amount with pence.
func FormatCurrency(v float64) string {
	s := FormatNumber(math.Abs(v), 2)
	if Round(v, 2) < 0 {
		return "-£" + s
	}
	return "£" + s
}

// FormatPercent renders v, already in percent, with one decimal.
func FormatPercent(v float64) string {
	return FormatNumber(v, 1) + "%"
}

// FormatRate renders a fractional rate such as 0.045 as a percentage.
func FormatRate(rate float64) string {
	return FormatNumber(rate*100, 2) + "%"
}
