package wage

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// x/text carries CLDR number data for "nb" (Bokmål) but not the generic
// "no" tag (language.Norwegian), which falls back to root-locale separators.
var printer = message.NewPrinter(language.MustParse("nb"))

// FormatCurrency renders an amount in kroner with Norwegian separators.
func FormatCurrency(amount float64) string {
	return printer.Sprintf("%v kr", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatHours renders an hour count with at most two decimals.
func FormatHours(hours float64) string {
	return printer.Sprintf("%v t", number.Decimal(hours,
		number.MaxFractionDigits(2)))
}
