package model

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// idrPrinter formats numbers with id-ID conventions: "." groups thousands
// and "," separates decimals.
var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR formats an amount as Indonesian rupiah, e.g. "Rp 12.000".
func FormatIDR(amount float64) string {
	return "Rp " + idrPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatValue returns the display form of a discount's value:
// "15%" for percent discounts and rupiah for everything else.
func FormatValue(d *Discount) string {
	if d == nil {
		return "-"
	}
	if d.Type.IsPercent() {
		return strconv.FormatFloat(d.Value, 'f', -1, 64) + "%"
	}
	return FormatIDR(d.Value)
}
