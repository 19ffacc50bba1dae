// Package currency renders peso amounts the way the storefront displays
// them: Colombian locale, whole units, no decimals.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formats a whole-unit COP amount, e.g. 38000 -> "$ 38.000".
func FormatCOP(amount int64) string {
	return printer.Sprintf("$ %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
