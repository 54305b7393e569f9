package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatEUR renders an amount the way the booking summary shows totals,
// with French digit grouping and a trailing euro sign.
func FormatEUR(amount int64) string {
	return frenchPrinter.Sprintf("%d", amount) + "€"
}
