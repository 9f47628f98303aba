package tui

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatPrice renders a USD amount with grouping; sub-dollar prices keep
// more precision.
func formatPrice(v float64) string {
	if math.Abs(v) < 1 {
		return printer.Sprintf("$%.6f", v)
	}
	return printer.Sprintf("$%.2f", v)
}

func formatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}
