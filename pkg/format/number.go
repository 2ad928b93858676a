// Package format renders amounts and scores for display.
package format

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/staffing-planner/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns n with thousands separators (e.g., "-20,000,000").
func Amount(n int) string {
	return printer.Sprintf("%d", n)
}

// Variation returns a coefficient of variation rounded for display (e.g., "0.3333").
func Variation(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.VariationPrecision, 64)
}

// Range describes the 1-based item range of a page (e.g., "101-200 of 1,234").
func Range(start, end, total int) string {
	if total == 0 {
		return "0 of 0"
	}
	return fmt.Sprintf("%s-%s of %s", Amount(start+1), Amount(end), Amount(total))
}
