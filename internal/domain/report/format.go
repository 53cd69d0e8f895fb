package report

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display layout for dates throughout rendered reports.
const DateLayout = "02-01-2006"

// FormatDate formats a nullable date; nil renders as empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatBool renders a boolean as Yes/No.
func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FormatCurrency renders an amount with the rupee sign and two decimals.
func FormatCurrency(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// FormatInt renders an integer display value.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatDecimal renders a plain decimal with two fixed places.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}
