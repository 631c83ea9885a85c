// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with the currency symbol, thousands
// separators, and two decimals. e.g., 1234.5 -> "$1,234.50", -200 -> "-$200.00"
func FormatMoney(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + currency + fixed
	}
	return sign + currency + FormatNumber(n) + "." + frac
}

// FormatDays formats a (possibly fractional) number of days.
// e.g., 1 -> "1 day", 5.2966 -> "5.3 days", +Inf -> "∞ days"
func FormatDays(days float64) string {
	switch {
	case math.IsInf(days, 1):
		return "∞ days"
	case days == 1:
		return "1 day"
	case days == math.Trunc(days):
		return fmt.Sprintf("%.0f days", days)
	}
	return fmt.Sprintf("%.1f days", days)
}

// FormatDayCount formats a whole number of days.
func FormatDayCount(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d day", n)
	}
	return fmt.Sprintf("%d days", n)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatDate formats a calendar date as "Mon Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 2, 2006")
}
