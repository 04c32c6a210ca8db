// Package common provides shared formatting and logging utilities for the
// signal portal.
package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a float as a dollar amount with two fraction digits
// and comma separators. Negative values carry a leading minus so the sign
// survives into the formatted string ("-$500.00").
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}

	d := decimal.NewFromFloat(v)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, cents, _ := strings.Cut(fixed, ".")
	whole = groupThousands(whole)

	if negative {
		return fmt.Sprintf("-$%s.%s", whole, cents)
	}
	return fmt.Sprintf("$%s.%s", whole, cents)
}

// FormatPercentage formats a value with two fraction digits and a percent
// symbol. Non-finite values render as "N/A", which the classifier treats
// as neutral.
func FormatPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedCurrency formats a dollar amount with an explicit +/- prefix.
func FormatSignedCurrency(v float64) string {
	if v >= 0 {
		return "+" + FormatCurrency(v)
	}
	return FormatCurrency(v)
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
