// Package amount formats money for Indian invoices: lakh/crore digit grouping
// and conversion of totals to words.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/gst-invoice/internal/decimal"
)

// RupeeSymbol is the default currency prefix
const RupeeSymbol = "₹"

// Formatter renders amounts with a configurable currency prefix
type Formatter struct {
	Symbol   string
	Fraction FractionMode
}

// NewFormatter returns a formatter using the rupee sign and truncation of paise
func NewFormatter() Formatter {
	return Formatter{Symbol: RupeeSymbol, Fraction: FractionTruncate}
}

// FormatCurrency formats with the default rupee prefix.
// 1234567 -> "₹12,34,567.00"
func FormatCurrency(amount decimal.Decimal) string {
	return NewFormatter().FormatCurrency(amount)
}

// FormatCurrency formats amount with Indian grouping and two decimals.
// Negative values are prefixed "-" before the symbol.
func (f Formatter) FormatCurrency(amount decimal.Decimal) string {
	s := f.Symbol + FormatNumber(amount.Abs())
	if money.RoundMoney(amount).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatNumber groups the integer part Indian style (last three digits, then
// pairs) and keeps two fixed decimals. The sign is kept.
func FormatNumber(amount decimal.Decimal) string {
	fixed := money.RoundMoney(amount).StringFixed(money.MinorUnits)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return sign + GroupIndian(intPart) + "." + fracPart
}

// GroupIndian inserts separators into a string of digits.
// "1234567" -> "12,34,567"
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
