package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FractionMode controls how paise are handled before conversion to words
type FractionMode string

const (
	// FractionTruncate drops paise (12.99 -> Twelve)
	FractionTruncate FractionMode = "truncate"
	// FractionRound rounds half-up to whole rupees (12.50 -> Thirteen)
	FractionRound FractionMode = "round"
)

// ParseFractionMode maps a configured name to a mode. Empty means truncate.
func ParseFractionMode(s string) (FractionMode, error) {
	switch FractionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FractionTruncate:
		return FractionTruncate, nil
	case FractionRound:
		return FractionRound, nil
	default:
		return "", fmt.Errorf("unknown fraction mode: %s", s)
	}
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// multiplier is one positional unit of the Indian system
type multiplier struct {
	value int64
	name  string
}

// highest first
var multipliers = []multiplier{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells out n in the Indian numbering system.
// NumberToWords(0) is "Zero"; callers append "Only".
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		// magnitude via uint64 so MinInt64 does not overflow
		return "Minus " + strings.Join(spell(uint64(-(n+1))+1), " ")
	}
	return strings.Join(spell(uint64(n)), " ")
}

// spell returns the words for n > 0, highest group first
func spell(n uint64) []string {
	var words []string
	for _, m := range multipliers {
		v := uint64(m.value)
		if n < v {
			continue
		}
		group := n / v
		n %= v
		if m.name == "Crore" && group > 99 {
			words = append(words, spell(group)...)
		} else {
			words = append(words, belowHundred(group)...)
		}
		words = append(words, m.name)
	}
	if n > 0 {
		words = append(words, belowHundred(n)...)
	}
	return words
}

func belowHundred(n uint64) []string {
	if n < 20 {
		return []string{ones[n]}
	}
	if n%10 == 0 {
		return []string{tens[n/10]}
	}
	return []string{tens[n/10], ones[n%10]}
}

// WholeRupees reduces amount to an integer per mode
func WholeRupees(amount decimal.Decimal, mode FractionMode) int64 {
	if mode == FractionRound {
		return amount.Round(0).IntPart()
	}
	return amount.Truncate(0).IntPart()
}

// InWords converts the integer part of amount. Paise are truncated unless
// mode is FractionRound.
func InWords(amount decimal.Decimal, mode FractionMode) string {
	return NumberToWords(WholeRupees(amount, mode))
}

// AmountInWords returns the phrase printed on the invoice,
// e.g. "INR Fifty Nine Thousand Only".
func (f Formatter) AmountInWords(amount decimal.Decimal) string {
	return "INR " + InWords(amount, f.Fraction) + " Only"
}
