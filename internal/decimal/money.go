package decimal

import (
	"github.com/shopspring/decimal"
)

// MinorUnits is the number of decimal places kept for INR (paise)
const MinorUnits = 2

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates decimal from float rounded to paise
func FromFloat(v float64) decimal.Decimal {
	return RoundMoney(decimal.NewFromFloat(v))
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// RoundMoney rounds half-up to paise.
// shopspring rounds half away from zero, which is half-up for the
// non-negative amounts an invoice carries.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnits)
}

// Mul multiplies two decimals, rounds to paise
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return RoundMoney(a.Mul(b))
}

// Share computes amount * (ratePercent/100) rounded to paise.
// The rate itself is used unrounded.
func Share(amount, ratePercent decimal.Decimal) decimal.Decimal {
	if ratePercent.IsZero() {
		return Zero
	}
	return RoundMoney(amount.Mul(ratePercent).Div(hundred))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// ClampNonNegative returns d, or zero when d is negative
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}
