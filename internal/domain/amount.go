package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// FiniteAmount converts a float from an upstream source into a decimal amount.
// NaN and ±Inf become zero so that malformed data never reaches a calculation.
func FiniteAmount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// NonNegative floors an amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Amount wraps a value as a present decimal.NullDecimal.
func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Unbounded is the absent amount, used for the top bracket's upper bound.
var Unbounded = decimal.NullDecimal{}
