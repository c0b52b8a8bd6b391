// Package mathutil implements the fixed-precision price arithmetic used
// throughout the engine. All results are rounded to 2 decimal places with
// round-half-to-even so that repeated calculations don't accumulate a
// systematic bias.
package mathutil

import "github.com/shopspring/decimal"

const scale = 2

// Round2 rounds v to 2 decimal places using banker's rounding.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(scale).InexactFloat64()
}

// Add returns a+b at 2 decimal places.
func Add(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).RoundBank(scale).InexactFloat64()
}

// Sub returns a-b at 2 decimal places.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).RoundBank(scale).InexactFloat64()
}

// Mul returns a*b at 2 decimal places.
func Mul(a, b float64) float64 {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).RoundBank(scale).InexactFloat64()
}

// Div returns a/b at 2 decimal places. Division by zero yields 0 rather than
// an infinity or NaN that would poison downstream aggregates.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).RoundBank(scale).InexactFloat64()
}

// WholePercentage returns a/b expressed as a whole percentage, rounded to the
// nearest integer. Returns 0 when b is 0.
func WholePercentage(a, b float64) int {
	if b == 0 {
		return 0
	}
	return int(decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
