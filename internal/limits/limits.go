// Package limits computes stop-loss and take-profit price levels, including
// the adaptive sizing rule that scales limits with the signal candle's range
// during abnormal volatility.
package limits

import "github.com/jwtly10/sweepbook/internal/mathutil"

// Limit offsets price by increment in the given direction, rounded to 2
// decimal places.
func Limit(price, increment float64, add bool) float64 {
	if add {
		return mathutil.Round2(price + increment)
	}
	return mathutil.Round2(price - increment)
}

// Resolve picks the effective limit distance for an entry.
//
// When the observed window (typically the signal candle's full range) is
// smaller than the configured increment, the fixed increment applies. When the
// window dominates, limits scale with it instead: targets additionally apply
// the profit multiplier, stops use the window as-is. A zero window therefore
// always selects the fixed configured increment.
func Resolve(window, price, configured float64, add, scaleForTarget bool, profitMultiplier float64) float64 {
	if window < configured {
		return Limit(price, configured, add)
	}
	if scaleForTarget {
		return Limit(price, mathutil.Mul(window, profitMultiplier), add)
	}
	return Limit(price, window, add)
}
