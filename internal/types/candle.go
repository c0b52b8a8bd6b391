package types

import (
	"time"

	"github.com/jwtly10/sweepbook/internal/mathutil"
)

// noiseFloor is the minimum body size for a candle to count as directional.
// Smaller bodies are treated as market noise.
const noiseFloor = 1.25

// dojiBodyPercent is the body-to-range ratio (as a whole percentage) at or
// below which a candle is considered indecisive.
const dojiBodyPercent = 10

// Candle is an immutable OHLC price bar for a fixed time interval. Candles are
// totally ordered by timestamp.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// BodySize returns the absolute distance between open and close.
func (c Candle) BodySize() float64 {
	d := c.Close - c.Open
	if d < 0 {
		return -d
	}
	return d
}

// FullRange returns the absolute distance between high and low.
func (c Candle) FullRange() float64 {
	d := c.High - c.Low
	if d < 0 {
		return -d
	}
	return d
}

// Bullish reports whether the close is above the open by more than the noise
// floor.
func (c Candle) Bullish() bool {
	return c.Close > c.Open && c.BodySize() > noiseFloor
}

// Bearish reports whether the close is below the open by more than the noise
// floor.
func (c Candle) Bearish() bool {
	return c.Close < c.Open && c.BodySize() > noiseFloor
}

// Hammer reports whether the candle body sits entirely in the upper half of
// the full range.
func (c Candle) Hammer() bool {
	top := mathutil.Sub(c.High, mathutil.Div(c.FullRange(), 2))
	return c.Open >= top && c.Close >= top
}

// Tombstone is the inverse of a hammer: the body sits entirely in the lower
// half of the full range.
func (c Candle) Tombstone() bool {
	bottom := mathutil.Add(c.Low, mathutil.Div(c.FullRange(), 2))
	return c.Open <= bottom && c.Close <= bottom
}

// Doji reports whether the candle is indecisive: the body is at most 10% of
// the full range.
func (c Candle) Doji() bool {
	return mathutil.WholePercentage(c.BodySize(), c.FullRange()) <= dojiBodyPercent
}

// HasFullBody is the complement of Doji.
func (c Candle) HasFullBody() bool {
	return !c.Doji()
}

// BullishIndication reports whether the candle is bullish or forms a hammer.
func (c Candle) BullishIndication() bool {
	return c.Bullish() || c.Hammer()
}

// BearishIndication reports whether the candle is bearish or forms a tombstone.
func (c Candle) BearishIndication() bool {
	return c.Bearish() || c.Tombstone()
}

// NotEmpty reports whether the candle carries price data. The zero-valued
// candle is a valid "no data" sentinel.
func (c Candle) NotEmpty() bool {
	return c.Open != 0 && c.Close != 0
}

// Engulfs reports whether this candle made both a higher high and a lower low
// than the other. Engulfing pairs are ambiguous for signal detection and are
// skipped by the confirmation filter.
func (c Candle) Engulfs(other Candle) bool {
	return c.High > other.High && c.Low < other.Low
}
