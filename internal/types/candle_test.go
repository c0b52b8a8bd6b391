package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCandle_Directional(t *testing.T) {
	bull := Candle{Open: 100, High: 103, Low: 99.5, Close: 102}
	assert.True(t, bull.Bullish())
	assert.False(t, bull.Bearish())

	bear := Candle{Open: 102, High: 103, Low: 99.5, Close: 100}
	assert.True(t, bear.Bearish())
	assert.False(t, bear.Bullish())

	// Body of exactly 1.25 sits on the noise floor and is not directional
	noise := Candle{Open: 100, High: 102, Low: 99, Close: 101.25}
	assert.False(t, noise.Bullish())
	assert.False(t, noise.Bearish())
}

func TestCandle_HammerAndTombstone(t *testing.T) {
	hammer := Candle{Open: 102, High: 103, Low: 97, Close: 102.5}
	assert.True(t, hammer.Hammer())
	assert.False(t, hammer.Tombstone())

	tombstone := Candle{Open: 98, High: 103, Low: 97, Close: 97.5}
	assert.True(t, tombstone.Tombstone())
	assert.False(t, tombstone.Hammer())
}

func TestCandle_DojiComplement(t *testing.T) {
	candles := []Candle{
		{Open: 100, High: 110, Low: 90, Close: 100.5}, // tiny body, wide range
		{Open: 100, High: 103, Low: 99, Close: 102.5}, // full body
		{Open: 100, High: 100, Low: 100, Close: 100},  // flat bar
		{Open: 100, High: 120, Low: 80, Close: 104},   // 10% boundary
		{Open: 100, High: 120, Low: 80, Close: 104.5},
	}

	for _, c := range candles {
		assert.Equal(t, c.Doji(), !c.HasFullBody())
	}

	// 10% body-to-range is still a doji, just above is not
	assert.True(t, Candle{Open: 100, High: 120, Low: 80, Close: 104}.Doji())
	assert.False(t, Candle{Open: 100, High: 120, Low: 80, Close: 105}.Doji())
}

func TestCandle_NotEmpty(t *testing.T) {
	assert.False(t, Candle{}.NotEmpty())
	assert.False(t, Candle{Timestamp: time.Now()}.NotEmpty())
	assert.True(t, Candle{Open: 1, Close: 1}.NotEmpty())
}

func TestCandle_Engulfs(t *testing.T) {
	outer := Candle{High: 110, Low: 90}
	inner := Candle{High: 105, Low: 95}
	assert.True(t, outer.Engulfs(inner))
	assert.False(t, inner.Engulfs(outer))
	assert.False(t, outer.Engulfs(outer))
}
