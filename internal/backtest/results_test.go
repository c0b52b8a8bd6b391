package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/sweepbook/internal/position"
	"github.com/jwtly10/sweepbook/internal/strategy"
	"github.com/jwtly10/sweepbook/internal/types"
)

func testConfig() strategy.Config {
	p := strategy.DefaultReversalParams()
	return strategy.Config{
		Description:    "test",
		BuyLimit:       strategy.LimitParams{StopLoss: 5, TakeProfit: 5},
		SellLimit:      strategy.LimitParams{StopLoss: 7, TakeProfit: 4},
		LotSize:        0.25,
		PricePerPoint:  5.6,
		InitialBalance: 30000,
		Reversal:       &p,
	}
}

// closedTrade builds a closed BUY position worth the given points, held for
// the given number of minutes.
func closedTrade(t *testing.T, points float64, minutes int) *position.Position {
	t.Helper()
	open := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	p := position.New(types.BUY, 1, open, 100, 0, 0)
	require.NoError(t, p.Close(open.Add(time.Duration(minutes)*time.Minute), 100+points))
	return p
}

func TestNewRunResult_Aggregation(t *testing.T) {
	trades := []*position.Position{
		closedTrade(t, 10, 30),
		closedTrade(t, -4, 45),
		closedTrade(t, 6, 60),
		closedTrade(t, -2, 15),
	}

	r := NewRunResult(testConfig(), day(1), day(2), trades)

	assert.Equal(t, 2, r.Hits)
	assert.Equal(t, 2, r.Misses)
	assert.Equal(t, 50, r.WinPercentage)
	assert.Equal(t, 16.0, r.PointsGained)
	assert.Equal(t, 6.0, r.PointsLost)
	assert.Equal(t, 10.0, r.Points)
	assert.Equal(t, 56.0, r.NetProfit) // 10 points at 5.6 per point
	assert.Equal(t, 2.67, r.Profitability)
	assert.Equal(t, 73, r.Retention)
	assert.Equal(t, int64(37), r.AvgTradeDurationMin) // (30+45+60+15)/4
}

func TestNewRunResult_NoTrades(t *testing.T) {
	r := NewRunResult(testConfig(), day(1), day(2), nil)

	assert.Zero(t, r.Hits)
	assert.Zero(t, r.Misses)
	assert.Zero(t, r.WinPercentage)
	assert.Zero(t, r.Points)
	assert.Zero(t, r.NetProfit)
	assert.Zero(t, r.Profitability)
	assert.Zero(t, r.Retention)
	assert.Zero(t, r.AvgTradeDurationMin)
}

func TestNewRunResult_ProfitabilityZeroWithoutLosses(t *testing.T) {
	r := NewRunResult(testConfig(), day(1), day(2), []*position.Position{closedTrade(t, 12, 20)})

	assert.Equal(t, 12.0, r.PointsGained)
	assert.Zero(t, r.PointsLost)
	// no losses must yield 0, never an infinity
	assert.Zero(t, r.Profitability)
	assert.Equal(t, 100, r.Retention)
	assert.Equal(t, 100, r.WinPercentage)
}

func TestNewRunResult_DurationFiltersOvernightTrades(t *testing.T) {
	trades := []*position.Position{
		closedTrade(t, 5, 30),
		closedTrade(t, 5, 500), // held past the session cap, excluded
	}

	r := NewRunResult(testConfig(), day(1), day(2), trades)
	assert.Equal(t, int64(30), r.AvgTradeDurationMin)
}

func TestNewRunResult_DurationZeroWhenAllFiltered(t *testing.T) {
	r := NewRunResult(testConfig(), day(1), day(2), []*position.Position{closedTrade(t, 5, 400)})
	assert.Zero(t, r.AvgTradeDurationMin)
}

func TestRunResult_CumulativeEntries(t *testing.T) {
	trades := []*position.Position{
		closedTrade(t, 10, 30),
		closedTrade(t, -4, 45),
	}

	entries := NewRunResult(testConfig(), day(1), day(2), trades).CumulativeEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Trades)
	assert.Equal(t, 10.0, entries[0].Points)
	assert.Equal(t, 56.0, entries[0].Profit)

	assert.Equal(t, 2, entries[1].Trades)
	assert.Equal(t, 6.0, entries[1].Points)
	assert.Equal(t, 33.6, entries[1].Profit)
}

func TestRunResult_Drawdowns(t *testing.T) {
	trades := []*position.Position{
		closedTrade(t, -4, 10),
		closedTrade(t, -3, 20),
		closedTrade(t, 10, 30),
		closedTrade(t, -2, 40),
	}

	r := NewRunResult(testConfig(), day(1), day(2), trades)
	assert.Equal(t, -7.0, r.MaxDrawdown())
	assert.Equal(t, -7.0, r.RelativeDrawdown())

	winsFirst := []*position.Position{
		closedTrade(t, 10, 10),
		closedTrade(t, -4, 20),
	}
	r = NewRunResult(testConfig(), day(1), day(2), winsFirst)
	assert.Equal(t, 0.0, r.MaxDrawdown())
	assert.Equal(t, -4.0, r.RelativeDrawdown())
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}
