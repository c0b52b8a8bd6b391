// Package backtest replays a strategy bar-by-bar over historical candles and
// aggregates the closed positions into comparable run statistics.
package backtest

import (
	"time"

	"github.com/jwtly10/sweepbook/internal/logging"
	"github.com/jwtly10/sweepbook/internal/marketdata"
	"github.com/jwtly10/sweepbook/internal/position"
	"github.com/jwtly10/sweepbook/internal/strategy"
	"github.com/jwtly10/sweepbook/internal/types"
)

var engineLog = logging.New("engine")

// Strategy is the capability set the engine composes: signal detection over a
// trailing candle triple plus the session rules.
type Strategy interface {
	Config() strategy.Config
	MaxDailyEntries() int
	InSession(ts time.Time) bool
	IsExitBar(ts time.Time) bool
	OnCandle(ref, sig, cur types.Candle) (types.Order, bool)
}

// Engine executes one backtest run. It exclusively owns its position book;
// construct a fresh engine per run instead of reusing one.
type Engine struct {
	strat Strategy
	book  *position.Book
}

// NewEngine builds an engine around an already-validated strategy.
func NewEngine(strat Strategy) *Engine {
	return &Engine{
		strat: strat,
		book:  position.NewBook(),
	}
}

// Run consumes every candle of the dates in [start, end), end exclusive, and
// reduces the closed positions into a RunResult. Missing or short data is not
// an error: the result simply reports zero trades.
func (e *Engine) Run(start, end time.Time, data *marketdata.Set) RunResult {
	for _, day := range data.DatesBetween(start, end) {
		series := data.Day(day)
		engineLog.Debug("processing day", "date", day, "candles", len(series))

		entries := 0
		for i, c := range series {
			if !e.strat.InSession(c.Timestamp) {
				continue
			}

			// the first two candles only seed the reference/signal pair
			if i >= 2 && entries < e.strat.MaxDailyEntries() && !e.book.HasOpen() {
				if ord, ok := e.strat.OnCandle(series[i-2], series[i-1], c); ok {
					e.book.Open(ord, c.Timestamp)
					entries++
				}
			}

			e.book.ScanExits(c)

			if e.strat.IsExitBar(c.Timestamp) && e.book.HasOpen() {
				e.book.CloseAllAt(c.Open, c.Timestamp)
			}
		}
	}

	return NewRunResult(e.strat.Config(), start, end, e.book.Closed())
}
