package backtest

import (
	"sort"
	"time"

	"github.com/jwtly10/sweepbook/internal/mathutil"
	"github.com/jwtly10/sweepbook/internal/position"
	"github.com/jwtly10/sweepbook/internal/strategy"
	"github.com/jwtly10/sweepbook/internal/types"
)

// maxTradeDurationMin caps the trades counted in the average duration: a
// single session is 390 minutes, anything longer was held overnight and would
// skew the mean.
const maxTradeDurationMin = 390

// RunResult is the immutable aggregate of one backtest run's closed positions.
type RunResult struct {
	Description string
	Start       time.Time
	End         time.Time

	Hits          int
	Misses        int
	WinPercentage int

	PointsGained float64
	PointsLost   float64
	Points       float64
	NetProfit    float64

	Profitability float64
	Retention     int

	AvgTradeDurationMin int64

	ProfitMultiplier float64
	LossMultiplier   float64
	PricePerPoint    float64

	Trades []*position.Position
}

// NewRunResult reduces the closed positions of a run into statistics. Trades
// are kept ordered by close time.
func NewRunResult(cfg strategy.Config, start, end time.Time, trades []*position.Position) RunResult {
	r := RunResult{
		Description:   cfg.Description,
		Start:         start,
		End:           end,
		PricePerPoint: cfg.PricePerPoint,
		Trades:        trades,
	}
	if cfg.Reversal != nil {
		r.ProfitMultiplier = cfg.Reversal.ProfitMultiplier
		r.LossMultiplier = cfg.Reversal.Variance
	}

	var gained, lost float64
	var durationSum, durationCount int64
	for _, p := range trades {
		points := p.Points()
		switch {
		case points > 0:
			r.Hits++
			gained = mathutil.Add(gained, points)
		case points < 0:
			r.Misses++
			lost = mathutil.Add(lost, points)
		}

		if d := p.DurationMinutes(); d < maxTradeDurationMin {
			durationSum += d
			durationCount++
		}
	}

	r.PointsGained = gained
	if lost < 0 {
		lost = -lost
	}
	r.PointsLost = lost
	r.Points = mathutil.Sub(r.PointsGained, r.PointsLost)
	r.NetProfit = mathutil.Mul(r.Points, r.PricePerPoint)
	r.Profitability = mathutil.Div(r.PointsGained, r.PointsLost)
	r.Retention = mathutil.WholePercentage(r.PointsGained, mathutil.Add(r.PointsGained, r.PointsLost))
	r.WinPercentage = mathutil.WholePercentage(float64(r.Hits), float64(r.Hits+r.Misses))
	if durationCount > 0 {
		r.AvgTradeDurationMin = durationSum / durationCount
	}

	return r
}

// CumulativeEntry is one step of a run's running performance trail.
type CumulativeEntry struct {
	Trades      int
	Points      float64
	Profit      float64
	Side        types.Side
	OpenTime    time.Time
	CloseTime   time.Time
	TradePoints float64
	TradeProfit float64
}

// CumulativeEntries walks the trades in close order, accumulating trade
// count, points and profit.
func (r RunResult) CumulativeEntries() []CumulativeEntry {
	entries := make([]CumulativeEntry, 0, len(r.Trades))

	var points, profit float64
	for i, p := range r.Trades {
		points = mathutil.Add(points, p.Points())
		profit = mathutil.Add(profit, p.Profit(r.PricePerPoint))
		entries = append(entries, CumulativeEntry{
			Trades:      i + 1,
			Points:      points,
			Profit:      profit,
			Side:        p.Side,
			OpenTime:    p.OpenTime,
			CloseTime:   p.CloseTime,
			TradePoints: p.Points(),
			TradeProfit: p.Profit(r.PricePerPoint),
		})
	}

	return entries
}

// MaxDrawdown returns the lowest cumulative point total over the run, as if
// the trades executed sequentially. Never positive.
func (r RunResult) MaxDrawdown() float64 {
	var sum, mn float64
	for _, p := range r.sortedByOpen() {
		sum = mathutil.Add(sum, p.Points())
		if sum < mn {
			mn = sum
		}
	}
	return mn
}

// RelativeDrawdown returns the worst losing streak: the running loss total,
// reset whenever a winning trade lands.
func (r RunResult) RelativeDrawdown() float64 {
	var sum, mn float64
	for _, p := range r.sortedByOpen() {
		if p.Points() > 0 {
			sum = 0
			continue
		}
		sum = mathutil.Add(sum, p.Points())
		if sum < mn {
			mn = sum
		}
	}
	return mn
}

func (r RunResult) sortedByOpen() []*position.Position {
	out := make([]*position.Position, len(r.Trades))
	copy(out, r.Trades)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OpenTime.Equal(out[j].OpenTime) {
			return out[i].OpenTime.Before(out[j].OpenTime)
		}
		return out[i].CloseTime.Before(out[j].CloseTime)
	})
	return out
}
