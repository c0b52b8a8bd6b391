package strategy

import (
	"time"

	"github.com/jwtly10/sweepbook/internal/limits"
	"github.com/jwtly10/sweepbook/internal/logging"
	"github.com/jwtly10/sweepbook/internal/mathutil"
	"github.com/jwtly10/sweepbook/internal/types"
)

var signalLog = logging.New("signal")

const (
	// NoSignal means the candle triple shows no tradeable pattern.
	NoSignal Verdict = iota
	// SellSignal is a failed breakout: a new local high immediately broken
	// below the prior bar's low.
	SellSignal
	// BuySignal is the symmetric failed breakdown.
	BuySignal
)

// Verdict classifies a sliding triple of consecutive candles.
type Verdict int

func (v Verdict) String() string {
	switch v {
	case SellSignal:
		return "SELL_SIGNAL"
	case BuySignal:
		return "BUY_SIGNAL"
	default:
		return "NO_SIGNAL"
	}
}

// Detect classifies the (reference, signal, current) triple. The sell
// condition is checked first, so pathological data satisfying both resolves
// as a sell.
func Detect(ref, sig, cur types.Candle) Verdict {
	if sig.High > ref.High && cur.Low < sig.Low {
		return SellSignal
	}
	if sig.Low < ref.Low && cur.High > sig.High {
		return BuySignal
	}
	return NoSignal
}

// Reversal trades failed breakouts: when price makes a new local high or low
// that the next bar immediately violates in the opposite direction, a reversal
// is likely taking place. Entries are taken at the violated level.
type Reversal struct {
	cfg Config
	p   ReversalParams
}

// NewReversal validates cfg and builds the strategy.
func NewReversal(cfg Config) (*Reversal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Reversal{cfg: cfg, p: *cfg.Reversal}, nil
}

// Config returns the configuration snapshot the strategy runs with.
func (r *Reversal) Config() Config { return r.cfg }

// MaxDailyEntries returns the per-day entry cap.
func (r *Reversal) MaxDailyEntries() int { return r.p.MaxDailyEntries }

// InSession reports whether entries may be taken at the given time. Both
// session bounds are exclusive.
func (r *Reversal) InSession(ts time.Time) bool {
	m := minuteOfDay(ts.Hour(), ts.Minute())
	return m > minuteOfDay(r.p.SessionStartHour, r.p.SessionStartMinute) &&
		m < minuteOfDay(r.p.SessionEndHour, r.p.SessionEndMinute)
}

// IsExitBar reports whether the candle at ts marks forced end-of-session
// closure.
func (r *Reversal) IsExitBar(ts time.Time) bool {
	return ts.Hour() == r.p.ExitHour && ts.Minute() == r.p.ExitMinute
}

// OnCandle inspects the trailing candle triple and, when a signal fires,
// returns the order to open.
func (r *Reversal) OnCandle(ref, sig, cur types.Candle) (types.Order, bool) {
	// no fresh entries during the exit hour
	if cur.Timestamp.Hour() == r.p.ExitHour {
		return types.Order{}, false
	}

	verdict := Detect(ref, sig, cur)
	if verdict == NoSignal {
		return types.Order{}, false
	}
	if r.p.Confirmation && !r.confirmed(verdict, ref, sig, cur) {
		return types.Order{}, false
	}

	ord := r.buildOrder(verdict, sig)
	signalLog.Debug("signal fired",
		"verdict", verdict.String(), "time", cur.Timestamp, "entry", ord.Price, "sl", ord.StopLoss, "tp", ord.TakeProfit)
	return ord, true
}

// confirmed applies the optional entry filter: engulfing candle pairs are
// ambiguous and the signal candle must show a matching directional indication.
func (r *Reversal) confirmed(verdict Verdict, ref, sig, cur types.Candle) bool {
	if cur.Engulfs(sig) || sig.Engulfs(ref) {
		return false
	}
	switch verdict {
	case BuySignal:
		return cur.Low > sig.Low && sig.BullishIndication()
	case SellSignal:
		return cur.High < sig.High && sig.BearishIndication()
	}
	return false
}

// buildOrder resolves entry, stop and target for the verdict. Buys enter at
// the violated low and size limits against the signal candle's full range;
// sells enter at the violated high and always use the fixed configured
// increments (zero window).
func (r *Reversal) buildOrder(verdict Verdict, sig types.Candle) types.Order {
	if verdict == SellSignal {
		entry := sig.High
		return types.Order{
			Side:       types.SELL,
			Price:      entry,
			StopLoss:   limits.Resolve(0, entry, r.scaled(r.cfg.SellLimit.StopLoss), true, false, r.p.ProfitMultiplier),
			TakeProfit: limits.Resolve(0, entry, r.scaled(r.cfg.SellLimit.TakeProfit), false, true, r.p.ProfitMultiplier),
			Size:       r.cfg.LotSize,
		}
	}

	entry := sig.Low
	window := sig.FullRange()
	return types.Order{
		Side:       types.BUY,
		Price:      entry,
		StopLoss:   limits.Resolve(window, entry, r.scaled(r.cfg.BuyLimit.StopLoss), false, false, r.p.ProfitMultiplier),
		TakeProfit: limits.Resolve(window, entry, r.scaled(r.cfg.BuyLimit.TakeProfit), true, true, r.p.ProfitMultiplier),
		Size:       r.cfg.LotSize,
	}
}

// scaled applies the variance multiplier to a configured limit increment.
func (r *Reversal) scaled(increment float64) float64 {
	return mathutil.Mul(increment, r.p.Variance)
}
