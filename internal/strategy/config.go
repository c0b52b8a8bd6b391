// Package strategy defines strategy configurations and the reversal signal
// detector that drives the backtest engine.
package strategy

import (
	"errors"
	"fmt"
)

var (
	errInvalidLotSize        = errors.New("lot size must be positive")
	errInvalidPricePerPoint  = errors.New("price per point must be positive")
	errInvalidInitialBalance = errors.New("initial balance cannot be negative")
	errMissingLimits         = errors.New("buy and sell limits must both be set")
	errMissingParams         = errors.New("no strategy parameters set")
	errInvalidSession        = errors.New("invalid session time")
	errInvalidMultiplier     = errors.New("profit multiplier must be positive")
	errInvalidVariance       = errors.New("variance must be positive")
)

// LimitParams holds the configured fixed stop-loss and take-profit distances
// for one trade direction.
type LimitParams struct {
	StopLoss   float64 `json:"stop-loss"`
	TakeProfit float64 `json:"take-profit"`
}

func (l LimitParams) validate(side string) error {
	if l.StopLoss <= 0 || l.TakeProfit <= 0 {
		return fmt.Errorf("%w: %s", errMissingLimits, side)
	}
	return nil
}

// ReversalParams is the strategy-specific payload for the reversal strategy.
type ReversalParams struct {
	// ProfitMultiplier scales window-derived take profits.
	ProfitMultiplier float64 `json:"profit-multiplier"`
	// Variance scales the configured limit increments, swept in grid mode.
	Variance float64 `json:"variance"`

	// Entries are only taken strictly inside the session window.
	SessionStartHour   int `json:"session-start-hour"`
	SessionStartMinute int `json:"session-start-minute"`
	SessionEndHour     int `json:"session-end-hour"`
	SessionEndMinute   int `json:"session-end-minute"`

	// The exit bar forces closure of anything still open.
	ExitHour   int `json:"exit-hour"`
	ExitMinute int `json:"exit-minute"`

	// MaxDailyEntries caps how many positions may be opened per trading day.
	MaxDailyEntries int `json:"max-daily-entries"`

	// Confirmation additionally requires the signal candle to show a
	// directional indication and skips engulfing candle pairs.
	Confirmation bool `json:"confirmation"`
}

// DefaultReversalParams returns the reference session setup: entries between
// 09:30 and 16:30, forced close at 16:00, at most 3 entries per day.
func DefaultReversalParams() ReversalParams {
	return ReversalParams{
		ProfitMultiplier:   2.0,
		Variance:           1.0,
		SessionStartHour:   9,
		SessionStartMinute: 30,
		SessionEndHour:     16,
		SessionEndMinute:   30,
		ExitHour:           16,
		ExitMinute:         0,
		MaxDailyEntries:    3,
	}
}

func (p ReversalParams) validate() error {
	if p.ProfitMultiplier <= 0 {
		return errInvalidMultiplier
	}
	if p.Variance <= 0 {
		return errInvalidVariance
	}
	for _, hm := range [][2]int{
		{p.SessionStartHour, p.SessionStartMinute},
		{p.SessionEndHour, p.SessionEndMinute},
		{p.ExitHour, p.ExitMinute},
	} {
		if hm[0] < 0 || hm[0] > 23 || hm[1] < 0 || hm[1] > 59 {
			return fmt.Errorf("%w: %02d:%02d", errInvalidSession, hm[0], hm[1])
		}
	}
	start := minuteOfDay(p.SessionStartHour, p.SessionStartMinute)
	end := minuteOfDay(p.SessionEndHour, p.SessionEndMinute)
	if start >= end {
		return fmt.Errorf("%w: session start must precede session end", errInvalidSession)
	}
	// both session bounds are exclusive, so an exit bar on or outside them
	// would never be seen and open positions would leak past the close
	if exit := minuteOfDay(p.ExitHour, p.ExitMinute); exit <= start || exit >= end {
		return fmt.Errorf("%w: exit time must fall inside the session window", errInvalidSession)
	}
	if p.MaxDailyEntries <= 0 {
		return fmt.Errorf("%w: max daily entries must be positive", errInvalidSession)
	}
	return nil
}

// Config is one immutable strategy configuration snapshot.
type Config struct {
	Description    string          `json:"description"`
	BuyLimit       LimitParams     `json:"buy-limit"`
	SellLimit      LimitParams     `json:"sell-limit"`
	LotSize        float64         `json:"lot-size"`
	PricePerPoint  float64         `json:"price-per-point"`
	InitialBalance float64         `json:"initial-balance"`
	Reversal       *ReversalParams `json:"reversal,omitempty"`
}

// Validate rejects malformed configurations before a run starts. The engine
// assumes validated input and does not re-check per candle.
func (c Config) Validate() error {
	if c.LotSize <= 0 {
		return fmt.Errorf("%w: %v", errInvalidLotSize, c.LotSize)
	}
	if c.PricePerPoint <= 0 {
		return fmt.Errorf("%w: %v", errInvalidPricePerPoint, c.PricePerPoint)
	}
	if c.InitialBalance < 0 {
		return fmt.Errorf("%w: %v", errInvalidInitialBalance, c.InitialBalance)
	}
	if err := c.BuyLimit.validate("buy"); err != nil {
		return err
	}
	if err := c.SellLimit.validate("sell"); err != nil {
		return err
	}
	if c.Reversal == nil {
		return errMissingParams
	}
	return c.Reversal.validate()
}

func minuteOfDay(hour, minute int) int {
	return hour*60 + minute
}
