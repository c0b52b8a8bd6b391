// Package position holds the open/closed trade records for a single backtest
// run. A Book is exclusively owned by one engine run and is never shared.
package position

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwtly10/sweepbook/internal/mathutil"
	"github.com/jwtly10/sweepbook/internal/types"
)

// ErrAlreadyClosed is returned when closing a position twice.
var ErrAlreadyClosed = errors.New("position already closed")

// Position is a simulated trade. It is created open and transitions to closed
// exactly once.
type Position struct {
	ID         string
	Side       types.Side
	Size       float64
	OpenTime   time.Time
	OpenPrice  float64
	StopLoss   float64
	TakeProfit float64
	CloseTime  time.Time
	ClosePrice float64

	closed bool
}

// New creates an open position.
func New(side types.Side, size float64, openTime time.Time, openPrice, stopLoss, takeProfit float64) *Position {
	return &Position{
		ID:         uuid.NewString(),
		Side:       side,
		Size:       size,
		OpenTime:   openTime,
		OpenPrice:  openPrice,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
	}
}

// Closed reports whether the position has been closed.
func (p *Position) Closed() bool { return p.closed }

// Close records the exit. A position may only be closed once.
func (p *Position) Close(closeTime time.Time, closePrice float64) error {
	if p.closed {
		return ErrAlreadyClosed
	}
	p.CloseTime = closeTime
	p.ClosePrice = closePrice
	p.closed = true
	return nil
}

// Points is the signed directional delta of a closed position: close-open for
// BUY, open-close for SELL. An open position scores 0.
func (p *Position) Points() float64 {
	if !p.closed {
		return 0
	}
	if p.Side == types.BUY {
		return p.ClosePrice - p.OpenPrice
	}
	return p.OpenPrice - p.ClosePrice
}

// DurationMinutes is the whole minutes between open and close.
func (p *Position) DurationMinutes() int64 {
	if !p.closed {
		return 0
	}
	d := p.CloseTime.Sub(p.OpenTime)
	if d < 0 {
		d = -d
	}
	return int64(d / time.Minute)
}

// Profit converts points into currency at the given price per point.
func (p *Position) Profit(pricePerPoint float64) float64 {
	return mathutil.Mul(p.Points(), pricePerPoint)
}
