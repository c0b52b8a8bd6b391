package position

import (
	"sort"
	"time"

	"github.com/jwtly10/sweepbook/internal/logging"
	"github.com/jwtly10/sweepbook/internal/types"
)

var bookLog = logging.New("book")

// Book tracks the open and closed positions of one engine run, keyed by
// position id.
type Book struct {
	open   map[string]*Position
	closed map[string]*Position
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{
		open:   make(map[string]*Position),
		closed: make(map[string]*Position),
	}
}

// Open creates a new open position from the order and registers it.
func (b *Book) Open(ord types.Order, openTime time.Time) *Position {
	p := New(ord.Side, ord.Size, openTime, ord.Price, ord.StopLoss, ord.TakeProfit)
	b.open[p.ID] = p
	bookLog.Debug("opened position",
		"id", p.ID, "side", p.Side, "price", p.OpenPrice, "sl", p.StopLoss, "tp", p.TakeProfit, "time", openTime)
	return p
}

// HasOpen reports whether any position is still open.
func (b *Book) HasOpen() bool { return len(b.open) > 0 }

// OpenCount returns the number of open positions.
func (b *Book) OpenCount() int { return len(b.open) }

// ScanExits checks every open position against the candle. Take profit is
// always evaluated before stop loss so a bar touching both fills at the target
// (optimistic fill). Close time is the candle's timestamp.
func (b *Book) ScanExits(c types.Candle) []*Position {
	var closed []*Position

	for _, p := range b.open {
		switch p.Side {
		case types.BUY:
			if c.High >= p.TakeProfit {
				b.close(p, c.Timestamp, p.TakeProfit, "take profit")
				closed = append(closed, p)
			} else if c.Low <= p.StopLoss {
				b.close(p, c.Timestamp, p.StopLoss, "stop loss")
				closed = append(closed, p)
			}
		case types.SELL:
			if c.Low <= p.TakeProfit {
				b.close(p, c.Timestamp, p.TakeProfit, "take profit")
				closed = append(closed, p)
			} else if c.High >= p.StopLoss {
				b.close(p, c.Timestamp, p.StopLoss, "stop loss")
				closed = append(closed, p)
			}
		}
	}

	return closed
}

// CloseAllAt force-closes every open position at the given price, used when
// the session's exit bar is reached.
func (b *Book) CloseAllAt(price float64, closeTime time.Time) []*Position {
	var closed []*Position
	for _, p := range b.open {
		b.close(p, closeTime, price, "session close")
		closed = append(closed, p)
	}
	return closed
}

func (b *Book) close(p *Position, closeTime time.Time, price float64, reason string) {
	if err := p.Close(closeTime, price); err != nil {
		// open map holds only open positions, so this cannot happen
		return
	}
	delete(b.open, p.ID)
	b.closed[p.ID] = p
	bookLog.Debug("closed position",
		"id", p.ID, "side", p.Side, "price", price, "points", p.Points(), "reason", reason, "time", closeTime)
}

// Closed returns the closed positions ordered by close time, then open time.
func (b *Book) Closed() []*Position {
	out := make([]*Position, 0, len(b.closed))
	for _, p := range b.closed {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CloseTime.Equal(out[j].CloseTime) {
			return out[i].CloseTime.Before(out[j].CloseTime)
		}
		if !out[i].OpenTime.Equal(out[j].OpenTime) {
			return out[i].OpenTime.Before(out[j].OpenTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
