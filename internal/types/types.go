package types

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Side is the direction of a trade.
type Side string

// Order describes an entry a strategy wants the engine to take, with the stop
// loss and take profit levels already resolved.
type Order struct {
	Side       Side
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Size       float64 // Lot size
}
