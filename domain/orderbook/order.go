package orderbook

import (
	"time"

	"matcha/domain/fixedpoint"
)

// Order is a limit order. PlaceOrder copies the caller's value into a
// pool slot; the intrusive links below belong to the book and are only
// set while the order rests.
type Order struct {
	ID        uint64
	Client    string
	Price     fixedpoint.Price
	Volume    int64
	Side      Side
	Timestamp time.Time

	// FIFO siblings within the order's price level.
	next *Order
	prev *Order

	// Level the order rests at, nil while not resting.
	level *PriceLevel
}

// Next returns the order behind o in its level's queue.
func (o *Order) Next() *Order { return o.next }
