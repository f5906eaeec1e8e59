package orderbook

import (
	"fmt"
	"io"
	"time"

	"matcha/domain/fixedpoint"
	"matcha/infra/memory"
)

// OrderBook is a single-instrument matching engine with strict
// price-time priority. It owns the pools its orders and levels live
// in, both side indexes, and the resting-order lookup.
type OrderBook struct {
	orderPool *memory.Pool[Order]
	levelPool *memory.Pool[PriceLevel]

	bids *levelList
	asks *levelList

	// Resting orders only. Ids mid-match, filled, or cancelled are
	// absent.
	orders map[uint64]*Order
}

// NewOrderBook creates an empty book.
func NewOrderBook() *OrderBook {
	levelPool := memory.NewPool[PriceLevel](memory.DefaultBlockSize)
	return &OrderBook{
		orderPool: memory.NewPool[Order](memory.DefaultBlockSize),
		levelPool: levelPool,
		bids:      newLevelList(Buy, levelPool),
		asks:      newLevelList(Sell, levelPool),
		orders:    make(map[uint64]*Order),
	}
}

// PlaceOrder validates o, matches it against the opposite side, and
// rests any remainder. The caller's value is copied and never
// retained. One Trade is emitted per resting order contacted, always
// at the resting order's price.
func (b *OrderBook) PlaceOrder(o Order) ([]Trade, Result) {
	if o.Volume <= 0 || !o.Price.IsPositive() {
		return nil, InvalidOrder
	}
	if _, dup := b.orders[o.ID]; dup {
		return nil, DuplicateOrderID
	}

	resident := b.orderPool.Get()
	*resident = o
	resident.next = nil
	resident.prev = nil
	resident.level = nil
	if resident.Timestamp.IsZero() {
		resident.Timestamp = time.Now()
	}

	initialVolume := resident.Volume

	var trades []Trade
	if resident.Side == Buy {
		b.match(b.asks, resident, &trades)
	} else {
		b.match(b.bids, resident, &trades)
	}

	if resident.Volume > 0 {
		b.restOrder(resident)
		b.orders[resident.ID] = resident
		if resident.Volume < initialVolume {
			return trades, PartialFill
		}
		return trades, Success
	}

	// Fully filled, never rests.
	b.orderPool.Put(resident)
	return trades, CompleteFill
}

// match consumes resting orders from the opposite side in price-time
// order until o is filled or no level crosses. Fully-filled resting
// orders and emptied levels are returned to their pools immediately.
func (b *OrderBook) match(opposite *levelList, o *Order, trades *[]Trade) {
	for o.Volume > 0 && opposite.crosses(o.Price) {
		best := opposite.bestLevel()

		matching := best.head
		for matching != nil && o.Volume > 0 {
			tradeVolume := min(o.Volume, matching.Volume)

			*trades = append(*trades, Trade{
				OrderID:      o.ID,
				Client:       o.Client,
				Price:        matching.Price,
				Volume:       tradeVolume,
				IsBuy:        o.Side == Buy,
				Counterparty: matching.Client,
			})

			next := matching.next

			oldVolume := matching.Volume
			if remaining := oldVolume - tradeVolume; remaining > 0 {
				matching.Volume = remaining
				best.updateVolume(matching, oldVolume)
			} else {
				best.removeOrder(matching)
				delete(b.orders, matching.ID)
				b.orderPool.Put(matching)
			}

			o.Volume -= tradeVolume
			matching = next
		}

		if best.orderCount == 0 {
			opposite.removeLevel(best)
			b.levelPool.Put(best)
		}
	}
}

// restOrder links o into its own side, creating the level if needed.
func (b *OrderBook) restOrder(o *Order) {
	side := b.bids
	if o.Side == Sell {
		side = b.asks
	}
	side.createLevel(o.Price).addOrder(o)
}

// CancelOrder removes a resting order and tears down its level when it
// empties.
func (b *OrderBook) CancelOrder(id uint64) Result {
	o, ok := b.orders[id]
	if !ok {
		return OrderNotFound
	}

	if lvl := o.level; lvl != nil {
		lvl.removeOrder(o)
		if lvl.orderCount == 0 {
			if o.Side == Buy {
				b.bids.removeLevel(lvl)
			} else {
				b.asks.removeLevel(lvl)
			}
			b.levelPool.Put(lvl)
		}
	}

	delete(b.orders, id)
	b.orderPool.Put(o)
	return Success
}

// ModifyOrder shrinks an order in place when only its volume decreases
// at an unchanged price, preserving time priority. Any price change or
// volume increase cancels the order and re-enters it as new under the
// same id: the replacement queues behind existing orders and may trade
// immediately. Trades from such a requeue are not reported.
func (b *OrderBook) ModifyOrder(id uint64, newPrice fixedpoint.Price, newVolume int64) Result {
	o, ok := b.orders[id]
	if !ok {
		return OrderNotFound
	}
	if newVolume <= 0 || !newPrice.IsPositive() {
		return InvalidOrder
	}

	if newPrice == o.Price && newVolume < o.Volume {
		oldVolume := o.Volume
		o.Volume = newVolume
		if o.level != nil {
			o.level.updateVolume(o, oldVolume)
		}
		return Success
	}

	side := o.Side
	client := o.Client

	if res := b.CancelOrder(id); res != Success {
		return res
	}

	_, res := b.PlaceOrder(Order{
		ID:        id,
		Client:    client,
		Price:     newPrice,
		Volume:    newVolume,
		Side:      side,
		Timestamp: time.Now(),
	})
	return res
}

// BidLevels returns up to depth bid levels, best first.
func (b *OrderBook) BidLevels(depth int) []BookLevel { return levels(b.bids, depth) }

// AskLevels returns up to depth ask levels, best first.
func (b *OrderBook) AskLevels(depth int) []BookLevel { return levels(b.asks, depth) }

func levels(ll *levelList, depth int) []BookLevel {
	if depth <= 0 {
		return nil
	}
	out := make([]BookLevel, 0, depth)
	for lvl := ll.head; lvl != nil && len(out) < depth; lvl = lvl.nextPrice {
		out = append(out, BookLevel{
			Price:       lvl.price,
			TotalVolume: lvl.totalVolume,
			OrderCount:  lvl.orderCount,
		})
	}
	return out
}

// BestBid returns the highest resting bid, or the zero Price when no
// bids rest.
func (b *OrderBook) BestBid() fixedpoint.Price {
	if b.bids.empty() {
		return fixedpoint.Price{}
	}
	return b.bids.bestLevel().price
}

// BestAsk returns the lowest resting ask, or the zero Price when no
// asks rest.
func (b *OrderBook) BestAsk() fixedpoint.Price {
	if b.asks.empty() {
		return fixedpoint.Price{}
	}
	return b.asks.bestLevel().price
}

// MidPrice is the bid/ask midpoint, or the zero Price when either side
// is empty.
func (b *OrderBook) MidPrice() fixedpoint.Price {
	bid, ask := b.BestBid(), b.BestAsk()
	if !bid.IsPositive() || !ask.IsPositive() {
		return fixedpoint.Price{}
	}
	sum, err := bid.Add(ask)
	if err != nil {
		return fixedpoint.Price{}
	}
	return sum.DivInt(2)
}

// VolumeAtPrice returns the resting volume at price on side, zero when
// no level exists there.
func (b *OrderBook) VolumeAtPrice(price fixedpoint.Price, side Side) int64 {
	ll := b.bids
	if side == Sell {
		ll = b.asks
	}
	if lvl := ll.findLevel(price); lvl != nil {
		return lvl.totalVolume
	}
	return 0
}

// OrderCount is the number of resting orders.
func (b *OrderBook) OrderCount() int { return len(b.orders) }

// PriceLevelCount is the number of indexed levels across both sides.
func (b *OrderBook) PriceLevelCount() int { return b.bids.size() + b.asks.size() }

// Dump writes a human-readable view of the book, asks high to low then
// bids high to low. Debug only, not a stable format.
func (b *OrderBook) Dump(w io.Writer) {
	fmt.Fprintln(w, "--------- ORDER BOOK ---------")
	fmt.Fprintln(w, "ASKS:")
	fmt.Fprintf(w, "%10s | %10s | %6s\n", "Price", "Volume", "Orders")
	asks := b.AskLevels(10)
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%10s | %10d | %6d\n", asks[i].Price, asks[i].TotalVolume, asks[i].OrderCount)
	}
	fmt.Fprintln(w, "------------------------------")
	fmt.Fprintln(w, "BIDS:")
	fmt.Fprintf(w, "%10s | %10s | %6s\n", "Price", "Volume", "Orders")
	for _, lvl := range b.BidLevels(10) {
		fmt.Fprintf(w, "%10s | %10d | %6d\n", lvl.Price, lvl.TotalVolume, lvl.OrderCount)
	}
	fmt.Fprintln(w, "------------------------------")
}
