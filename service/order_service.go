// Package service hosts OrderService, the only write entry point into
// the engine. The book itself is single-threaded and lock-free; all
// serialization between callers and the market-data jobs happens here.
package service

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"matcha/domain/fixedpoint"
	"matcha/domain/orderbook"
	"matcha/infra/sequence"
)

const tradeFeedDepth = 1 << 12

// OrderService serializes access to one OrderBook, assigns ids to
// orders that arrive without one, and feeds executed trades to the
// broadcaster.
type OrderService struct {
	mu   sync.Mutex
	book *orderbook.OrderBook
	ids  *sequence.Generator
	log  *zap.Logger

	trades chan orderbook.Trade
}

// NewOrderService wires all dependencies. No globals.
func NewOrderService(book *orderbook.OrderBook, ids *sequence.Generator, log *zap.Logger) *OrderService {
	return &OrderService{
		book:   book,
		ids:    ids,
		log:    log,
		trades: make(chan orderbook.Trade, tradeFeedDepth),
	}
}

// Trades exposes the feed of executed trades for broadcasting.
func (s *OrderService) Trades() <-chan orderbook.Trade { return s.trades }

// PlaceOrder submits a new order. A zero id is replaced with the next
// generated id; the id actually used is returned alongside the trades.
func (s *OrderService) PlaceOrder(o orderbook.Order) (uint64, []orderbook.Trade, orderbook.Result) {
	if o.ID == 0 {
		o.ID = s.ids.Next()
	}

	s.mu.Lock()
	trades, res := s.book.PlaceOrder(o)
	s.mu.Unlock()

	s.log.Debug("place order",
		zap.Uint64("order_id", o.ID),
		zap.Stringer("side", o.Side),
		zap.Stringer("price", o.Price),
		zap.Int64("volume", o.Volume),
		zap.Stringer("result", res),
		zap.Int("trades", len(trades)),
	)

	for _, t := range trades {
		s.publish(t)
	}
	return o.ID, trades, res
}

// CancelOrder removes a resting order.
func (s *OrderService) CancelOrder(id uint64) orderbook.Result {
	s.mu.Lock()
	res := s.book.CancelOrder(id)
	s.mu.Unlock()

	s.log.Debug("cancel order",
		zap.Uint64("order_id", id),
		zap.Stringer("result", res),
	)
	return res
}

// ModifyOrder changes a resting order's price or volume.
func (s *OrderService) ModifyOrder(id uint64, price fixedpoint.Price, volume int64) orderbook.Result {
	s.mu.Lock()
	res := s.book.ModifyOrder(id, price, volume)
	s.mu.Unlock()

	s.log.Debug("modify order",
		zap.Uint64("order_id", id),
		zap.Stringer("price", price),
		zap.Int64("volume", volume),
		zap.Stringer("result", res),
	)
	return res
}

// publish never blocks the matching path: when the feed is full the
// trade is dropped and logged.
func (s *OrderService) publish(t orderbook.Trade) {
	select {
	case s.trades <- t:
	default:
		s.log.Warn("trade feed full, dropping trade",
			zap.Uint64("order_id", t.OrderID),
			zap.Int64("volume", t.Volume),
		)
	}
}

// Depth returns up to depth levels per side, best first.
func (s *OrderService) Depth(depth int) (bids, asks []orderbook.BookLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BidLevels(depth), s.book.AskLevels(depth)
}

// TopOfBook returns best bid, best ask, and mid price, with zero
// sentinels for empty sides.
func (s *OrderService) TopOfBook() (bid, ask, mid fixedpoint.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BestBid(), s.book.BestAsk(), s.book.MidPrice()
}

// VolumeAtPrice returns the resting volume at price on side.
func (s *OrderService) VolumeAtPrice(price fixedpoint.Price, side orderbook.Side) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.VolumeAtPrice(price, side)
}

// Counters returns the resting order and price level counts.
func (s *OrderService) Counters() (orders, levels int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.OrderCount(), s.book.PriceLevelCount()
}

// DumpBook writes the debug view of the book.
func (s *OrderService) DumpBook(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book.Dump(w)
}
