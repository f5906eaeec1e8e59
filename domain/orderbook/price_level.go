package orderbook

import "matcha/domain/fixedpoint"

// PriceLevel is the FIFO queue of resting orders at one price plus the
// aggregates market-data queries read. Aggregates are maintained
// incrementally, never recomputed by scanning the queue.
type PriceLevel struct {
	price       fixedpoint.Price
	totalVolume int64
	orderCount  int

	head *Order
	tail *Order

	// Siblings in the side's ordered level sequence.
	nextPrice *PriceLevel
	prevPrice *PriceLevel
}

func (l *PriceLevel) Price() fixedpoint.Price { return l.price }
func (l *PriceLevel) TotalVolume() int64      { return l.totalVolume }
func (l *PriceLevel) OrderCount() int         { return l.orderCount }

// Head returns the oldest resting order at this level.
func (l *PriceLevel) Head() *Order { return l.head }

// addOrder appends o to the queue tail, preserving time priority.
func (l *PriceLevel) addOrder(o *Order) {
	o.level = l
	if l.head == nil {
		l.head = o
		l.tail = o
		o.prev = nil
		o.next = nil
	} else {
		l.tail.next = o
		o.prev = l.tail
		o.next = nil
		l.tail = o
	}
	l.totalVolume += o.Volume
	l.orderCount++
}

// removeOrder unlinks o from anywhere in the queue and clears its
// links. No-op when o does not belong to this level.
func (l *PriceLevel) removeOrder(o *Order) {
	if o.level != l {
		return
	}
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	l.totalVolume -= o.Volume
	l.orderCount--

	o.prev = nil
	o.next = nil
	o.level = nil
}

// updateVolume adjusts the aggregate after o's volume changed in
// place. The order keeps its queue position, so partial fills keep
// time priority.
func (l *PriceLevel) updateVolume(o *Order, oldVolume int64) {
	if o.level != l {
		return
	}
	l.totalVolume += o.Volume - oldVolume
}
