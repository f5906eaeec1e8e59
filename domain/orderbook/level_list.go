package orderbook

import (
	"matcha/domain/fixedpoint"
	"matcha/infra/memory"
)

// levelList keeps one side's price levels ordered best-first behind an
// O(1) price lookup. One implementation serves both sides through the
// better comparator, so bid and ask insertion cannot drift apart.
// Insertion scans linearly from the best level: active levels are
// typically few relative to orders, and the scan wins on cache
// behavior against a balanced tree for the common shallow book.
type levelList struct {
	head *PriceLevel
	tail *PriceLevel

	byPrice map[fixedpoint.Price]*PriceLevel
	pool    *memory.Pool[PriceLevel]

	// better reports whether price a sits closer to the top of the
	// book than b on this side.
	better func(a, b fixedpoint.Price) bool
}

func newLevelList(side Side, pool *memory.Pool[PriceLevel]) *levelList {
	better := fixedpoint.Price.GreaterThan
	if side == Sell {
		better = fixedpoint.Price.LessThan
	}
	return &levelList{
		byPrice: make(map[fixedpoint.Price]*PriceLevel),
		pool:    pool,
		better:  better,
	}
}

func (ll *levelList) findLevel(price fixedpoint.Price) *PriceLevel {
	return ll.byPrice[price]
}

// createLevel returns the level at price, allocating and inserting it
// in order when absent. Idempotent.
func (ll *levelList) createLevel(price fixedpoint.Price) *PriceLevel {
	if lvl := ll.byPrice[price]; lvl != nil {
		return lvl
	}

	lvl := ll.pool.Get()
	*lvl = PriceLevel{price: price}

	if ll.head == nil {
		ll.head = lvl
		ll.tail = lvl
	} else {
		inserted := false
		for cur := ll.head; cur != nil; cur = cur.nextPrice {
			if ll.better(price, cur.price) {
				lvl.nextPrice = cur
				lvl.prevPrice = cur.prevPrice
				if cur.prevPrice != nil {
					cur.prevPrice.nextPrice = lvl
				} else {
					ll.head = lvl
				}
				cur.prevPrice = lvl
				inserted = true
				break
			}
		}
		if !inserted {
			ll.tail.nextPrice = lvl
			lvl.prevPrice = ll.tail
			ll.tail = lvl
		}
	}

	ll.byPrice[price] = lvl
	return lvl
}

// removeLevel unlinks lvl from the sequence and the lookup. The caller
// still owns the level's pool slot and must return it.
func (ll *levelList) removeLevel(lvl *PriceLevel) {
	cur, ok := ll.byPrice[lvl.price]
	if !ok || cur != lvl {
		return
	}
	if lvl.prevPrice != nil {
		lvl.prevPrice.nextPrice = lvl.nextPrice
	} else {
		ll.head = lvl.nextPrice
	}
	if lvl.nextPrice != nil {
		lvl.nextPrice.prevPrice = lvl.prevPrice
	} else {
		ll.tail = lvl.prevPrice
	}
	delete(ll.byPrice, lvl.price)
}

// bestLevel is the head of the sequence: highest bid or lowest ask.
func (ll *levelList) bestLevel() *PriceLevel { return ll.head }

func (ll *levelList) empty() bool { return ll.head == nil }
func (ll *levelList) size() int   { return len(ll.byPrice) }

// crosses reports whether an incoming order priced at incoming can
// trade against this side's best level. The check is a hard boundary:
// an order crosses unless its price is strictly inside the resting
// side's ordering.
func (ll *levelList) crosses(incoming fixedpoint.Price) bool {
	return ll.head != nil && !ll.better(incoming, ll.head.price)
}
