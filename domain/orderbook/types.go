package orderbook

import "matcha/domain/fixedpoint"

// Side of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Result classifies the outcome of a book operation.
type Result uint8

const (
	Success Result = iota
	PartialFill
	CompleteFill
	Rejected // reserved for policy extensions, never produced by core matching
	InvalidOrder
	OrderNotFound
	DuplicateOrderID
)

func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case PartialFill:
		return "PARTIAL_FILL"
	case CompleteFill:
		return "COMPLETE_FILL"
	case Rejected:
		return "REJECTED"
	case InvalidOrder:
		return "INVALID_ORDER"
	case OrderNotFound:
		return "ORDER_NOT_FOUND"
	case DuplicateOrderID:
		return "DUPLICATE_ORDER_ID"
	default:
		return "UNKNOWN"
	}
}

// Trade records one execution between an incoming order and a resting
// order. Price is always the resting (maker) order's price.
type Trade struct {
	OrderID      uint64           `json:"order_id"`
	Client       string           `json:"client"`
	Price        fixedpoint.Price `json:"price"`
	Volume       int64            `json:"volume"`
	IsBuy        bool             `json:"is_buy"`
	Counterparty string           `json:"counterparty"`
}

// BookLevel is the market-data view of one price level.
type BookLevel struct {
	Price       fixedpoint.Price `json:"price"`
	TotalVolume int64            `json:"total_volume"`
	OrderCount  int              `json:"order_count"`
}
