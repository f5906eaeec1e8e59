package orderbook

import (
	"testing"

	"matcha/domain/fixedpoint"
)

// ---------------- Basic Benchmarks ---------------- //

func BenchmarkPlaceResting(b *testing.B) {
	book := NewOrderBook()
	p := fixedpoint.MustParse("100")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.PlaceOrder(Order{ID: uint64(i + 1), Client: "bench", Price: p, Volume: 10, Side: Buy})
	}
}

func BenchmarkPlaceMatching(b *testing.B) {
	book := NewOrderBook()
	p := fixedpoint.MustParse("100")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := Buy
		if i%2 == 1 {
			side = Sell
		}
		book.PlaceOrder(Order{ID: uint64(i + 1), Client: "bench", Price: p, Volume: 10, Side: side})
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	book := NewOrderBook()
	p := fixedpoint.MustParse("100")
	for i := 0; i < b.N; i++ {
		book.PlaceOrder(Order{ID: uint64(i + 1), Client: "bench", Price: p, Volume: 10, Side: Buy})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(uint64(i + 1))
	}
}

func BenchmarkDepthQuery(b *testing.B) {
	book := NewOrderBook()
	// Preload non-crossing orders across a spread of levels.
	for i := 0; i < 50_000; i++ {
		if i%2 == 0 {
			book.PlaceOrder(Order{
				ID:     uint64(i + 1),
				Client: "bench",
				Price:  fixedpoint.FromRaw(int64(99_0000 - (i%10)*5000)),
				Volume: 10,
				Side:   Buy,
			})
		} else {
			book.PlaceOrder(Order{
				ID:     uint64(i + 1),
				Client: "bench",
				Price:  fixedpoint.FromRaw(int64(101_0000 + (i%10)*5000)),
				Volume: 10,
				Side:   Sell,
			})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := book.BidLevels(10); len(got) == 0 {
			b.Fatal("empty depth")
		}
	}
}
