// Package orderbook implements a deterministic, in-memory limit-order
// matching engine for a single instrument. Resting interest lives in
// two side-parameterized price-level indexes (bids descending, asks
// ascending) backed by slab pools, and incoming orders match under
// strict price-time priority.
//
// The engine is single-threaded by design: no operation locks, blocks,
// or yields. Callers needing concurrent order entry must serialize
// access to one OrderBook instance (see the service package).
package orderbook
