// Package memory provides the slab-style object pool backing the
// orderbook's orders and price levels. Allocation and reuse are
// deterministic: freed slots are preferred lowest-index-first and
// blocks only ever grow, keeping the matching hot path free of
// general-purpose allocator work.
package memory
