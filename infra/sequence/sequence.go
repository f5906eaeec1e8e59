// Package sequence provides the order-id generator. Ids are explicit
// engine inputs; the generator exists for callers that do not bring
// their own.
package sequence

import "sync/atomic"

// Generator hands out monotonically increasing order ids.
type Generator struct {
	next atomic.Uint64
}

// New returns a Generator whose first Next is start+1.
func New(start uint64) *Generator {
	g := &Generator{}
	g.next.Store(start)
	return g
}

// Next returns the next id.
func (g *Generator) Next() uint64 { return g.next.Add(1) }

// Reset rewinds the counter. Intended for test setup only.
func (g *Generator) Reset(start uint64) { g.next.Store(start) }
