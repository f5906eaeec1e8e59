package memory

import (
	"fmt"
	"unsafe"
)

// DefaultBlockSize is the number of object slots per block.
const DefaultBlockSize = 1024

// block is one fixed-capacity slab of slots. Blocks are never merged,
// shrunk, or relocated, so a slot pointer stays valid until freed.
type block[T any] struct {
	slots []T
	used  []bool

	nextFree  int
	usedCount int
}

func newBlock[T any](size int) *block[T] {
	return &block[T]{
		slots: make([]T, size),
		used:  make([]bool, size),
	}
}

func (b *block[T]) allocate() *T {
	for b.nextFree < len(b.slots) && b.used[b.nextFree] {
		b.nextFree++
	}
	if b.nextFree >= len(b.slots) {
		return nil
	}
	i := b.nextFree
	b.used[i] = true
	b.usedCount++
	b.nextFree++
	return &b.slots[i]
}

// indexOf maps obj back to its slot index via a pointer-range test.
func (b *block[T]) indexOf(obj *T) (int, bool) {
	base := uintptr(unsafe.Pointer(&b.slots[0]))
	ptr := uintptr(unsafe.Pointer(obj))
	size := unsafe.Sizeof(b.slots[0])
	if ptr < base || ptr >= base+size*uintptr(len(b.slots)) {
		return 0, false
	}
	return int((ptr - base) / size), true
}

func (b *block[T]) owns(obj *T) bool {
	_, ok := b.indexOf(obj)
	return ok
}

func (b *block[T]) deallocate(obj *T) {
	i, ok := b.indexOf(obj)
	if !ok || !b.used[i] {
		return
	}
	var zero T
	b.slots[i] = zero
	b.used[i] = false
	b.usedCount--
	// Rewind the scan so the next allocate prefers low indices.
	if i < b.nextFree {
		b.nextFree = i
	}
}

// Pool hands out fixed-size object slots without a per-object heap
// allocation on the hot path. Freed slots are zeroed and reused.
// Capacity grows by whole blocks and never shrinks; live objects never
// move. The pool is the sole owner of slot memory: a pointer must not
// be dereferenced after Put.
type Pool[T any] struct {
	blocks    []*block[T]
	blockSize int
}

// NewPool creates a pool with one initial block of blockSize slots.
func NewPool[T any](blockSize int) *Pool[T] {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Pool[T]{
		blocks:    []*block[T]{newBlock[T](blockSize)},
		blockSize: blockSize,
	}
}

// Get returns a zeroed slot, appending a new block when every existing
// block is full.
func (p *Pool[T]) Get() *T {
	for _, b := range p.blocks {
		if obj := b.allocate(); obj != nil {
			return obj
		}
	}
	b := newBlock[T](p.blockSize)
	p.blocks = append(p.blocks, b)
	return b.allocate()
}

// Put returns obj's slot to the pool, zeroing it in place. Put panics
// when obj was not allocated from this pool: that is a caller bug, not
// a runtime error to recover from.
func (p *Pool[T]) Put(obj *T) {
	for _, b := range p.blocks {
		if b.owns(obj) {
			b.deallocate(obj)
			return
		}
	}
	panic(fmt.Sprintf("memory: Put of %T not owned by this pool", obj))
}

// Owns reports whether obj points into one of the pool's blocks.
func (p *Pool[T]) Owns(obj *T) bool {
	for _, b := range p.blocks {
		if b.owns(obj) {
			return true
		}
	}
	return false
}

// Cap is the total slot capacity across all blocks.
func (p *Pool[T]) Cap() int {
	total := 0
	for _, b := range p.blocks {
		total += len(b.slots)
	}
	return total
}

// Used is the number of slots currently checked out.
func (p *Pool[T]) Used() int {
	total := 0
	for _, b := range p.blocks {
		total += b.usedCount
	}
	return total
}
