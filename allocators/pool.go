package allocators

import (
	"reflect"
	"unsafe"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/pavanmanishd/contig"
)

// Pool keeps freed blocks and hands them out again for requests with exactly
// the same layout, falling back to the allocator behind it. Parked blocks of
// pointer-carrying types are cleared so they pin nothing; pointer-free blocks
// come back with their old bytes.
type Pool struct {
	next    contig.Allocator
	depth   int
	shelves map[poolKey]*shelf
	logger  *zap.Logger
	stats   PoolStats
}

type poolKey struct {
	typ   reflect.Type
	count int
}

// shelf holds the parked blocks of one layout.
type shelf struct {
	layout contig.Layout
	blocks *queue.Queue
}

// PoolStats counts how a Pool served its callers.
type PoolStats struct {
	Hits     int // Allocations served from a parked block
	Misses   int // Allocations passed to the next allocator
	Parked   int // Blocks currently parked
	Released int // Frees passed to the next allocator
}

// NewPool returns a Pool in front of next. A nil next uses contig.Heap.
func NewPool(next contig.Allocator, opts ...Option) *Pool {
	if next == nil {
		next = contig.Heap{}
	}
	o := applyOptions(opts)
	return &Pool{
		next:    next,
		depth:   o.depth,
		shelves: make(map[poolKey]*shelf),
		logger:  o.logger,
	}
}

// Allocate implements contig.Allocator.
func (p *Pool) Allocate(l contig.Layout) unsafe.Pointer {
	if l.Count == 0 {
		return nil
	}
	if sh := p.shelves[poolKey{l.Type, l.Count}]; sh != nil && sh.blocks.Length() > 0 {
		p.stats.Hits++
		p.stats.Parked--
		return sh.blocks.Remove().(unsafe.Pointer)
	}
	p.stats.Misses++
	return p.next.Allocate(l)
}

// Free implements contig.Allocator.
func (p *Pool) Free(ptr unsafe.Pointer, l contig.Layout) {
	if ptr == nil {
		return
	}
	key := poolKey{l.Type, l.Count}
	sh := p.shelves[key]
	if sh == nil {
		sh = &shelf{layout: l, blocks: queue.New()}
		p.shelves[key] = sh
	}
	if sh.blocks.Length() >= p.depth {
		p.stats.Released++
		p.next.Free(ptr, l)
		return
	}
	if l.Pointers {
		reflect.NewAt(reflect.ArrayOf(l.Count, l.Type), ptr).Elem().SetZero()
	}
	sh.blocks.Add(ptr)
	p.stats.Parked++
}

// Drain returns every parked block to the next allocator.
func (p *Pool) Drain() {
	for key, sh := range p.shelves {
		for sh.blocks.Length() > 0 {
			p.next.Free(sh.blocks.Remove().(unsafe.Pointer), sh.layout)
			p.stats.Released++
		}
		delete(p.shelves, key)
	}
	p.logger.Debug("pool drained", zap.Int("released", p.stats.Released))
	p.stats.Parked = 0
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return p.stats
}
