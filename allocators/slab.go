package allocators

import (
	"unsafe"

	"github.com/cznic/memory"
	"go.uber.org/zap"

	"github.com/pavanmanishd/contig"
)

// Slab allocates from mmap-backed size-class pages managed by
// github.com/cznic/memory. Every block is returned to the operating system by
// Close, so arrays using a Slab must be released or abandoned first.
type Slab struct {
	mem    memory.Allocator
	logger *zap.Logger
	blocks int
}

// NewSlab returns an empty Slab.
func NewSlab(opts ...Option) *Slab {
	o := applyOptions(opts)
	return &Slab{logger: o.logger}
}

// Allocate implements contig.Allocator.
func (s *Slab) Allocate(l contig.Layout) unsafe.Pointer {
	n, ok := checkOffHeap("slab", l)
	if !ok {
		if l.Count > 0 && l.Size == 0 {
			return contig.Heap{}.Allocate(l)
		}
		return nil
	}
	b, err := s.mem.Malloc(n)
	if err != nil {
		s.logger.Warn("slab allocation failed", zap.Stringer("type", l.Type), zap.Int("bytes", n), zap.Error(err))
		return nil
	}
	s.blocks++
	return unsafe.Pointer(unsafe.SliceData(b))
}

// Free implements contig.Allocator.
func (s *Slab) Free(p unsafe.Pointer, l contig.Layout) {
	n, ok := checkOffHeap("slab", l)
	if p == nil || !ok {
		return
	}
	if err := s.mem.Free(unsafe.Slice((*byte)(p), n)); err != nil {
		s.logger.Error("slab free failed", zap.Stringer("type", l.Type), zap.Int("bytes", n), zap.Error(err))
		return
	}
	s.blocks--
}

// Blocks returns the number of blocks currently allocated.
func (s *Slab) Blocks() int {
	return s.blocks
}

// Close unmaps every page the Slab obtained.
func (s *Slab) Close() error {
	s.blocks = 0
	return s.mem.Close()
}
