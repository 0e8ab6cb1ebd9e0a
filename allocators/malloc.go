package allocators

import (
	"unsafe"

	memory "github.com/imgk/memory-go"
	"go.uber.org/zap"

	"github.com/pavanmanishd/contig"
)

// Malloc obtains raw blocks through github.com/imgk/memory-go, which uses the
// C allocator when built with cgo and pooled buffers otherwise. It keeps the
// release handle of every live block, so it is stateful.
type Malloc struct {
	release map[unsafe.Pointer]func()
	logger  *zap.Logger
}

// NewMalloc returns an empty Malloc.
func NewMalloc(opts ...Option) *Malloc {
	o := applyOptions(opts)
	return &Malloc{
		release: make(map[unsafe.Pointer]func()),
		logger:  o.logger,
	}
}

// Allocate implements contig.Allocator.
func (m *Malloc) Allocate(l contig.Layout) unsafe.Pointer {
	n, ok := checkOffHeap("malloc", l)
	if !ok {
		if l.Count > 0 && l.Size == 0 {
			return contig.Heap{}.Allocate(l)
		}
		return nil
	}
	ptr, b, err := memory.Alloc[byte](n)
	if err != nil {
		m.logger.Warn("malloc failed", zap.Stringer("type", l.Type), zap.Int("bytes", n), zap.Error(err))
		return nil
	}
	free := func() { memory.Free(ptr) }
	if len(b) < n {
		free()
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)&(l.Align-1) != 0 {
		m.logger.Warn("malloc returned a misaligned block", zap.Stringer("type", l.Type), zap.Uintptr("align", l.Align))
		free()
		return nil
	}
	m.release[p] = free
	return p
}

// Free implements contig.Allocator.
func (m *Malloc) Free(p unsafe.Pointer, _ contig.Layout) {
	if free, ok := m.release[p]; ok {
		delete(m.release, p)
		free()
	}
}

// Blocks returns the number of blocks currently allocated.
func (m *Malloc) Blocks() int {
	return len(m.release)
}
