package contig

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Blocks are carved sequentially out of
// large byte chunks, so it serves pointer-free element types only: the
// collector does not look for pointers inside the chunks.
//
// Free of the most recent block rolls the bump offset back; other frees are
// deferred until Reset or Release. Not goroutine-safe; wrap it in a
// SyncAllocator for concurrent use.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	currentChunk *chunk

	// last is the most recent block and lastOffset the chunk offset before it.
	last       unsafe.Pointer
	lastOffset uintptr
}

// ArenaOption configures an Arena.
type ArenaOption func(*arenaOptions)

type arenaOptions struct {
	chunkSize int
}

func defaultArenaOptions() *arenaOptions {
	return &arenaOptions{chunkSize: DefaultChunkSize}
}

// WithChunkSize sets the size of each chunk in bytes. Non-positive sizes keep
// DefaultChunkSize.
func WithChunkSize(n int) ArenaOption {
	return func(o *arenaOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// NewArena creates an Arena with one chunk ready for use.
func NewArena(opts ...ArenaOption) *Arena {
	o := defaultArenaOptions()
	for _, opt := range opts {
		opt(o)
	}
	a := &Arena{chunkSize: o.chunkSize}
	a.grow(o.chunkSize)
	return a
}

// Allocate implements Allocator.
func (a *Arena) Allocate(l Layout) unsafe.Pointer {
	if l.Pointers {
		panic(errors.Wrapf(ErrPointerLayout, "arena cannot hold %v", l.Type))
	}
	if l.Count == 0 || !l.fits(0) {
		return nil
	}
	if l.Size == 0 {
		return Heap{}.Allocate(l)
	}
	a.panicIfReleased()
	n := l.Bytes()
	align := max(l.Align, unsafe.Sizeof(uintptr(0)))

	// Fast path: use cached current chunk
	if p := a.bump(a.currentChunk, n, align); p != nil {
		return p
	}
	a.grow(int(n + align))
	return a.bump(a.currentChunk, n, align)
}

// bump carves n bytes aligned to align out of c, or returns nil if c is full.
func (a *Arena) bump(c *chunk, n, align uintptr) unsafe.Pointer {
	if c == nil || len(c.buf) == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	off := alignUp(base+c.offset, align) - base
	if off+n > uintptr(len(c.buf)) {
		return nil
	}
	a.lastOffset = c.offset
	c.offset = off + n
	a.last = unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.buf)), off)
	return a.last
}

// Free implements Allocator. Only the most recent block is reclaimed at once.
func (a *Arena) Free(p unsafe.Pointer, _ Layout) {
	if p == nil || p != a.last || a.currentChunk == nil {
		return
	}
	a.currentChunk.offset = a.lastOffset
	a.last = nil
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := a.currentChunk
	if c == nil || alignPtr(c.offset)+uintptr(n) > uintptr(len(c.buf)) {
		a.grow(n)
	}
}

// Reset rewinds every chunk for reuse. Arrays still holding arena blocks must
// not be used afterwards.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.currentChunk = &a.chunks[0]
	a.last = nil
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent operations will panic.
func (a *Arena) Release() {
	a.chunks = nil
	a.currentChunk = nil
	a.last = nil
}

// grow appends a new chunk of at least min bytes.
func (a *Arena) grow(min int) {
	size := max(a.chunkSize, min)
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.currentChunk = &a.chunks[len(a.chunks)-1]
	a.last = nil
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic(ErrReleased)
	}
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	return alignUp(off, unsafe.Sizeof(uintptr(0)))
}
