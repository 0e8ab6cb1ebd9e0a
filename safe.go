package contig

import (
	"sync"
	"unsafe"
)

// SyncAllocator is a mutex-protected wrapper that lets arrays owned by
// different goroutines share one stateful allocator. The arrays themselves are
// still unsynchronized.
type SyncAllocator struct {
	mu   sync.Mutex
	next Allocator
}

// NewSyncAllocator wraps next.
func NewSyncAllocator(next Allocator) *SyncAllocator {
	return &SyncAllocator{next: next}
}

// NewSafeArena creates an Arena behind a SyncAllocator.
func NewSafeArena(opts ...ArenaOption) *SyncAllocator {
	return NewSyncAllocator(NewArena(opts...))
}

// Allocate thread-safely implements Allocator.
func (s *SyncAllocator) Allocate(l Layout) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Allocate(l)
}

// Free thread-safely implements Allocator.
func (s *SyncAllocator) Free(p unsafe.Pointer, l Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next.Free(p, l)
}

// Do runs fn with exclusive access to the wrapped allocator, for calls such as
// Arena.Reset or Counting.Metrics that are not part of Allocator.
func (s *SyncAllocator) Do(fn func(Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.next)
}
