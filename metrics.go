package contig

import "unsafe"

// SizeInUse returns the total number of bytes currently allocated in the arena.
// This includes internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently allocated by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes currently allocated
	Capacity    int     // Total capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// Counting wraps an allocator and records every block it hands out and takes
// back. It is stateful: arrays sharing one *Counting share its counters.
type Counting struct {
	next    Allocator
	metrics Metrics
}

// Metrics is a snapshot of allocation events seen by a Counting allocator.
type Metrics struct {
	Allocations       int     // Successful Allocate calls
	Frees             int     // Free calls
	FailedAllocations int     // Allocate calls that returned nil
	BytesInUse        uintptr // Bytes allocated and not yet freed
	PeakBytes         uintptr // High-water mark of BytesInUse
}

// NewCounting returns a Counting allocator in front of next. A nil next uses
// Heap.
func NewCounting(next Allocator) *Counting {
	if next == nil {
		next = Heap{}
	}
	return &Counting{next: next}
}

// Allocate implements Allocator.
func (c *Counting) Allocate(l Layout) unsafe.Pointer {
	p := c.next.Allocate(l)
	if p == nil {
		if l.Count > 0 {
			c.metrics.FailedAllocations++
		}
		return nil
	}
	c.metrics.Allocations++
	c.metrics.BytesInUse += l.Bytes()
	c.metrics.PeakBytes = max(c.metrics.PeakBytes, c.metrics.BytesInUse)
	return p
}

// Free implements Allocator.
func (c *Counting) Free(p unsafe.Pointer, l Layout) {
	c.metrics.Frees++
	c.metrics.BytesInUse -= l.Bytes()
	c.next.Free(p, l)
}

// Metrics returns a snapshot of the counters.
func (c *Counting) Metrics() Metrics {
	return c.metrics
}

// Reset zeroes the counters.
func (c *Counting) Reset() {
	c.metrics = Metrics{}
}
