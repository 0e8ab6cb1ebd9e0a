package contig

import (
	"unsafe"

	"github.com/pavanmanishd/contig/capability"
)

// Allocation is a typed view of a block of memory: a pointer and the number of
// elements the block can hold. It describes capacity, not how many of those
// elements are alive, and it never allocates or frees anything itself.
//
// The zero Allocation is the empty view. Count() == 0 exactly when Data() == nil.
type Allocation[T any] struct {
	data  *T
	count int
}

// MakeAllocation returns a view of n elements starting at p.
// A nil p or a non-positive n yields the empty view.
func MakeAllocation[T any](p *T, n int) Allocation[T] {
	if p == nil || n <= 0 {
		return Allocation[T]{}
	}
	return Allocation[T]{data: p, count: n}
}

// AllocationOf returns a borrowed view of the full capacity of s.
func AllocationOf[T any](s []T) Allocation[T] {
	s = s[:cap(s)]
	return MakeAllocation(unsafe.SliceData(s), len(s))
}

// Data returns the first element of the block, or nil for the empty view.
func (a Allocation[T]) Data() *T { return a.data }

// Count returns the number of elements the block holds.
func (a Allocation[T]) Count() int { return a.count }

// ByteCount returns the size of the block in bytes.
func (a Allocation[T]) ByteCount() uintptr {
	return uintptr(a.count) * capability.Of[T]().Size
}

// IsEmpty reports whether the view refers to no memory.
func (a Allocation[T]) IsEmpty() bool { return a.count == 0 }

// Slice returns the whole block as a slice of length Count.
func (a Allocation[T]) Slice() []T {
	if a.count == 0 {
		return nil
	}
	return unsafe.Slice(a.data, a.count)
}

// SubSlice returns a view of n elements starting at first. Bounds are the
// caller's responsibility.
func (a Allocation[T]) SubSlice(first, n int) Allocation[T] {
	if n == 0 {
		return Allocation[T]{}
	}
	return Allocation[T]{data: (*T)(unsafe.Add(unsafe.Pointer(a.data), uintptr(first)*capability.Of[T]().Size)), count: n}
}

// Leak forgets the block without releasing it, leaving the empty view. Used
// once another owner has taken the memory.
func (a *Allocation[T]) Leak() {
	*a = Allocation[T]{}
}

func (a Allocation[T]) pointer() unsafe.Pointer {
	return unsafe.Pointer(a.data)
}
