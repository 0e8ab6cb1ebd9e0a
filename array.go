package contig

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/contig/capability"
	"github.com/pavanmanishd/contig/memops"
)

// IndexNone is returned by lookups that find nothing.
const IndexNone = -1

// Array is a growable contiguous sequence of T whose memory comes from an
// allocator of type A.
//
// Slots [0, Count()) hold live elements; slots [Count(), MaxCount()) are raw
// memory. Growth is exact: when an insertion needs room the block is resized to
// precisely the required count. Callers that want slack ask for it with
// Reserve, the extra argument of FromSlice/Clone, or AddNoConstruct.
//
// The zero value is an empty array using the zero value of A. When that zero
// value is nil, as for pointer allocators such as *Counting, the array draws
// from Heap instead. An Array is not safe for concurrent use.
type Array[T any, A Allocator] struct {
	alloc      A
	allocation Allocation[T]
	count      int
}

// New returns an empty array drawing memory from alloc.
func New[T any, A Allocator](alloc A) *Array[T, A] {
	return &Array[T, A]{alloc: alloc}
}

// FromSlice returns an array holding copies of src with room for extra more
// elements.
func FromSlice[T any, A Allocator](alloc A, src []T, extra int) *Array[T, A] {
	a := &Array[T, A]{alloc: alloc}
	a.allocation = a.allocate(len(src) + max(extra, 0))
	memops.CopyConstructArray(a.allocation.Slice(), src)
	a.count = len(src)
	return a
}

// Of returns a heap-backed array holding copies of elems.
func Of[T any](elems ...T) *Array[T, Heap] {
	return FromSlice(Heap{}, elems, 0)
}

// Count returns the number of live elements.
func (a *Array[T, A]) Count() int { return a.count }

// MaxCount returns the number of elements the current block can hold.
func (a *Array[T, A]) MaxCount() int { return a.allocation.count }

// Slack returns the number of raw slots after the last element.
func (a *Array[T, A]) Slack() int { return a.allocation.count - a.count }

// IsEmpty reports whether the array has no elements.
func (a *Array[T, A]) IsEmpty() bool { return a.count == 0 }

// IsValidIndex reports whether idx addresses a live element.
func (a *Array[T, A]) IsValidIndex(idx int) bool { return idx >= 0 && idx < a.count }

// Allocator returns the array's allocator.
func (a *Array[T, A]) Allocator() A { return a.alloc }

// Allocation returns a view of the array's block.
func (a *Array[T, A]) Allocation() Allocation[T] { return a.allocation }

// Data returns the first slot of the block, or nil when there is none.
func (a *Array[T, A]) Data() *T { return a.allocation.data }

// Slice returns the live elements. The slice aliases the array and is
// invalidated by any operation that reallocates.
func (a *Array[T, A]) Slice() []T {
	return a.allocation.Slice()[:a.count]
}

// At returns a pointer to the element at idx. It panics if idx is out of range.
func (a *Array[T, A]) At(idx int) *T {
	checkIndex(idx, a.count)
	return &a.allocation.Slice()[idx]
}

// Get returns a copy of the element at idx.
func (a *Array[T, A]) Get(idx int) T {
	return *a.At(idx)
}

// First returns the first element.
func (a *Array[T, A]) First() *T { return a.At(0) }

// FirstAt returns the element offset places after the first.
func (a *Array[T, A]) FirstAt(offset int) *T { return a.At(offset) }

// Last returns the last element.
func (a *Array[T, A]) Last() *T { return a.At(a.count - 1) }

// LastAt returns the element offset places before the last.
func (a *Array[T, A]) LastAt(offset int) *T { return a.At(a.count - 1 - offset) }

// SubSlice returns n live elements starting at first.
func (a *Array[T, A]) SubSlice(first, n int) []T {
	checkRange(first, n, a.count)
	return a.Slice()[first : first+n]
}

// All iterates over index and element pointer pairs in order.
func (a *Array[T, A]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		s := a.Slice()
		for i := range s {
			if !yield(i, &s[i]) {
				return
			}
		}
	}
}

// Backward iterates over index and element pointer pairs from the end.
func (a *Array[T, A]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		s := a.Slice()
		for i := len(s) - 1; i >= 0; i-- {
			if !yield(i, &s[i]) {
				return
			}
		}
	}
}

// Values iterates over copies of the elements in order.
func (a *Array[T, A]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.Slice() {
			if !yield(v) {
				return
			}
		}
	}
}

// FindFirstIndex returns the index of the first element matching pred, or
// IndexNone.
func (a *Array[T, A]) FindFirstIndex(pred func(*T) bool) int {
	s := a.Slice()
	for i := range s {
		if pred(&s[i]) {
			return i
		}
	}
	return IndexNone
}

// FindLastIndex returns the index of the last element matching pred, or
// IndexNone.
func (a *Array[T, A]) FindLastIndex(pred func(*T) bool) int {
	s := a.Slice()
	for i := len(s) - 1; i >= 0; i-- {
		if pred(&s[i]) {
			return i
		}
	}
	return IndexNone
}

// IndexOf returns the index of the first element equal to v, or IndexNone.
func (a *Array[T, A]) IndexOf(v T) int {
	return a.FindFirstIndex(func(p *T) bool { return memops.Equal(p, &v) })
}

// LastIndexOf returns the index of the last element equal to v, or IndexNone.
func (a *Array[T, A]) LastIndexOf(v T) int {
	return a.FindLastIndex(func(p *T) bool { return memops.Equal(p, &v) })
}

// Contains reports whether an element equal to v is present.
func (a *Array[T, A]) Contains(v T) bool {
	return a.IndexOf(v) != IndexNone
}

// ContainsFunc reports whether any element matches pred.
func (a *Array[T, A]) ContainsFunc(pred func(*T) bool) bool {
	return a.FindFirstIndex(pred) != IndexNone
}

// Swap exchanges the contents and allocators of a and other without touching
// any element.
func (a *Array[T, A]) Swap(other *Array[T, A]) {
	*a, *other = *other, *a
}

// Clear destroys every element and keeps the block.
func (a *Array[T, A]) Clear() {
	memops.DestroyArray(a.Slice())
	a.count = 0
}

// Release destroys every element and returns the block to the allocator,
// leaving an empty array that can be reused.
func (a *Array[T, A]) Release() {
	a.Clear()
	a.free()
}

// String formats the live elements like a slice.
func (a *Array[T, A]) String() string {
	return fmt.Sprint(a.Slice())
}

// Validate checks the array's bookkeeping and reports the first violation.
func (a *Array[T, A]) Validate() error {
	switch {
	case a.count < 0:
		return errors.Mark(errors.Newf("negative count %d", a.count), ErrCorrupted)
	case a.count > a.allocation.count:
		return errors.Mark(errors.Newf("count %d exceeds capacity %d", a.count, a.allocation.count), ErrCorrupted)
	case (a.allocation.count == 0) != (a.allocation.data == nil):
		return errors.Mark(errors.Newf("capacity %d does not match block %p", a.allocation.count, a.allocation.data), ErrCorrupted)
	}
	return nil
}

// allocate obtains a block of n elements and panics if the allocator fails.
func (a *Array[T, A]) allocate(n int) Allocation[T] {
	al := Allocate[T](a.source(), n)
	if n > 0 && al.IsEmpty() {
		panic(errors.Wrapf(ErrOutOfMemory, "%d elements of %v", n, capability.Of[T]().Type))
	}
	return al
}

func (a *Array[T, A]) free() {
	Free(a.source(), &a.allocation)
}

// source returns the allocator blocks come from: a.alloc, or Heap when a.alloc
// is nil.
func (a *Array[T, A]) source() Allocator {
	if isNilAllocator(a.alloc) {
		return Heap{}
	}
	return a.alloc
}

// reallocate moves the live elements into a new block of exactly n slots.
func (a *Array[T, A]) reallocate(n int) {
	next := a.allocate(n)
	memops.Relocate(next.Slice(), a.Slice())
	a.free()
	a.allocation = next
}
