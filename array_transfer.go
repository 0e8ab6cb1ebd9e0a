package contig

import (
	"reflect"
	"unsafe"

	"github.com/pavanmanishd/contig/capability"
	"github.com/pavanmanishd/contig/memops"
)

// strategy is how elements get from one array into another.
type strategy int

const (
	// strategyElement invokes lifecycle hooks (or a conversion) per element.
	strategyElement strategy = iota
	// strategyBulk copies the elements as one byte range into a new block.
	strategyBulk
	// strategySteal hands the source block to the destination untouched.
	strategySteal
)

func (s strategy) String() string {
	switch s {
	case strategySteal:
		return "steal"
	case strategyBulk:
		return "bulk"
	}
	return "element"
}

// transferStrategy decides how an Array[U, B] is copied or moved into an
// Array[T, A] using allocator dst:
//
//	move, same allocator type, allocators interchangeable, bitwise movable  -> steal
//	bitwise copyable (copy) or bitwise movable (move)                        -> bulk
//	anything else                                                           -> element
func transferStrategy[T, U any, A, B Allocator](move bool, dst A, src B) strategy {
	if move {
		if !capability.IsBitwiseMoveConstructible[U, T]() {
			return strategyElement
		}
		if sameType[A, B]() && AllocatorsEqual(dst, any(src).(A)) {
			return strategySteal
		}
		return strategyBulk
	}
	if capability.IsBitwiseCopyConstructible[U, T]() {
		return strategyBulk
	}
	return strategyElement
}

func sameType[X, Y any]() bool {
	return reflect.TypeFor[X]() == reflect.TypeFor[Y]()
}

// Clone returns a copy of a with room for extra more elements. The copy uses
// a's allocator when the allocator traits ask for it, and the zero allocator
// otherwise, which means Heap when the zero allocator is nil.
func (a *Array[T, A]) Clone(extra int) *Array[T, A] {
	alloc := a.alloc
	if !TraitsOf[A]().CopyOnContainerCopy {
		var zero A
		alloc = zero
	}
	return FromSlice(alloc, a.Slice(), extra)
}

// CopyOf returns an Array[T, A] holding copies of the elements of src, an array
// of another element or allocator type. Layout compatible elements are copied
// as bytes; otherwise conv copy-constructs each element. conv may be nil when T
// and U are the same type.
func CopyOf[T, U any, A, B Allocator](alloc A, src *Array[U, B], extra int, conv func(dst *T, src *U)) *Array[T, A] {
	if conv == nil && sameType[T, U]() {
		conv = func(d *T, s *U) { memops.CopyConstruct(d, (*T)(unsafe.Pointer(s))) }
	}
	a := &Array[T, A]{alloc: alloc}
	a.allocation = a.allocate(src.count + max(extra, 0))
	memops.CopyConstructArrayFrom(a.allocation.Slice(), src.Slice(), conv)
	a.count = src.count
	return a
}

// Move returns a new array owning a's elements and allocator, leaving a empty.
// Bitwise movable elements keep their block; other types are relocated one by
// one into a fresh block and the old block is freed.
func (a *Array[T, A]) Move() *Array[T, A] {
	return MoveOf[T, T](a.alloc, a, nil)
}

// MoveOf moves the elements of src into a new Array[T, A] using alloc and
// leaves src empty. conv move-constructs one element and may be nil when T and
// U are the same type; it is not consulted for layout compatible pairs.
func MoveOf[T, U any, A, B Allocator](alloc A, src *Array[U, B], conv func(dst *T, src *U)) *Array[T, A] {
	a := &Array[T, A]{alloc: alloc}
	if transferStrategy[T, U](true, alloc, src.alloc) == strategySteal {
		a.allocation = Allocation[T]{data: (*T)(src.allocation.pointer()), count: src.allocation.count}
		a.count = src.count
		src.allocation.Leak()
		src.count = 0
		return a
	}
	a.allocation = a.allocate(src.count)
	memops.RelocateFrom(a.allocation.Slice(), src.Slice(), moveConv(conv))
	a.count = src.count
	src.count = 0
	src.free()
	return a
}

// moveConv supplies the same-type move when no conversion was given.
func moveConv[T, U any](conv func(*T, *U)) func(*T, *U) {
	if conv == nil && sameType[T, U]() {
		return func(d *T, s *U) { memops.MoveOrCopyConstruct(d, (*T)(unsafe.Pointer(s))) }
	}
	return conv
}
