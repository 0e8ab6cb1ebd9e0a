package contig

import (
	"github.com/pavanmanishd/contig/capability"
	"github.com/pavanmanishd/contig/memops"
)

// Assign replaces the contents of a with copies of src.
func (a *Array[T, A]) Assign(src []T) {
	a.AssignExtra(src, 0)
}

// AssignExtra replaces the contents of a with copies of src. Capacity never
// shrinks. When src does not fit, every element is destroyed and a block of
// len(src)+extra slots takes the old one's place; otherwise the overlapping
// prefix is copy-assigned, further elements are copy-constructed into the
// slack, and surplus old elements are destroyed.
func (a *Array[T, A]) AssignExtra(src []T, extra int) {
	n := len(src)
	if n > a.allocation.count {
		a.Clear()
		a.free()
		a.allocation = a.allocate(n + max(extra, 0))
		memops.CopyConstructArray(a.allocation.Slice(), src)
		a.count = n
		return
	}
	s := a.allocation.Slice()
	overlap := min(n, a.count)
	memops.CopyAssignArray(s[:overlap], src[:overlap])
	if n > a.count {
		memops.CopyConstructArray(s[a.count:n], src[a.count:])
	} else {
		memops.DestroyArray(s[n:a.count])
	}
	a.count = n
}

// AssignArray replaces the contents of a with copies of the elements of src.
// When the allocator traits propagate on copy and the allocators differ, a first
// releases its block and adopts src's allocator.
func (a *Array[T, A]) AssignArray(src *Array[T, A]) {
	if a == src {
		return
	}
	if TraitsOf[A]().CopyOnContainerCopy && !AllocatorsEqual(a.alloc, src.alloc) {
		a.Release()
		a.alloc = src.alloc
	}
	a.AssignExtra(src.Slice(), 0)
}

// MoveAssign replaces the contents of a with the elements of src and leaves src
// empty. Bitwise movable elements take over src's block outright when the
// allocators allow it; otherwise they are moved one by one following the same
// rules as AssignExtra and src's block is freed.
func (a *Array[T, A]) MoveAssign(src *Array[T, A]) {
	if a == src {
		return
	}
	MoveAssignFrom(a, src, nil)
}

// MoveAssignFrom is MoveAssign across element or allocator types. conv
// move-constructs one element and may be nil when T and U are the same type.
func MoveAssignFrom[T, U any, A, B Allocator](dst *Array[T, A], src *Array[U, B], conv func(dst *T, src *U)) {
	if canStealAssign[T, U](dst.alloc, src.alloc) {
		dst.Release()
		if TraitsOf[A]().MoveOnContainerMove {
			dst.alloc = any(src.alloc).(A)
		}
		dst.allocation = Allocation[T]{data: (*T)(src.allocation.pointer()), count: src.allocation.count}
		dst.count = src.count
		src.allocation.Leak()
		src.count = 0
		return
	}
	moveAssignElements(dst, src.Slice(), conv)
	src.count = 0
	src.free()
}

func canStealAssign[T, U any, A, B Allocator](dst A, src B) bool {
	if !sameType[A, B]() || !capability.IsBitwiseMoveAssignable[U, T]() {
		return false
	}
	return TraitsOf[A]().MoveOnContainerMove || AllocatorsEqual(dst, any(src).(A))
}

// moveAssignElements applies the grow/overlap/excess rule with move semantics
// and ends the life of every source element.
func moveAssignElements[T, U any, A Allocator](dst *Array[T, A], src []U, conv func(*T, *U)) {
	n := len(src)
	if n > dst.allocation.count {
		dst.Clear()
		dst.free()
		dst.allocation = dst.allocate(n)
		memops.RelocateFrom(dst.allocation.Slice(), src, moveConv(conv))
		dst.count = n
		return
	}
	s := dst.allocation.Slice()
	overlap := min(n, dst.count)
	if conv == nil && sameType[T, U]() {
		t := memops.Reinterpret[U, T](src)
		memops.MoveOrCopyAssignArray(s[:overlap], t[:overlap])
		if n > dst.count {
			memops.MoveOrCopyConstructArray(s[dst.count:n], t[dst.count:])
		}
	} else {
		memops.DestroyArray(s[:overlap])
		memops.MoveOrCopyConstructArrayFrom(s[:overlap], src[:overlap], conv)
		if n > dst.count {
			memops.MoveOrCopyConstructArrayFrom(s[dst.count:n], src[dst.count:], conv)
		}
	}
	if n < dst.count {
		memops.DestroyArray(s[n:dst.count])
	}
	memops.DestroyArray(src)
	dst.count = n
}
