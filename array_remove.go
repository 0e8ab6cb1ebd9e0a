package contig

import (
	"github.com/pavanmanishd/contig/memops"
)

// RemoveAt removes the element at idx, keeping the order of the rest.
func (a *Array[T, A]) RemoveAt(idx int) {
	a.RemoveAtN(idx, 1)
}

// RemoveAtN removes n elements starting at idx, keeping the order of the rest
// and the capacity of the block.
//
// The gap is closed in one pass: the first min(n, tail) followers are
// move-constructed into the destroyed slots, the remaining followers are
// move-assigned leftward, and the moved-from slots at the end are destroyed.
func (a *Array[T, A]) RemoveAtN(idx, n int) {
	checkRange(idx, n, a.count)
	if n == 0 {
		return
	}
	s := a.Slice()
	tail := a.count - idx - n
	memops.DestroyArray(s[idx : idx+n])

	m := min(n, tail)
	memops.MoveOrCopyConstructArray(s[idx:idx+m], s[idx+n:idx+n+m])
	if tail > n {
		memops.MoveOrCopyAssignArray(s[idx+n:idx+tail], s[idx+2*n:])
	}
	memops.DestroyArray(s[idx+max(n, tail):])
	a.count -= n
}

// RemoveAtShrink removes n elements starting at idx and moves the survivors
// into a block of exactly the new count.
func (a *Array[T, A]) RemoveAtShrink(idx, n int) {
	checkRange(idx, n, a.count)
	if n == 0 && a.count == a.allocation.count {
		return
	}
	s := a.Slice()
	next := a.allocate(a.count - n)
	dst := next.Slice()
	memops.DestroyArray(s[idx : idx+n])
	memops.Relocate(dst[:idx], s[:idx])
	memops.Relocate(dst[idx:], s[idx+n:])
	a.free()
	a.allocation = next
	a.count -= n
}
