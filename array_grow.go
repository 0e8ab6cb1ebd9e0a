package contig

import (
	"github.com/pavanmanishd/contig/memops"
)

// EmplaceBack constructs a new last element in place and returns it. init
// receives a zeroed slot; a nil init default-constructs it. When the block is
// full it is replaced by one of exactly Count()+1 slots.
func (a *Array[T, A]) EmplaceBack(init func(*T)) *T {
	if a.count < a.allocation.count {
		p := &a.allocation.Slice()[a.count]
		memops.Construct(p, init)
		a.count++
		return p
	}
	// Construct before relocating so init may still read the old elements.
	next := a.allocate(a.count + 1)
	dst := next.Slice()
	p := &dst[a.count]
	memops.Construct(p, init)
	memops.Relocate(dst[:a.count], a.Slice())
	a.free()
	a.allocation = next
	a.count++
	return p
}

// Add appends a copy of v.
func (a *Array[T, A]) Add(v T) {
	a.AddToRef(v)
}

// AddToRef appends a copy of v and returns the new element.
func (a *Array[T, A]) AddToRef(v T) *T {
	return a.EmplaceBack(func(p *T) { memops.CopyConstruct(p, &v) })
}

// AddMove appends an element moved from src and returns it. src stays owned by
// the caller in its moved-from state.
func (a *Array[T, A]) AddMove(src *T) *T {
	return a.EmplaceBack(func(p *T) { memops.MoveOrCopyConstruct(p, src) })
}

// EmplaceAt constructs a new element at idx, shifting the elements at and after
// idx up by one, and returns it. idx may equal Count().
func (a *Array[T, A]) EmplaceAt(idx int, init func(*T)) *T {
	checkRange(idx, 0, a.count)
	if idx == a.count {
		return a.EmplaceBack(init)
	}
	if a.count < a.allocation.count {
		s := a.allocation.Slice()
		memops.RelocateBackward(s[idx+1:a.count+1], s[idx:a.count])
		p := &s[idx]
		memops.Construct(p, init)
		a.count++
		return p
	}
	next := a.allocate(a.count + 1)
	dst := next.Slice()
	p := &dst[idx]
	memops.Construct(p, init)
	live := a.Slice()
	memops.Relocate(dst[:idx], live[:idx])
	memops.Relocate(dst[idx+1:], live[idx:])
	a.free()
	a.allocation = next
	a.count++
	return p
}

// InsertAt inserts a copy of v at idx.
func (a *Array[T, A]) InsertAt(idx int, v T) *T {
	return a.EmplaceAt(idx, func(p *T) { memops.CopyConstruct(p, &v) })
}

// AddNoConstruct grows the array by n slots without constructing them and
// returns those slots. The caller must construct every returned slot before the
// array reads, moves or destroys it. Fresh heap memory is zeroed, reused memory
// may hold stale bytes for pointer-free types.
func (a *Array[T, A]) AddNoConstruct(n int) []T {
	if n <= 0 {
		return nil
	}
	if a.count+n > a.allocation.count {
		a.reallocate(a.count + n)
	}
	start := a.count
	a.count += n
	return a.allocation.Slice()[start:a.count]
}

// Reserve grows the block to hold at least n elements. It never shrinks.
func (a *Array[T, A]) Reserve(n int) {
	if n > a.allocation.count {
		a.reallocate(n)
	}
}

// Resize sets the element count to n, default-constructing new elements or
// destroying the excess tail.
func (a *Array[T, A]) Resize(n int) {
	a.resize(n, nil)
}

// ResizeWith is Resize with new elements copy-constructed from v.
func (a *Array[T, A]) ResizeWith(n int, v T) {
	a.resize(n, &v)
}

func (a *Array[T, A]) resize(n int, fill *T) {
	n = max(n, 0)
	switch {
	case n > a.count:
		if n > a.allocation.count {
			a.reallocate(n)
		}
		grown := a.allocation.Slice()[a.count:n]
		if fill != nil {
			memops.Fill(grown, fill)
		} else {
			memops.DefaultConstructArray(grown)
		}
	case n < a.count:
		memops.DestroyArray(a.Slice()[n:])
	}
	a.count = n
}

// ShrinkToFit drops all slack. An empty array returns its block entirely.
func (a *Array[T, A]) ShrinkToFit() {
	if a.count == a.allocation.count {
		return
	}
	if a.count == 0 {
		a.free()
		return
	}
	a.reallocate(a.count)
}
