package contig

import (
	"reflect"
	"unsafe"
)

// AllocatorTraits are the per-type facts an Array consults before it moves
// memory between allocator instances.
type AllocatorTraits struct {
	// AlwaysEqual means any two instances can free each other's blocks.
	AlwaysEqual bool
	// CopyOnContainerCopy means a copied array takes the source's allocator.
	CopyOnContainerCopy bool
	// MoveOnContainerMove means a move-assigned array takes the source's allocator.
	MoveOnContainerMove bool
}

type alwaysEqualer interface {
	AlwaysEqual() bool
}

type propagator interface {
	PropagateOnCopy() bool
	PropagateOnMove() bool
}

type allocatorEqualer interface {
	Equal(other Allocator) bool
}

// TraitsOf returns the traits of allocator type A. Empty allocator types are
// always equal and carry nothing worth propagating. Stateful ones are compared
// per instance and travel with their blocks. Either default can be overridden
// with AlwaysEqual() bool and PropagateOnCopy()/PropagateOnMove() methods,
// which are called on the zero value of A and must not read receiver state.
func TraitsOf[A Allocator]() AllocatorTraits {
	var a A
	empty := unsafe.Sizeof(a) == 0
	t := AllocatorTraits{
		AlwaysEqual:         empty,
		CopyOnContainerCopy: !empty,
		MoveOnContainerMove: !empty,
	}
	if e, ok := any(a).(alwaysEqualer); ok {
		t.AlwaysEqual = e.AlwaysEqual()
	}
	if p, ok := any(a).(propagator); ok {
		t.CopyOnContainerCopy = p.PropagateOnCopy()
		t.MoveOnContainerMove = p.PropagateOnMove()
	}
	return t
}

// AllocatorsEqual reports whether blocks from a may be freed through b.
func AllocatorsEqual[A Allocator](a, b A) bool {
	if TraitsOf[A]().AlwaysEqual {
		return true
	}
	if e, ok := any(a).(allocatorEqualer); ok {
		return e.Equal(b)
	}
	if t := reflect.TypeOf(a); t != nil && t.Comparable() {
		return any(a) == any(b)
	}
	return false
}
