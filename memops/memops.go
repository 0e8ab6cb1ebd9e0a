// Package memops performs construct, destroy, copy, move, relocate and compare
// operations over ranges of elements.
//
// Every operation asks the capability classifier whether the element type (or
// the source/destination pair) can be handled as raw bytes. If so it uses one
// builtin copy, clear or byte comparison for the whole range; otherwise it walks
// the range and invokes the element's lifecycle hooks. Nothing here allocates.
//
// Ranges are slices. Destination slices must be at least as long as their
// source; only the first len(src) destination slots are touched.
package memops

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/contig/capability"
)

// Construct builds a T in the raw slot dst. The slot is zeroed first; init, when
// non-nil, then sets it up the way a constructor with arguments would. A nil
// init default-constructs the slot.
func Construct[T any](dst *T, init func(*T)) {
	var zero T
	*dst = zero
	if init != nil {
		init(dst)
		return
	}
	if capability.Of[T]().HasInit {
		any(dst).(capability.Initer).Init()
	}
}

// DefaultConstruct default-constructs the raw slot dst.
func DefaultConstruct[T any](dst *T) {
	Construct(dst, nil)
}

// DefaultConstructArray default-constructs every raw slot in s. Types without
// an Init hook are zero-filled in one pass.
func DefaultConstructArray[T any](s []T) {
	clear(s)
	if !capability.Of[T]().HasInit {
		return
	}
	for i := range s {
		any(&s[i]).(capability.Initer).Init()
	}
}

// Destroy ends the life of the element at p, leaving a raw slot.
func Destroy[T any](p *T) {
	info := capability.Of[T]()
	if info.HasDestroy {
		any(p).(capability.Destroyer).Destroy()
	}
	if info.Pointers {
		var zero T
		*p = zero
	}
}

// DestroyArray destroys every element in s. It is a no-op for trivially
// destructible types and for an empty range.
func DestroyArray[T any](s []T) {
	if len(s) == 0 {
		return
	}
	info := capability.Of[T]()
	if info.HasDestroy {
		for i := range s {
			any(&s[i]).(capability.Destroyer).Destroy()
		}
	}
	if info.Pointers {
		clear(s)
	}
}

// CopyConstruct copy-constructs the raw slot dst from src.
func CopyConstruct[T any](dst, src *T) {
	if !capability.Of[T]().HasCopy {
		*dst = *src
		return
	}
	var zero T
	*dst = zero
	any(dst).(capability.Copier[T]).CopyFrom(src)
}

// CopyConstructArray copy-constructs dst[:len(src)] from src.
func CopyConstructArray[T any](dst, src []T) {
	dst = dst[:len(src)]
	if capability.IsBitwiseCopyConstructible[T, T]() {
		copy(dst, src)
		return
	}
	for i := range src {
		CopyConstruct(&dst[i], &src[i])
	}
}

// CopyConstructArrayFrom copy-constructs dst[:len(src)] from elements of another
// type. Layout compatible pairs are copied as bytes; every other pair is
// converted element by element with conv.
func CopyConstructArrayFrom[D, S any](dst []D, src []S, conv func(dst *D, src *S)) {
	dst = dst[:len(src)]
	if capability.IsBitwiseCopyConstructible[S, D]() {
		copy(dst, Reinterpret[S, D](src))
		return
	}
	convertEach(dst, src, conv)
}

// Fill copy-constructs v into every raw slot of dst.
func Fill[T any](dst []T, v *T) {
	bitwise := capability.IsBitwiseCopyConstructible[T, T]()
	for i := range dst {
		if bitwise {
			dst[i] = *v
			continue
		}
		CopyConstruct(&dst[i], v)
	}
}

// MoveOrCopyConstruct move-constructs the raw slot dst from src, falling back to
// copy construction when the type has a Copy hook but no Move hook.
func MoveOrCopyConstruct[T any](dst, src *T) {
	info := capability.Of[T]()
	switch {
	case info.HasMove:
		var zero T
		*dst = zero
		any(dst).(capability.Mover[T]).MoveFrom(src)
	case info.HasCopy:
		var zero T
		*dst = zero
		any(dst).(capability.Copier[T]).CopyFrom(src)
	default:
		*dst = *src
		if info.HasDestroy {
			var zero T
			*src = zero
		}
	}
}

// MoveOrCopyConstructArray move-constructs dst[:len(src)] from src. The
// sources stay alive and must still be destroyed by the caller. dst must not
// start above an overlapping src.
func MoveOrCopyConstructArray[T any](dst, src []T) {
	dst = dst[:len(src)]
	if capability.IsBitwiseMoveConstructible[T, T]() && !capability.Of[T]().HasDestroy {
		copy(dst, src)
		return
	}
	for i := range src {
		MoveOrCopyConstruct(&dst[i], &src[i])
	}
}

// MoveOrCopyConstructArrayFrom is the cross-type form of
// MoveOrCopyConstructArray.
func MoveOrCopyConstructArrayFrom[D, S any](dst []D, src []S, conv func(dst *D, src *S)) {
	dst = dst[:len(src)]
	if capability.IsBitwiseMoveConstructible[S, D]() {
		copy(dst, Reinterpret[S, D](src))
		if capability.Of[S]().HasDestroy {
			clear(src)
		}
		return
	}
	convertEach(dst, src, conv)
}

// CopyAssign copy-assigns src over the live element dst.
func CopyAssign[T any](dst, src *T) {
	if dst == src {
		return
	}
	info := capability.Of[T]()
	if info.HasCopyAssign {
		any(dst).(capability.CopyAssigner[T]).AssignFrom(src)
		return
	}
	if info.HasDestroy {
		any(dst).(capability.Destroyer).Destroy()
	}
	CopyConstruct(dst, src)
}

// CopyAssignArray copy-assigns src over the live elements dst[:len(src)].
func CopyAssignArray[T any](dst, src []T) {
	dst = dst[:len(src)]
	if capability.IsBitwiseCopyAssignable[T, T]() {
		copy(dst, src)
		return
	}
	for i := range src {
		CopyAssign(&dst[i], &src[i])
	}
}

// MoveOrCopyAssign move-assigns src over the live element dst.
func MoveOrCopyAssign[T any](dst, src *T) {
	if dst == src {
		return
	}
	info := capability.Of[T]()
	switch {
	case info.HasMoveAssign:
		any(dst).(capability.MoveAssigner[T]).MoveAssignFrom(src)
	case info.HasCopyAssign && !info.HasMove:
		any(dst).(capability.CopyAssigner[T]).AssignFrom(src)
	default:
		if info.HasDestroy {
			any(dst).(capability.Destroyer).Destroy()
		}
		MoveOrCopyConstruct(dst, src)
	}
}

// MoveOrCopyAssignArray move-assigns src over the live elements dst[:len(src)].
// The ranges may overlap in either direction.
func MoveOrCopyAssignArray[T any](dst, src []T) {
	dst = dst[:len(src)]
	if capability.IsBitwiseMoveAssignable[T, T]() {
		copy(dst, src)
		return
	}
	if len(src) == 0 {
		return
	}
	if addr(dst) <= addr(src) {
		for i := range src {
			MoveOrCopyAssign(&dst[i], &src[i])
		}
		return
	}
	for i := len(src) - 1; i >= 0; i-- {
		MoveOrCopyAssign(&dst[i], &src[i])
	}
}

// Relocate moves src into the raw slots dst[:len(src)] and ends the life of the
// sources. dst and src must not overlap; use RelocateBackward to shift a range
// toward higher addresses in place. For bitwise movable types one copy does
// both jobs and the source slots are simply abandoned.
func Relocate[T any](dst, src []T) {
	dst = dst[:len(src)]
	if Overlaps(dst, src) {
		panic(errors.AssertionFailedf("memops: Relocate ranges overlap"))
	}
	if capability.IsBitwiseMoveConstructible[T, T]() {
		copy(dst, src)
		return
	}
	for i := range src {
		MoveOrCopyConstruct(&dst[i], &src[i])
	}
	DestroyArray(src)
}

// RelocateFrom is the cross-type form of Relocate.
func RelocateFrom[D, S any](dst []D, src []S, conv func(dst *D, src *S)) {
	dst = dst[:len(src)]
	if Overlaps(dst, src) {
		panic(errors.AssertionFailedf("memops: RelocateFrom ranges overlap"))
	}
	if capability.IsBitwiseMoveConstructible[S, D]() {
		copy(dst, Reinterpret[S, D](src))
		return
	}
	convertEach(dst, src, conv)
	DestroyArray(src)
}

// RelocateBackward moves src into dst[:len(src)] walking from the last element
// to the first, then ends the life of the sources that were not overwritten.
// dst may overlap src as long as it does not start below it, which is the shape
// of opening a gap for insertion.
func RelocateBackward[T any](dst, src []T) {
	dst = dst[:len(src)]
	if len(src) == 0 {
		return
	}
	if addr(dst) < addr(src) && Overlaps(dst, src) {
		panic(errors.AssertionFailedf("memops: RelocateBackward destination starts below an overlapping source"))
	}
	if capability.IsBitwiseMoveConstructible[T, T]() {
		copy(dst, src)
		return
	}
	for i := len(src) - 1; i >= 0; i-- {
		MoveOrCopyConstruct(&dst[i], &src[i])
		Destroy(&src[i])
	}
}

func convertEach[D, S any](dst []D, src []S, conv func(dst *D, src *S)) {
	if conv == nil {
		panic(errors.AssertionFailedf("memops: %v is not layout compatible with %v and no conversion was given",
			capability.Of[S]().Type, capability.Of[D]().Type))
	}
	var zero D
	for i := range src {
		dst[i] = zero
		conv(&dst[i], &src[i])
	}
}

// Reinterpret views s as a slice of D without copying. S and D must have the
// same size.
func Reinterpret[S, D any](s []S) []D {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*D)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

// Bytes views the memory of s as bytes.
func Bytes[T any](s []T) []byte {
	n := len(s) * int(capability.Of[T]().Size)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n)
}

// Overlaps reports whether the memory of a and b intersects.
func Overlaps[A, B any](a []A, b []B) bool {
	an, bn := Bytes(a), Bytes(b)
	if len(an) == 0 || len(bn) == 0 {
		return false
	}
	a0, b0 := addr(an), addr(bn)
	return a0 < b0+uintptr(len(bn)) && b0 < a0+uintptr(len(an))
}

func addr[T any](s []T) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}
