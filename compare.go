package contig

import (
	"cmp"

	"github.com/pavanmanishd/contig/memops"
)

// Equal reports whether a and b hold equal elements in the same order. Counts
// are compared first, then the elements as bytes when the type allows it, or
// with the element's Equal hook or ==.
func Equal[T any, A, B Allocator](a *Array[T, A], b *Array[T, B]) bool {
	return memops.EqualArray(a.Slice(), b.Slice())
}

// NotEqual is the negation of Equal.
func NotEqual[T any, A, B Allocator](a *Array[T, A], b *Array[T, B]) bool {
	return !Equal(a, b)
}

// EqualFunc compares arrays of different element types. eq is only consulted
// when the pair cannot be compared as bytes.
func EqualFunc[T, U any, A, B Allocator](a *Array[T, A], b *Array[U, B], eq func(*T, *U) bool) bool {
	return memops.EqualArrayFunc(a.Slice(), b.Slice(), eq)
}

// Less reports whether a orders before b, comparing elements with their Less
// hook or, for integer, float and string kinds, with <. Ties are broken by
// count.
func Less[T any, A, B Allocator](a *Array[T, A], b *Array[T, B]) bool {
	return memops.LessArray(a.Slice(), b.Slice())
}

// Compare orders two arrays of ordered elements lexicographically and returns
// -1, 0 or +1.
func Compare[T cmp.Ordered, A, B Allocator](a *Array[T, A], b *Array[T, B]) int {
	return memops.CompareOrdered(a.Slice(), b.Slice())
}
