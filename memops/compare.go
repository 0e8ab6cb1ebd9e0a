package memops

import (
	"bytes"
	"cmp"
	"reflect"
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/contig/capability"
)

// EqualArray reports whether a and b hold equal elements in the same order.
// Bitwise comparable types are compared as one byte range; otherwise the
// element's Equal hook is used, or == for comparable types.
func EqualArray[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	info := capability.Of[T]()
	switch {
	case capability.IsBitwiseComparable[T, T]():
		return bytes.Equal(Bytes(a), Bytes(b))
	case info.HasEqual:
		for i := range a {
			if !any(&a[i]).(capability.Equaler[T]).Equal(&b[i]) {
				return false
			}
		}
		return true
	case info.Comparable:
		for i := range a {
			if any(a[i]) != any(b[i]) {
				return false
			}
		}
		return true
	}
	panic(errors.AssertionFailedf("memops: %v has no equality", info.Type))
}

// Equal reports whether the elements at a and b are equal.
func Equal[T any](a, b *T) bool {
	return EqualArray(unsafe.Slice(a, 1), unsafe.Slice(b, 1))
}

// NotEqualArray is the negation of EqualArray.
func NotEqualArray[T any](a, b []T) bool {
	return !EqualArray(a, b)
}

// EqualArrayFunc compares ranges of two element types. Layout compatible,
// bitwise comparable pairs are compared as bytes; eq decides otherwise.
func EqualArrayFunc[A, B any](a []A, b []B, eq func(a *A, b *B) bool) bool {
	if len(a) != len(b) {
		return false
	}
	if capability.IsBitwiseComparable[A, B]() {
		return bytes.Equal(Bytes(a), Bytes(b))
	}
	if eq == nil {
		panic(errors.AssertionFailedf("memops: no equality between %v and %v",
			capability.Of[A]().Type, capability.Of[B]().Type))
	}
	for i := range a {
		if !eq(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

// LessArray reports whether a orders before b lexicographically. Elements
// are ordered by their Less hook, or by < for types whose kind is an integer,
// float or string. Byte elements without a hook compare as raw bytes.
func LessArray[T any](a, b []T) bool {
	info := capability.Of[T]()
	var less func(x, y *T) bool
	switch {
	case info.HasLess:
		less = func(x, y *T) bool { return any(x).(capability.Lesser[T]).Less(y) }
	case info.Type.Kind() == reflect.Uint8:
		return bytes.Compare(Bytes(a), Bytes(b)) < 0
	default:
		natural := naturalLess(info.Type.Kind())
		if natural == nil {
			panic(errors.AssertionFailedf("memops: %v has no ordering", info.Type))
		}
		less = func(x, y *T) bool { return natural(unsafe.Pointer(x), unsafe.Pointer(y)) }
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if less(&a[i], &b[i]) {
			return true
		}
		if less(&b[i], &a[i]) {
			return false
		}
	}
	return len(a) < len(b)
}

// naturalLess returns < for the ordered kinds, or nil. A value of a named type
// shares the representation of its kind's predeclared type.
func naturalLess(k reflect.Kind) func(x, y unsafe.Pointer) bool {
	switch k {
	case reflect.Int:
		return lessAs[int]
	case reflect.Int8:
		return lessAs[int8]
	case reflect.Int16:
		return lessAs[int16]
	case reflect.Int32:
		return lessAs[int32]
	case reflect.Int64:
		return lessAs[int64]
	case reflect.Uint:
		return lessAs[uint]
	case reflect.Uint8:
		return lessAs[uint8]
	case reflect.Uint16:
		return lessAs[uint16]
	case reflect.Uint32:
		return lessAs[uint32]
	case reflect.Uint64:
		return lessAs[uint64]
	case reflect.Uintptr:
		return lessAs[uintptr]
	case reflect.Float32:
		return lessAs[float32]
	case reflect.Float64:
		return lessAs[float64]
	case reflect.String:
		return lessAs[string]
	}
	return nil
}

func lessAs[T cmp.Ordered](x, y unsafe.Pointer) bool {
	return *(*T)(x) < *(*T)(y)
}

// CompareOrdered compares a and b lexicographically, returning -1, 0 or +1.
func CompareOrdered[T cmp.Ordered](a, b []T) int {
	if reflect.TypeFor[T]().Kind() == reflect.Uint8 {
		return bytes.Compare(Bytes(a), Bytes(b))
	}
	return slices.Compare(a, b)
}
