package capability

import (
	"reflect"
	"sync"
)

// Info holds the capability facts of one element type. It is computed once per
// type and never changes afterwards.
type Info struct {
	Type     reflect.Type
	Size     uintptr
	Align    uintptr
	Pointers bool

	HasInit       bool
	HasDestroy    bool
	HasCopy       bool
	HasMove       bool
	HasCopyAssign bool
	HasMoveAssign bool
	HasEqual      bool
	HasLess       bool

	// Comparable reports whether == is defined for the type.
	Comparable bool
	// RawComparable reports whether two values are equal exactly when their
	// bytes are equal.
	RawComparable bool
}

// pair holds the facts of an ordered (source, destination) type pair.
type pair struct {
	compatible bool
}

var (
	infos sync.Map // reflect.Type -> *Info
	pairs sync.Map // [2]reflect.Type -> pair
)

// Of returns the capability facts of T.
func Of[T any]() *Info {
	t := reflect.TypeFor[T]()
	if v, ok := infos.Load(t); ok {
		return v.(*Info)
	}
	p := any((*T)(nil))
	info := &Info{
		Type:          t,
		Size:          t.Size(),
		Align:         uintptr(t.Align()),
		Pointers:      hasPointers(t),
		Comparable:    t.Comparable(),
		RawComparable: rawComparable(t),
	}
	_, info.HasInit = p.(Initer)
	_, info.HasDestroy = p.(Destroyer)
	_, info.HasCopy = p.(Copier[T])
	_, info.HasMove = p.(Mover[T])
	_, info.HasCopyAssign = p.(CopyAssigner[T])
	_, info.HasMoveAssign = p.(MoveAssigner[T])
	_, info.HasEqual = p.(Equaler[T])
	_, info.HasLess = p.(Lesser[T])
	v, _ := infos.LoadOrStore(t, info)
	return v.(*Info)
}

// IsTriviallyDestructible reports whether destroying a T needs no work at all.
func IsTriviallyDestructible[T any]() bool {
	i := Of[T]()
	return !i.HasDestroy && !i.Pointers
}

// IsTriviallyDefaultConstructible reports whether a zero-filled slot is a
// default constructed T.
func IsTriviallyDefaultConstructible[T any]() bool {
	return !Of[T]().HasInit
}

// IsBitwiseCopyConstructible reports whether a D can be copy-constructed from an
// S by copying bytes.
func IsBitwiseCopyConstructible[S, D any]() bool {
	s, d := Of[S](), Of[D]()
	return !s.HasCopy && !d.HasCopy && compatible(s, d)
}

// IsBitwiseMoveConstructible reports whether a D can be move-constructed from an
// S by copying bytes.
func IsBitwiseMoveConstructible[S, D any]() bool {
	s, d := Of[S](), Of[D]()
	return !s.HasMove && !d.HasMove && !s.HasCopy && !d.HasCopy && compatible(s, d)
}

// IsBitwiseCopyAssignable reports whether an S can be copy-assigned over a live D
// by copying bytes.
func IsBitwiseCopyAssignable[S, D any]() bool {
	d := Of[D]()
	return !d.HasCopyAssign && !d.HasDestroy && IsBitwiseCopyConstructible[S, D]()
}

// IsBitwiseMoveAssignable reports whether an S can be move-assigned over a live D
// by copying bytes.
func IsBitwiseMoveAssignable[S, D any]() bool {
	d := Of[D]()
	return !d.HasMoveAssign && !d.HasCopyAssign && !d.HasDestroy && IsBitwiseMoveConstructible[S, D]()
}

// IsBitwiseComparable reports whether an A and a B compare equal exactly when
// their bytes are equal.
func IsBitwiseComparable[A, B any]() bool {
	a, b := Of[A](), Of[B]()
	return !a.HasEqual && !b.HasEqual && a.RawComparable && b.RawComparable && compatible(a, b)
}

// IsSameSize reports whether A and B occupy the same number of bytes.
func IsSameSize[A, B any]() bool {
	return Of[A]().Size == Of[B]().Size
}

// IsEmpty reports whether T occupies no memory.
func IsEmpty[T any]() bool {
	return Of[T]().Size == 0
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo[N ~int | ~uint | ~uintptr | ~uint32 | ~uint64](n N) bool {
	return n > 0 && n&(n-1) == 0
}

// IsLayoutCompatible reports whether values of A and B share one memory
// representation.
func IsLayoutCompatible[A, B any]() bool {
	return compatible(Of[A](), Of[B]())
}

func compatible(s, d *Info) bool {
	if s.Type == d.Type {
		return true
	}
	key := [2]reflect.Type{s.Type, d.Type}
	if v, ok := pairs.Load(key); ok {
		return v.(pair).compatible
	}
	p := pair{compatible: layoutCompatible(s.Type, d.Type)}
	pairs.Store(key, p)
	return p.compatible
}

func layoutCompatible(s, d reflect.Type) bool {
	if s.Size() != d.Size() {
		return false
	}
	if isInteger(s.Kind()) && isInteger(d.Kind()) {
		return true
	}
	if s.Kind() != d.Kind() || s.Kind() == reflect.Interface {
		return false
	}
	return s.ConvertibleTo(d)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// rawComparable excludes floats (NaN, -0), padding bytes and types whose
// equality looks through a pointer.
func rawComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return true
	case reflect.Array:
		return rawComparable(t.Elem())
	case reflect.Struct:
		var next uintptr
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Offset != next || !rawComparable(f.Type) {
				return false
			}
			next = f.Offset + f.Type.Size()
		}
		return next == t.Size()
	}
	return isInteger(t.Kind())
}
