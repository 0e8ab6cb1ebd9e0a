package contig

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/cpu"

	"github.com/pavanmanishd/contig/capability"
)

// maxAllocBytes bounds a single block; larger requests fail with the empty
// sentinel instead of reaching the runtime.
const maxAllocBytes = 1 << (31 + 16*(^uint(0)>>63))

// Layout describes a block request: the element type and how many of them.
type Layout struct {
	Type     reflect.Type
	Size     uintptr
	Align    uintptr
	Pointers bool
	Count    int
}

// LayoutOf returns the layout of n elements of T.
func LayoutOf[T any](n int) Layout {
	info := capability.Of[T]()
	return Layout{
		Type:     info.Type,
		Size:     info.Size,
		Align:    info.Align,
		Pointers: info.Pointers,
		Count:    n,
	}
}

// Bytes returns the size of the block in bytes.
func (l Layout) Bytes() uintptr {
	return l.Size * uintptr(l.Count)
}

// fits reports whether count+extra elements stay below maxAllocBytes.
func (l Layout) fits(extra uintptr) bool {
	if l.Count < 0 {
		return false
	}
	if l.Size == 0 {
		return true
	}
	return uint64(l.Count) <= (maxAllocBytes-uint64(extra))/uint64(l.Size)
}

// Allocator acquires and releases blocks of memory.
//
// Allocate returns nil when the layout's Count is zero or when the memory cannot
// be obtained; callers treat nil as failure. Free releases a block returned by
// Allocate with the same layout. Freeing foreign memory or freeing twice is
// undefined.
type Allocator interface {
	Allocate(l Layout) unsafe.Pointer
	Free(p unsafe.Pointer, l Layout)
}

// Allocate obtains a block of n elements of T from a. It returns the empty
// Allocation when n is zero or when a fails.
func Allocate[T any](a Allocator, n int) Allocation[T] {
	if n <= 0 {
		return Allocation[T]{}
	}
	p := a.Allocate(LayoutOf[T](n))
	if p == nil {
		return Allocation[T]{}
	}
	return Allocation[T]{data: (*T)(p), count: n}
}

// Free releases the block behind al to a and leaves al empty.
func Free[T any](a Allocator, al *Allocation[T]) {
	if al.IsEmpty() {
		return
	}
	a.Free(al.pointer(), LayoutOf[T](al.count))
	al.Leak()
}

// isNilAllocator reports whether a is nil or a nil pointer, map, func or
// channel behind the interface.
func isNilAllocator(a Allocator) bool {
	if a == nil {
		return true
	}
	switch v := reflect.ValueOf(a); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Heap allocates from the garbage-collected Go heap with the element type's
// natural alignment. It is stateless; Free leaves reclamation to the collector.
type Heap struct{}

// Allocate implements Allocator.
func (Heap) Allocate(l Layout) unsafe.Pointer {
	if l.Count == 0 || !l.fits(0) {
		return nil
	}
	return reflect.MakeSlice(reflect.SliceOf(l.Type), l.Count, l.Count).UnsafePointer()
}

// Free implements Allocator.
func (Heap) Free(unsafe.Pointer, Layout) {}

// Alignment names a power-of-two byte alignment for AlignedHeap.
type Alignment interface {
	Bytes() uintptr
}

type (
	// Align16 aligns blocks to 16 bytes.
	Align16 struct{}
	// Align32 aligns blocks to 32 bytes.
	Align32 struct{}
	// Align64 aligns blocks to 64 bytes.
	Align64 struct{}
	// Align128 aligns blocks to 128 bytes.
	Align128 struct{}
	// AlignCacheLine aligns blocks to the CPU cache line size.
	AlignCacheLine struct{}
)

func (Align16) Bytes() uintptr        { return 16 }
func (Align32) Bytes() uintptr        { return 32 }
func (Align64) Bytes() uintptr        { return 64 }
func (Align128) Bytes() uintptr       { return 128 }
func (AlignCacheLine) Bytes() uintptr { return unsafe.Sizeof(cpu.CacheLinePad{}) }

// AlignedHeap allocates from the Go heap with the alignment named by N, or the
// element's natural alignment when that is stricter. Like Heap it is stateless.
type AlignedHeap[N Alignment] struct{}

// Alignment returns the configured alignment. It panics if N does not name a
// power of two.
func (AlignedHeap[N]) Alignment() uintptr {
	var n N
	align := n.Bytes()
	if !capability.IsPowerOfTwo(align) {
		panic(errors.Wrapf(ErrInvalidAlignment, "%T: %d", n, align))
	}
	return align
}

// Allocate implements Allocator.
//
// Pointer-free blocks are carved out of an over-sized byte buffer at the first
// aligned address. Blocks holding pointers keep their element type so the
// collector scans them, and start at the first aligned element of an
// over-sized typed slice.
func (h AlignedHeap[N]) Allocate(l Layout) unsafe.Pointer {
	align := h.Alignment()
	if align <= l.Align || l.Size == 0 {
		return Heap{}.Allocate(l)
	}
	if l.Count == 0 || !l.fits(align) {
		return nil
	}
	if !l.Pointers {
		buf := make([]byte, l.Bytes()+align)
		p := unsafe.Pointer(unsafe.SliceData(buf))
		return unsafe.Add(p, alignUp(uintptr(p), align)-uintptr(p))
	}
	step := min(l.Size&-l.Size, align)
	extra := int(align / step)
	base := reflect.MakeSlice(reflect.SliceOf(l.Type), l.Count+extra, l.Count+extra).UnsafePointer()
	for k := 0; k < extra; k++ {
		p := unsafe.Add(base, uintptr(k)*l.Size)
		if uintptr(p)&(align-1) == 0 {
			return p
		}
	}
	return nil
}

// Free implements Allocator.
func (AlignedHeap[N]) Free(unsafe.Pointer, Layout) {}

func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) & ^mask
}
