package allocators

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pavanmanishd/contig"
)

type point struct {
	X, Y int32
}

// exercise runs the same array workload over any allocator.
func exercise[A contig.Allocator](t *testing.T, alloc A) {
	t.Helper()
	arr := contig.New[point](alloc)
	for i := range 10 {
		arr.Add(point{int32(i), int32(-i)})
	}
	arr.InsertAt(0, point{100, 100})
	arr.RemoveAtN(1, 5)
	require.NoError(t, arr.Validate())
	assert.Equal(t, []point{{100, 100}, {5, -5}, {6, -6}, {7, -7}, {8, -8}, {9, -9}}, arr.Slice())

	b := arr.Clone(2)
	assert.True(t, contig.Equal(arr, b))
	b.Release()
	arr.Release()
}

func TestOffHeapRejectsPointers(t *testing.T) {
	tests := []struct {
		name  string
		alloc contig.Allocator
	}{
		{"slab", NewSlab()},
		{"pages", Pages{}},
		{"malloc", NewMalloc()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { tt.alloc.Allocate(contig.LayoutOf[*int](1)) })
			assert.Panics(t, func() { contig.New[string](tt.alloc).Add("x") })
			assert.Nil(t, tt.alloc.Allocate(contig.LayoutOf[int](0)))
			assert.NotNil(t, tt.alloc.Allocate(contig.LayoutOf[struct{}](3)))
		})
	}
}

func TestSlab(t *testing.T) {
	s := NewSlab()
	defer func() { require.NoError(t, s.Close()) }()

	exercise(t, s)
	assert.Zero(t, s.Blocks())

	al := contig.Allocate[uint64](s, 100)
	require.False(t, al.IsEmpty())
	assert.Equal(t, 1, s.Blocks())
	for i := range al.Slice() {
		al.Slice()[i] = uint64(i)
	}
	assert.Equal(t, uint64(99), al.Slice()[99])
	contig.Free(s, &al)
	assert.Zero(t, s.Blocks())
}

func TestPages(t *testing.T) {
	exercise(t, Pages{})

	al := contig.Allocate[int64](Pages{}, 3)
	require.False(t, al.IsEmpty())
	assert.Zero(t, uintptr(unsafe.Pointer(al.Data()))%4096)
	assert.Equal(t, []int64{0, 0, 0}, al.Slice())
	al.Slice()[2] = 7
	contig.Free(Pages{}, &al)

	assert.Equal(t, contig.AllocatorTraits{AlwaysEqual: true}, contig.TraitsOf[Pages]())
}

func TestMalloc(t *testing.T) {
	m := NewMalloc()
	exercise(t, m)
	assert.Zero(t, m.Blocks())

	al := contig.Allocate[uint32](m, 16)
	require.False(t, al.IsEmpty())
	assert.Equal(t, 1, m.Blocks())
	al.Slice()[15] = 42
	contig.Free(m, &al)
	assert.Zero(t, m.Blocks())

	// foreign pointers are ignored
	x := 1
	m.Free(unsafe.Pointer(&x), contig.LayoutOf[int](1))
}

func TestPool(t *testing.T) {
	c := contig.NewCounting(nil)
	p := NewPool(c)

	a1 := contig.Allocate[int](p, 4)
	data := a1.Data()
	contig.Free(p, &a1)
	assert.Equal(t, PoolStats{Misses: 1, Parked: 1}, p.Stats())

	a2 := contig.Allocate[int](p, 4)
	assert.Same(t, data, a2.Data(), "the parked block is reused")
	assert.Equal(t, PoolStats{Hits: 1, Misses: 1}, p.Stats())

	a3 := contig.Allocate[int](p, 5)
	assert.NotSame(t, data, a3.Data(), "other layouts miss")
	assert.Equal(t, 2, c.Metrics().Allocations)

	contig.Free(p, &a2)
	contig.Free(p, &a3)
	assert.Equal(t, 2, p.Stats().Parked)
	assert.Zero(t, c.Metrics().Frees)

	p.Drain()
	assert.Zero(t, p.Stats().Parked)
	assert.Equal(t, 2, p.Stats().Released)
	assert.Equal(t, 2, c.Metrics().Frees)
	assert.Zero(t, c.Metrics().BytesInUse)
}

func TestPoolDepth(t *testing.T) {
	c := contig.NewCounting(nil)
	p := NewPool(c, WithDepth(1))
	a := contig.Allocate[int](p, 2)
	b := contig.Allocate[int](p, 2)
	contig.Free(p, &a)
	contig.Free(p, &b)
	assert.Equal(t, 1, p.Stats().Parked)
	assert.Equal(t, 1, p.Stats().Released)
	assert.Equal(t, 1, c.Metrics().Frees)

	off := NewPool(c, WithDepth(0))
	d := contig.Allocate[int](off, 2)
	contig.Free(off, &d)
	assert.Zero(t, off.Stats().Parked)
}

func TestPoolClearsPointers(t *testing.T) {
	p := NewPool(nil)
	al := contig.Allocate[*int](p, 2)
	s := al.Slice()
	x := 1
	s[0], s[1] = &x, &x
	contig.Free(p, &al)
	assert.Nil(t, s[0])
	assert.Nil(t, s[1])
}

func TestPoolArrayChurn(t *testing.T) {
	c := contig.NewCounting(nil)
	p := NewPool(c)
	for range 10 {
		arr := contig.FromSlice(p, []string{"a", "b"}, 0)
		arr.Add("c")
		arr.Release()
	}
	assert.Equal(t, 2, c.Metrics().Allocations, "one block per layout")
	assert.Equal(t, 18, p.Stats().Hits)
	exercise(t, p)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewLogging(contig.Heap{}, WithLogger(zap.New(core)))

	arr := contig.New[int64](g)
	arr.Add(1)
	arr.Add(2)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "allocate", entries[0].Message)
	assert.Equal(t, "allocate", entries[1].Message)
	assert.Equal(t, "free", entries[2].Message)

	fields := entries[1].ContextMap()
	assert.Equal(t, "int64", fields["type"])
	assert.Equal(t, int64(2), fields["count"])
	assert.Equal(t, "16", fmt.Sprint(fields["bytes"]))
}

type failing struct{}

func (failing) Allocate(contig.Layout) unsafe.Pointer { return nil }
func (failing) Free(unsafe.Pointer, contig.Layout)    {}

func TestLoggingFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := NewLogging(failing{}, WithLogger(zap.New(core)))

	assert.Panics(t, func() { contig.New[int](g).Add(1) })
	require.Equal(t, 1, logs.FilterMessage("allocation failed").Len())

	assert.NotPanics(t, func() { NewLogging(contig.Heap{}).Allocate(contig.LayoutOf[int](1)) })
}
