package contig_test

import (
	"math"
	"runtime"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/contig"
	"github.com/pavanmanishd/contig/capability"
)

// TestEdgeCases covers boundary behaviour seen from outside the package.
func TestEdgeCases(t *testing.T) {
	t.Run("ZeroAndNegativeChunkSizes", func(t *testing.T) {
		for _, size := range []int{0, -1, -1000} {
			a := contig.NewArena(contig.WithChunkSize(size))
			assert.Equal(t, contig.DefaultChunkSize, a.ChunkSize(), "size %d", size)
			a.Release()
		}
		a := contig.NewArena(contig.WithChunkSize(1))
		assert.Equal(t, 1, a.ChunkSize())
	})

	t.Run("IntegerOverflowProtection", func(t *testing.T) {
		assert.True(t, contig.Allocate[int64](contig.Heap{}, math.MaxInt).IsEmpty())
		assert.True(t, contig.Allocate[int64](contig.AlignedHeap[contig.Align64]{}, math.MaxInt/4).IsEmpty())
		assert.True(t, contig.Allocate[int64](contig.NewArena(), math.MaxInt/2).IsEmpty())

		a := contig.New[int64](contig.Heap{})
		assert.Panics(t, func() { a.Reserve(math.MaxInt) })
	})

	t.Run("OutOfMemoryIsMarked", func(t *testing.T) {
		a := contig.New[[1 << 16]byte](contig.Heap{})
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, contig.ErrOutOfMemory))
		}()
		a.Reserve(math.MaxInt / 2)
	})

	t.Run("UseAfterRelease", func(t *testing.T) {
		a := contig.NewArena()
		a.Release()
		assert.Panics(t, func() { contig.New[int](a).Add(1) })
		a.Release()
	})

	t.Run("EmptyArrays", func(t *testing.T) {
		var zero contig.Array[int, contig.Heap]
		assert.True(t, zero.IsEmpty())
		assert.Nil(t, zero.Data())
		assert.Empty(t, zero.Slice())
		assert.NoError(t, zero.Validate())
		zero.ShrinkToFit()
		zero.Release()
		zero.Clear()
		assert.Equal(t, contig.IndexNone, zero.IndexOf(0))
		assert.Equal(t, "[]", zero.String())

		c := zero.Clone(0)
		assert.True(t, c.IsEmpty())
		m := zero.Move()
		assert.True(t, m.IsEmpty())
		assert.True(t, contig.Equal(&zero, m))
	})
}

func TestAlignmentBoundaries(t *testing.T) {
	a := contig.NewArena(contig.WithChunkSize(1024))
	for _, n := range []int{1, 3, 7, 9} {
		al := contig.Allocate[byte](a, n)
		require.False(t, al.IsEmpty())
		assert.Zero(t, uintptr(unsafe.Pointer(al.Data()))%unsafe.Sizeof(uintptr(0)))
	}

	type wide struct {
		_ [3]uint64
	}
	w := contig.Allocate[wide](contig.AlignedHeap[contig.Align128]{}, 3)
	assert.Zero(t, uintptr(unsafe.Pointer(w.Data()))%128)
}

func TestExactChunkSizeAllocation(t *testing.T) {
	a := contig.NewArena(contig.WithChunkSize(256))
	arr := contig.New[uint64](a)
	arr.Reserve(32)
	assert.Equal(t, 1, a.NumChunks())
	assert.Equal(t, 256, a.SizeInUse())

	arr.Add(1)
	assert.Equal(t, 1, arr.Count())
	arr.Reserve(33)
	assert.Equal(t, 2, a.NumChunks())
}

func TestTypeSpecificArrays(t *testing.T) {
	t.Run("BasicTypes", func(t *testing.T) {
		b := contig.Of(true, false)
		assert.Equal(t, 1, b.IndexOf(false))
		f := contig.Of(1.5, math.NaN())
		assert.Equal(t, contig.IndexNone, f.IndexOf(math.NaN()))
		s := contig.Of("x", "y")
		assert.True(t, s.Contains("y"))
	})

	t.Run("ComplexTypes", func(t *testing.T) {
		type node struct {
			name     string
			children []int
			meta     map[string]int
		}
		a := contig.New[node](contig.Heap{})
		a.Add(node{name: "root", children: []int{1, 2}, meta: map[string]int{"k": 1}})
		a.Add(node{name: "leaf"})
		runtime.GC()
		assert.Equal(t, "root", a.First().name)
		assert.Equal(t, 1, a.First().meta["k"])
		a.RemoveAt(0)
		assert.Equal(t, "leaf", a.First().name)
		assert.False(t, capability.IsTriviallyDestructible[node]())
	})

	t.Run("FixedArrays", func(t *testing.T) {
		a := contig.Of([4]byte{1, 2, 3, 4}, [4]byte{5, 6, 7, 8})
		assert.Equal(t, [4]byte{5, 6, 7, 8}, a.Get(1))
		assert.True(t, capability.IsSameSize[[4]byte, uint32]())
		assert.False(t, capability.IsLayoutCompatible[[4]byte, uint32]())
	})
}

// TestPointersSurviveGC checks that heap-backed blocks keep their referents
// alive across collections and reallocations.
func TestPointersSurviveGC(t *testing.T) {
	a := contig.New[*[]byte](contig.AlignedHeap[contig.Align64]{})
	for i := range 64 {
		b := make([]byte, 1024)
		b[0] = byte(i)
		a.Add(&b)
		if i%8 == 0 {
			runtime.GC()
		}
	}
	runtime.GC()
	for i, p := range a.All() {
		require.Equal(t, byte(i), (**p)[0])
	}
}

func TestConcurrencyStress(t *testing.T) {
	s := contig.NewSafeArena(contig.WithChunkSize(4096))
	const workers = 8

	var wg sync.WaitGroup
	deadline := time.Now().Add(100 * time.Millisecond)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for time.Now().Before(deadline) {
				arr := contig.New[int32](s)
				for j := range 16 {
					arr.Add(int32(id + j))
				}
				if arr.Count() != 16 || *arr.Last() != int32(id+15) {
					t.Errorf("worker %d: corrupted array %v", id, arr)
					return
				}
				arr.Release()
			}
		}(w)
	}
	wg.Wait()
}
