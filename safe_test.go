package contig

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSafeArena(t *testing.T) {
	s := NewSafeArena(WithChunkSize(2048))
	var size int
	s.Do(func(a Allocator) { size = a.(*Arena).ChunkSize() })
	assert.Equal(t, 2048, size)
}

func TestSyncAllocatorForwards(t *testing.T) {
	c := NewCounting(nil)
	s := NewSyncAllocator(c)
	arr := New[int](s)
	arr.Add(1)
	arr.Add(2)
	arr.Release()
	m := c.Metrics()
	assert.Equal(t, 2, m.Allocations)
	assert.Equal(t, 2, m.Frees)
	assert.Zero(t, m.BytesInUse)
}

func TestSafeArenaConcurrency(t *testing.T) {
	s := NewSafeArena(WithChunkSize(1024))
	const numGoroutines = 10
	const numAddsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make([]*Array[int64, *SyncAllocator], numGoroutines)

	// each goroutine owns its array; only the allocator is shared
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			arr := New[int64](s)
			for j := 0; j < numAddsPerGoroutine; j++ {
				switch j % 4 {
				case 0, 1:
					arr.Add(int64(id*1000 + j))
				case 2:
					arr.InsertAt(0, int64(id*1000+j))
				case 3:
					arr.Reserve(arr.Count() + 2)
					arr.Add(int64(id*1000 + j))
				}
			}
			results[id] = arr
		}(i)
	}
	wg.Wait()

	for id, arr := range results {
		require.Equal(t, numAddsPerGoroutine, arr.Count())
		require.NoError(t, arr.Validate())
		assert.True(t, arr.Contains(int64(id*1000+2)))
	}
	s.Do(func(a Allocator) {
		assert.NotZero(t, a.(*Arena).SizeInUse())
	})
}

func TestSafeArenaConcurrentReset(t *testing.T) {
	s := NewSafeArena(WithChunkSize(1024))
	const numWorkers = 5

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := 0; i < numWorkers-2; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Allocate[uint32](s, 8)
				runtime.Gosched()
			}
		}()
	}

	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			runtime.Gosched()
			s.Do(func(a Allocator) { a.(*Arena).Reset() })
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			s.Do(func(a Allocator) { _ = a.(*Arena).Metrics() })
			runtime.Gosched()
		}
	}()

	wg.Wait()
}

func BenchmarkSyncAllocator(b *testing.B) {
	s := NewSafeArena(WithChunkSize(1024 * 1024))
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			Allocate[int64](s, 4)
			if i++; i%1000 == 0 {
				s.Do(func(a Allocator) { a.(*Arena).Reset() })
			}
		}
	})
}
