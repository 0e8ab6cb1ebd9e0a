// Package allocators provides contig.Allocator implementations backed by
// memory the Go heap does not manage, plus wrappers that recycle and log
// blocks.
//
// # Off-heap allocators
//
// Slab (mmap-backed size classes), Pages (one anonymous mapping per block) and
// Malloc (raw system allocation) hand out memory the garbage collector never
// scans. They accept pointer-free element types only and panic with
// contig.ErrPointerLayout otherwise:
//
//	slab := allocators.NewSlab()
//	defer slab.Close()
//
//	points := contig.New[Point](slab)
//	defer points.Release()
//	points.Add(Point{X: 1, Y: 2})
//
// # Wrappers
//
// Pool parks freed blocks per exact layout and hands them out again before
// asking the allocator behind it. Logging reports every event to a zap logger.
// Both can sit in front of any allocator, including contig.Heap.
//
// # Thread Safety
//
// None of these allocators is goroutine-safe except Pages. Wrap a shared one
// in contig.SyncAllocator.
package allocators
