// Package contig implements an allocator-aware contiguous array for Go.
//
// # Overview
//
// An Array[T, A] is a growable sequence of T whose memory comes from an
// allocator of type A instead of from append. The array keeps a single block
// and a count of live elements; everything between the count and the end of the
// block is raw memory. This is useful for:
//
//   - Element types with lifecycle hooks (Init, Destroy, CopyFrom, MoveFrom)
//   - Containers that must live in an arena, a slab or mmap'd pages
//   - Code that needs exact control over when memory grows
//   - Measuring allocation behaviour with a Counting allocator
//
// # Basic Usage
//
//	a := contig.New[int](contig.Heap{})
//	a.Add(1)
//	a.Add(2)
//	a.InsertAt(0, 0)  // [0 1 2]
//	a.RemoveAt(1)     // [0 2]
//
//	b := a.Clone(4)   // copy with room for 4 more
//	c := b.Move()     // c owns b's block, b is empty
//
// # Growth
//
// Growth is exact. Adding to a full array replaces its block with one of
// exactly Count()+1 slots, so repeated Add calls reallocate every time. Ask for
// slack explicitly with Reserve, AddNoConstruct, or the extra argument of
// FromSlice, Clone and CopyOf. Removal never shrinks the block; ShrinkToFit and
// RemoveAtShrink do.
//
// # Element Capabilities
//
// Elements are handled as raw bytes unless their pointer type implements one of
// the hooks in package capability. Types without hooks are copied, moved,
// compared and destroyed with single bulk operations. See package memops for
// the range operations the array is built from.
//
// # Allocators
//
// An Allocator hands out blocks described by a Layout. This package provides:
//
//   - Heap: the garbage-collected heap, stateless
//   - AlignedHeap[N]: the heap with a fixed minimum alignment, stateless
//   - Arena: a chunked bump allocator for pointer-free types
//   - Counting: records allocation events of another allocator
//   - SyncAllocator: a mutex around another allocator
//
// Package allocators adds off-heap, pooling and logging allocators.
//
// Stateless (zero-size) allocators are always interchangeable. Stateful ones
// travel with their blocks: a cloned or move-assigned array takes the source's
// allocator. See AllocatorTraits for how to override these defaults.
//
// # Important Notes
//
//   - Slices and pointers returned by an Array are invalidated by reallocation
//   - An Array is not safe for concurrent use
//   - Allocation failure inside an Array panics with ErrOutOfMemory
//   - Off-heap allocators reject element types that hold Go pointers
//
// # Metrics and Monitoring
//
// Wrap any allocator in a Counting to observe what an array does:
//
//	c := contig.NewCounting(nil)
//	a := contig.New[int](c)
//	a.Add(1)
//	fmt.Println(c.Metrics().Allocations) // 1
package contig
