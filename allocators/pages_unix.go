//go:build linux || darwin || freebsd || netbsd || openbsd

package allocators

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/pavanmanishd/contig"
)

// Allocate implements contig.Allocator.
func (p Pages) Allocate(l contig.Layout) unsafe.Pointer {
	n, ok := checkOffHeap("pages", l)
	if !ok {
		if l.Count > 0 && l.Size == 0 {
			return contig.Heap{}.Allocate(l)
		}
		return nil
	}
	b, err := unix.Mmap(-1, 0, pageRound(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		p.log().Warn("pages allocation failed", zap.Stringer("type", l.Type), zap.Int("bytes", n), zap.Error(err))
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// Free implements contig.Allocator.
func (p Pages) Free(ptr unsafe.Pointer, l contig.Layout) {
	n, ok := checkOffHeap("pages", l)
	if ptr == nil || !ok {
		return
	}
	// The mapping is looked up by its address and length, so a rebuilt slice
	// of the same span unmaps it.
	if err := unix.Munmap(unsafe.Slice((*byte)(ptr), pageRound(n))); err != nil {
		p.log().Error("pages free failed", zap.Stringer("type", l.Type), zap.Int("bytes", n), zap.Error(err))
	}
}

func pageRound(n int) int {
	size := unix.Getpagesize()
	return (n + size - 1) &^ (size - 1)
}
