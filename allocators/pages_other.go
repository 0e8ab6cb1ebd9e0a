//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package allocators

import (
	"os"
	"unsafe"

	"github.com/pavanmanishd/contig"
)

// pageAlignment lets Pages serve page aligned heap blocks where anonymous
// mappings are not available.
type pageAlignment struct{}

func (pageAlignment) Bytes() uintptr { return uintptr(os.Getpagesize()) }

// Allocate implements contig.Allocator.
func (Pages) Allocate(l contig.Layout) unsafe.Pointer {
	if _, ok := checkOffHeap("pages", l); !ok && (l.Count == 0 || l.Size != 0) {
		return nil
	}
	return contig.AlignedHeap[pageAlignment]{}.Allocate(l)
}

// Free implements contig.Allocator.
func (Pages) Free(unsafe.Pointer, contig.Layout) {}
