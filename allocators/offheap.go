package allocators

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/contig"
)

// checkOffHeap rejects layouts the collector would need to scan and reports
// the block size in bytes. ok is false when there is nothing to map.
func checkOffHeap(kind string, l contig.Layout) (n int, ok bool) {
	if l.Pointers {
		panic(errors.Wrapf(contig.ErrPointerLayout, "%s cannot hold %v", kind, l.Type))
	}
	if l.Count <= 0 || l.Size == 0 || uint64(l.Count) > math.MaxInt/uint64(l.Size) {
		return 0, false
	}
	return int(l.Bytes()), true
}
