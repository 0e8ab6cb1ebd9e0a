package contig

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfMemory indicates that an allocator could not provide a block.
	ErrOutOfMemory = errors.New("contig: out of memory")

	// ErrIndexOutOfRange indicates an index outside the live elements.
	ErrIndexOutOfRange = errors.New("contig: index out of range")

	// ErrPointerLayout indicates a layout holding Go pointers was handed to an
	// allocator whose memory the garbage collector does not scan.
	ErrPointerLayout = errors.New("contig: layout holds pointers")

	// ErrInvalidAlignment indicates an alignment that is not a power of two.
	ErrInvalidAlignment = errors.New("contig: alignment must be a power of two")

	// ErrReleased indicates use of an allocator after Release.
	ErrReleased = errors.New("contig: use after Release()")

	// ErrCorrupted marks an array whose bookkeeping violates its invariants.
	ErrCorrupted = errors.New("contig: corrupted array")
)

func checkIndex(idx, count int) {
	if idx < 0 || idx >= count {
		panic(errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", idx, count))
	}
}

func checkRange(first, n, count int) {
	if first < 0 || n < 0 || first > count-n {
		panic(errors.Wrapf(ErrIndexOutOfRange, "range [%d,%d), count %d", first, first+n, count))
	}
}
