package allocators

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/pavanmanishd/contig"
)

// Logging reports every allocation event of the allocator behind it: Debug for
// successful allocations and frees, Warn for failed allocations.
type Logging struct {
	next   contig.Allocator
	logger *zap.Logger
}

// NewLogging wraps next. Without WithLogger the events are discarded.
func NewLogging(next contig.Allocator, opts ...Option) *Logging {
	o := applyOptions(opts)
	return &Logging{next: next, logger: o.logger}
}

// Allocate implements contig.Allocator.
func (g *Logging) Allocate(l contig.Layout) unsafe.Pointer {
	p := g.next.Allocate(l)
	if p == nil && l.Count > 0 {
		g.logger.Warn("allocation failed", layoutFields(l)...)
		return nil
	}
	g.logger.Debug("allocate", append(layoutFields(l), zap.Uintptr("addr", uintptr(p)))...)
	return p
}

// Free implements contig.Allocator.
func (g *Logging) Free(p unsafe.Pointer, l contig.Layout) {
	g.logger.Debug("free", append(layoutFields(l), zap.Uintptr("addr", uintptr(p)))...)
	g.next.Free(p, l)
}

func layoutFields(l contig.Layout) []zap.Field {
	return []zap.Field{
		zap.Stringer("type", l.Type),
		zap.Int("count", l.Count),
		zap.Uintptr("bytes", l.Bytes()),
	}
}
