package allocators

import "go.uber.org/zap"

// Pages maps every block as its own anonymous private mapping, so blocks are
// page aligned and zero filled. The zero value is ready to use and logs
// nothing; any two instances can free each other's blocks.
type Pages struct {
	logger *zap.Logger
}

// NewPages returns a Pages that reports mapping failures to the logger set
// with WithLogger.
func NewPages(opts ...Option) Pages {
	return Pages{logger: applyOptions(opts).logger}
}

// AlwaysEqual reports that blocks do not depend on the instance that mapped
// them.
func (Pages) AlwaysEqual() bool { return true }

// PropagateOnCopy reports that copied arrays keep their own Pages.
func (Pages) PropagateOnCopy() bool { return false }

// PropagateOnMove reports that move-assigned arrays keep their own Pages.
func (Pages) PropagateOnMove() bool { return false }

func (p Pages) log() *zap.Logger {
	if p.logger == nil {
		return zap.NewNop()
	}
	return p.logger
}
