package probe

import (
	"context"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// Unsupported is the strategy for environments with no applicable
// transport: immediate negative result, no I/O attempted.
type Unsupported struct{}

func (Unsupported) Probe(context.Context, string) domain.Status {
	return domain.Down("no probe strategy available")
}
