package probe

import (
	"context"
	"time"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// Timeout bounds any prober with an explicit deadline. The caller gets a
// negative status once the deadline passes even if the inner prober keeps
// running; an abandoned probe is not interrupted beyond its context.
type Timeout struct {
	Inner Prober
	Limit time.Duration
}

func (t *Timeout) Probe(ctx context.Context, address string) domain.Status {
	if t.Limit <= 0 {
		return t.Inner.Probe(ctx, address)
	}
	cctx, cancel := context.WithTimeout(ctx, t.Limit)
	defer cancel()

	done := make(chan domain.Status, 1)
	go func() {
		done <- t.Inner.Probe(cctx, address)
	}()

	select {
	case st := <-done:
		return st
	case <-cctx.Done():
		return domain.Down("probe timed out")
	}
}
