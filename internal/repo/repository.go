package repo

import (
	"context"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// ProbeStore is the port for probe history. The core contracts stay
// stateless; history is observational and append-only.
type ProbeStore interface {
	Append(ctx context.Context, r *domain.ProbeRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ProbeRecord, error)
}
