package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/repo"
)

var _ repo.ProbeStore = (*Store)(nil)

// Store keeps probe history in memory, capped to a fixed number of rows.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	records []domain.ProbeRecord
	cap     int
}

func New() *Store {
	return NewWithCap(4096)
}

func NewWithCap(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{records: make([]domain.ProbeRecord, 0, 128), cap: capacity}
}

func (s *Store) Append(ctx context.Context, r *domain.ProbeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := *r
	rec.ID = s.nextID
	if rec.CheckedAt.IsZero() {
		rec.CheckedAt = time.Now().UTC()
	}
	s.records = append(s.records, rec)
	if len(s.records) > s.cap {
		s.records = s.records[len(s.records)-s.cap:]
	}
	r.ID = rec.ID
	return nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]domain.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit < 1 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]domain.ProbeRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
