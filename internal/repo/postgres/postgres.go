package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/repo"
)

var _ repo.ProbeStore = (*Store)(nil)

// Store persists probe history in postgres.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS probe_history (
//	    id          BIGSERIAL PRIMARY KEY,
//	    address     TEXT        NOT NULL,
//	    strategy    TEXT        NOT NULL,
//	    reachable   BOOLEAN     NOT NULL,
//	    ping_millis INTEGER     NOT NULL,
//	    reason      TEXT        NOT NULL DEFAULT '',
//	    checked_at  TIMESTAMPTZ NOT NULL
//	);
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Append(ctx context.Context, r *domain.ProbeRecord) error {
	if r.CheckedAt.IsZero() {
		r.CheckedAt = time.Now().UTC()
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO probe_history (address, strategy, reachable, ping_millis, reason, checked_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		r.Address, r.Strategy, r.Reachable, r.PingMillis, r.Reason, r.CheckedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert probe record: %w", err)
	}
	return nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]domain.ProbeRecord, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, address, strategy, reachable, ping_millis, reason, checked_at
		 FROM probe_history
		 ORDER BY checked_at DESC, id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query probe history: %w", err)
	}
	defer rows.Close()

	var out []domain.ProbeRecord
	for rows.Next() {
		var r domain.ProbeRecord
		if err := rows.Scan(&r.ID, &r.Address, &r.Strategy, &r.Reachable, &r.PingMillis, &r.Reason, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan probe record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
