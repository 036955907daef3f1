package demo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGOverrideStore persists the override in the single-row demo_override
// table so simulated time survives server restarts.
type PGOverrideStore struct{ pool *pgxpool.Pool }

func NewPGOverrideStore(pool *pgxpool.Pool) *PGOverrideStore {
	return &PGOverrideStore{pool: pool}
}

func (s *PGOverrideStore) Get(ctx context.Context) (string, error) {
	var iso string
	err := s.pool.QueryRow(ctx, `SELECT override_iso FROM demo_override WHERE id = 1`).Scan(&iso)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return iso, nil
}

func (s *PGOverrideStore) Set(ctx context.Context, iso string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO demo_override (id, override_iso) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET override_iso = EXCLUDED.override_iso, updated_at = NOW()`, iso)
	return err
}

func (s *PGOverrideStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM demo_override WHERE id = 1`)
	return err
}
