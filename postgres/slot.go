package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Get fetches a slot's value.
// Returns nil, nil if not found.
func (s *PGStore) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRow(ctx,
		`SELECT value FROM flow_slots WHERE key = $1`, key,
	).Scan(&v)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("flow: get slot: %w", err)
	}

	return v, nil
}

// Put upserts a slot, replacing any previous value.
func (s *PGStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO flow_slots (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("flow: put slot: %w", err)
	}
	return nil
}

// Delete removes a slot.
// No error if the slot doesn't exist.
func (s *PGStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM flow_slots WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("flow: delete slot: %w", err)
	}
	return nil
}

// isNoRows checks if the error is a "no rows" error from pgx.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

