// Package postgres keeps flow slots in a single PostgreSQL table, one row
// per key, through a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/flow"
)

// PGStore implements flow.Store on the flow_slots table.
type PGStore struct {
	db *pgxpool.Pool
}

var _ flow.Store = (*PGStore)(nil)

// New wraps an existing pool. The caller owns the pool and must have
// created the schema.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Open connects to url, checks the connection and creates the schema.
// The returned pool is closed by the caller.
func Open(ctx context.Context, url string) (*PGStore, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	s := New(pool)
	if err := s.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: create schema: %w", err)
	}
	return s, pool, nil
}
