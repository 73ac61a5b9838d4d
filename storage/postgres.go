package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a single key-value table
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres-backed store and ensures the
// backing table exists
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// EnsureSchema creates the draft_store table if it is missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS draft_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	_, err := s.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create draft_store table: %w", err)
	}

	return nil
}

// Get retrieves a value by key
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM draft_store WHERE key = $1`

	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts a value by key
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO draft_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`

	_, err := s.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Remove deletes a key
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM draft_store WHERE key = $1`

	_, err := s.db.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}

	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.db.Close()
}
