package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/figofit/itfit-mvp-lite/internal/kv"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Storage implements kv.Storage on a Postgres table.
type Storage struct {
	db *sql.DB
}

var _ kv.Storage = (*Storage)(nil)

// New connects to dsn and ensures the kv table exists.
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s, err := NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wires an existing connection.
func NewWithDB(ctx context.Context, db *sql.DB) (*Storage, error) {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger for the Postgres-backed storage.
func (s *Storage) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `, key, value)
	return err
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, key)
	return err
}
