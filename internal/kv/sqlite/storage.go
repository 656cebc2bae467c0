package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/kv"
)

// Storage implements kv.Storage on a single SQLite table.
type Storage struct {
	db *sql.DB
}

var _ kv.Storage = (*Storage)(nil)

// New opens the database file at path.
func New(path string) (*Storage, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &Storage{db: db}, nil
}

// NewWithDB allows wiring with an existing connection (tests use :memory:).
func NewWithDB(db *sql.DB) (*Storage, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// DB exposes the underlying connection.
func (s *Storage) DB() *sql.DB { return s.db }

// Close releases the connection.
func (s *Storage) Close() error { return s.db.Close() }

// HealthPing implements health.HealthPinger.
func (s *Storage) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?,?,?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	return err
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}
