// Package factory builds the storage backend selected by configuration.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/figofit/itfit-mvp-lite/internal/config"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	kvpg "github.com/figofit/itfit-mvp-lite/internal/kv/postgres"
	kvsqlite "github.com/figofit/itfit-mvp-lite/internal/kv/sqlite"
)

// NewStorage opens the backend named by cfg.DBDriver. The returned close
// function is never nil. For DriverNone the storage is nil, which the
// document store treats as "no persistent medium".
func NewStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kv.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DBDriver {
	case config.DriverSQLite:
		s, err := kvsqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("storage opened")
		return s, s.Close, nil

	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, noop, fmt.Errorf("ITFIT_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		s, err := openPostgres(ctx, cfg, log)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("storage opened")
		return s, s.Close, nil

	case config.DriverMemory:
		log.Warn().Msg("in-memory storage: data is lost on exit")
		return kv.NewMemory(), noop, nil

	case config.DriverNone:
		log.Warn().Msg("no storage configured: reads return defaults and writes are dropped")
		return nil, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

// openPostgres retries the initial connection with exponential backoff so
// the service can start alongside a database that is still booting.
func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*kvpg.Storage, error) {
	maxAttempts := cfg.PostgresConnectAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	attempts := 0
	for {
		s, err := kvpg.New(ctx, cfg.PostgresDSN)
		if err == nil {
			return s, nil
		}
		attempts++
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", attempts, err)
		}

		wait := exp.NextBackOff()
		log.Warn().Err(err).Int("attempt", attempts).Dur("retry_in", wait).Msg("postgres not ready")
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
