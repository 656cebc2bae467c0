// Package itfitservice runs the itfit HTTP service.
package itfitservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/figofit/itfit-mvp-lite/internal/api"
	"github.com/figofit/itfit-mvp-lite/internal/config"
	"github.com/figofit/itfit-mvp-lite/internal/factory"
	"github.com/figofit/itfit-mvp-lite/internal/health"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/logger"
	"github.com/figofit/itfit-mvp-lite/internal/store"
)

// Run starts the itfit HTTP server and blocks until shutdown or error.
func Run() error {
	cfg, err := config.New()
	if err != nil {
		l := logger.New("itfit-service")
		l.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log := logger.NewWithWriter("itfit-service", cfg.LogLevel, os.Stdout)

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("timezone", cfg.Location().String()).
		Msg("itfit service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	storage, closeStorage, err := factory.NewStorage(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Storage backend unavailable")
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Warn().Err(err).Msg("storage close failed")
		}
	}()

	st := store.New(storage, store.WithClock(cfg.Clock()), store.WithLogger(log))

	svcHealth := startHealthCheckers(ctx, cfg, log, storage)
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, api.NewRouter(st, svcHealth.IsHealthy, log))
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers starts the storage checker and the service-level aggregate.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, storage kv.Storage) *health.Aggregate {
	interval := cfg.HealthInterval()

	storageChecker := health.NewStorageChecker(storage, log, cfg.HealthProbeTimeout())
	// First probe inline so the aggregate's first evaluation sees a real result.
	storageChecker.Probe(ctx)
	go storageChecker.Start(ctx, interval)

	svcHealth := health.NewAggregate(log, storageChecker)
	go svcHealth.Run(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// startupHealthTimeout is twice the health interval, at least 10 seconds.
func startupHealthTimeout(interval time.Duration) time.Duration {
	timeout := 2 * interval
	if timeout < 10*time.Second {
		return 10 * time.Second
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.Aggregate) error {
	timeout := startupHealthTimeout(cfg.HealthInterval())
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: %v not healthy within %s", svcHealth.Down(), timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
