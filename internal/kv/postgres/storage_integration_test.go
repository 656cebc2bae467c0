package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/kv/kvtest"
)

// postgresDSN returns ITFIT_POSTGRES_DSN when set, otherwise starts a throwaway
// Postgres container. The test is skipped when neither is available.
func postgresDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("ITFIT_POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	if testing.Short() {
		t.Skip("short mode; skipping postgres container test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "itfit",
			"POSTGRES_PASSWORD": "itfit",
			"POSTGRES_DB":       "itfit",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://itfit:itfit@%s:%s/itfit?sslmode=disable", host, port.Port())
}

func TestPostgresStorage_Compliance(t *testing.T) {
	dsn := postgresDSN(t)
	kvtest.Run(t, func(t *testing.T) kv.Storage {
		s, err := New(context.Background(), dsn)
		if err != nil {
			t.Fatalf("postgres open: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestOpen_EmptyDSN(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}
