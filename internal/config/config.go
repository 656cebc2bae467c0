package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/figofit/itfit-mvp-lite/internal/localstate"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Storage drivers accepted by DB_DRIVER. DriverNone runs without a
// persistent medium: reads return defaults and writes are dropped.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverNone     = "none"
)

// Config holds the configuration for the itfit service and CLI.
// Environment variables are parsed from the ITFIT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	// PostgresConnectAttempts bounds startup connection retries.
	PostgresConnectAttempts int `envconfig:"POSTGRES_CONNECT_ATTEMPTS" default:"5"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Timezone decides which calendar day "today" is. IANA name or "Local".
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	HealthIntervalSeconds   int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	ShutdownTimeoutSeconds  int `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"10"`
	HealthProbeTimeoutMilli int `envconfig:"HEALTH_PROBE_TIMEOUT_MS" default:"2000"`

	location *time.Location
}

// ResolveDefaults validates the driver and derives the SQLite path and the
// time zone location.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			p, err := localstate.DBPath()
			if err != nil {
				return fmt.Errorf("resolve sqlite path: %w", err)
			}
			c.SQLitePath = p
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		if c.PostgresConnectAttempts <= 0 {
			return fmt.Errorf("POSTGRES_CONNECT_ATTEMPTS must be positive")
		}
	case DriverMemory, DriverNone:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unsupported LOG_LEVEL: %s", c.LogLevel)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("unsupported TIMEZONE: %w", err)
	}
	c.location = loc

	if c.HealthIntervalSeconds <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL_SECONDS must be positive")
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Environment variables should be prefixed with ITFIT_
// Example: ITFIT_DB_DRIVER, ITFIT_HTTP_PORT
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ITFIT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Str("timezone", cfg.Timezone).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:             EnvTesting,
		HTTPPort:                8080,
		DBDriver:                DriverMemory,
		PostgresConnectAttempts: 1,
		LogLevel:                "debug",
		Timezone:                "UTC",
		HealthIntervalSeconds:   1,
		ShutdownTimeoutSeconds:  1,
		HealthProbeTimeoutMilli: 500,
		location:                time.UTC,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Location returns the resolved time zone, time.Local before ResolveDefaults.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Clock returns a time source reporting instants in the configured zone.
func (c *Config) Clock() func() time.Time {
	loc := c.Location()
	return func() time.Time { return time.Now().In(loc) }
}

// HealthInterval is the period of the background health loop.
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

// HealthProbeTimeout bounds a single storage ping.
func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutMilli) * time.Millisecond
}

// ShutdownTimeout bounds graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
