// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

// New returns a JSON logger on stdout at info level.
// Call sites should use .Stack() on error events to include stacks.
func New(serviceName string) zerolog.Logger {
	return NewWithWriter(serviceName, "info", os.Stdout)
}

// NewWithWriter returns a logger writing JSON to w at the named level.
// An unknown level falls back to info.
func NewWithWriter(serviceName, level string, w io.Writer) zerolog.Logger {
	installStackMarshalers()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger on stderr for the CLI.
func NewConsole(serviceName, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return NewWithWriter(serviceName, level, out)
}

// installStackMarshalers makes zerolog render github.com/pkg/errors stack
// traces, attaching one to plain errors when .Stack() is used.
func installStackMarshalers() {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		if _, ok := err.(stackTracer); ok {
			return err
		}
		return pkgerrors.WithStack(err)
	}
}
