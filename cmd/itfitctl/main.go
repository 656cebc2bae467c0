package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/figofit/itfit-mvp-lite/internal/config"
	"github.com/figofit/itfit-mvp-lite/internal/factory"
	"github.com/figofit/itfit-mvp-lite/internal/logger"
	"github.com/figofit/itfit-mvp-lite/internal/store"
	"github.com/figofit/itfit-mvp-lite/pkg/client"
)

// opener returns the backend for one command run and a function releasing it.
type opener func(ctx context.Context) (backend, func(), error)

func main() {
	var apiFlag, logLevel string
	open := func(ctx context.Context) (backend, func(), error) {
		if apiFlag != "" {
			c, err := client.New(apiFlag)
			return c, func() {}, err
		}
		return openLocal(ctx, logLevel)
	}

	rootCmd := newRootCmd(open, os.Stdout)
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "", "itfit service base URL; empty opens the local store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for local mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openLocal opens the backend configured through ITFIT_* variables.
func openLocal(ctx context.Context, logLevel string) (backend, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewConsole("itfitctl", logLevel)

	storage, closeStorage, err := factory.NewStorage(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(storage, store.WithClock(cfg.Clock()), store.WithLogger(log))
	release := func() {
		if err := closeStorage(); err != nil {
			log.Warn().Err(err).Msg("storage close failed")
		}
	}
	return &localBackend{st: st}, release, nil
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "itfitctl",
		Short:         "Log steps, mobility and workouts; inspect and back up itfit data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// with opens the backend, runs fn and releases the backend.
	with := func(cmd *cobra.Command, fn func(ctx context.Context, b backend) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		b, release, err := open(ctx)
		if err != nil {
			return err
		}
		defer release()
		return fn(ctx, b)
	}

	rootCmd.AddCommand(
		newStepsCmd(with, out),
		newMobilityCmd(with, out),
		newWorkoutCmd(with, out),
		newStatsCmd(with, out),
		newSettingsCmd(with, out),
		newExportCmd(with, out),
		newImportCmd(with, out),
		newResetCmd(with, out),
	)
	return rootCmd
}

type runner func(cmd *cobra.Command, fn func(ctx context.Context, b backend) error) error
