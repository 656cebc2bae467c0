package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

func newStatsCmd(with runner, out io.Writer) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks, this week's score and today's workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, b backend) error {
				return runStats(ctx, b, asJSON, out)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw dashboard JSON")
	return cmd
}

func runStats(ctx context.Context, b backend, asJSON bool, out io.Writer) error {
	d, err := b.Dashboard(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	_, _ = fmt.Fprintf(out, "Today %s\n", d.Today)
	if d.TodayLog != nil {
		_, _ = fmt.Fprintf(out, "  steps %d/%d, mobility done=%t\n", d.TodayLog.Steps, d.Settings.StepsGoal, d.TodayLog.MobilityDone)
	}
	if d.TodaysWorkout != "" {
		_, _ = fmt.Fprintf(out, "  workout day: template %s\n", d.TodaysWorkout)
	} else {
		_, _ = fmt.Fprintln(out, "  rest day")
	}
	_, _ = fmt.Fprintf(out, "Streaks: mobility %d, steps %d\n", d.MobilityStreak, d.StepsStreak)
	_, _ = fmt.Fprintf(out, "Week %s to %s: workouts %d/%d, mobility %d/7, steps %d/7\n",
		d.Week.Start, d.Week.End, d.Week.Workouts, d.Week.WorkoutsGoal, d.Week.MobilityDays, d.Week.StepsDays)
	_, _ = fmt.Fprintf(out, "Next template: %s\n", d.SuggestedTemplate)
	return nil
}

func newSettingsCmd(with runner, out io.Writer) *cobra.Command {
	var (
		stepsGoal, mobilityGoal, workoutsGoal int
		workoutDays                           []int
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change goals and workout days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SettingsPatch
			flags := cmd.Flags()
			if flags.Changed("steps-goal") {
				patch.StepsGoal = &stepsGoal
			}
			if flags.Changed("mobility-goal") {
				patch.MobilityGoalMin = &mobilityGoal
			}
			if flags.Changed("workouts-goal") {
				patch.WorkoutsGoalPerWeek = &workoutsGoal
			}
			if flags.Changed("workout-days") {
				patch.WorkoutDays = append([]int{}, workoutDays...)
			}
			return with(cmd, func(ctx context.Context, b backend) error {
				return runSettings(ctx, b, patch, out)
			})
		},
	}
	cmd.Flags().IntVar(&stepsGoal, "steps-goal", 0, "Daily step goal")
	cmd.Flags().IntVar(&mobilityGoal, "mobility-goal", 0, "Daily mobility goal in minutes")
	cmd.Flags().IntVar(&workoutsGoal, "workouts-goal", 0, "Workouts per week")
	cmd.Flags().IntSliceVar(&workoutDays, "workout-days", nil, "Workout weekdays, 0=Sunday..6=Saturday")
	return cmd
}

func runSettings(ctx context.Context, b backend, patch model.SettingsPatch, out io.Writer) error {
	var (
		doc *model.Document
		err error
	)
	empty := patch.StepsGoal == nil && patch.MobilityGoalMin == nil &&
		patch.WorkoutsGoalPerWeek == nil && patch.WorkoutDays == nil
	if empty {
		doc, err = b.GetDocument(ctx)
	} else {
		doc, err = b.UpdateSettings(ctx, patch)
	}
	if err != nil {
		return err
	}
	s := doc.Settings
	_, _ = fmt.Fprintf(out, "steps goal %d, mobility goal %d min, workouts %d/week, workout days %v\n",
		s.StepsGoal, s.MobilityGoalMin, s.WorkoutsGoalPerWeek, s.WorkoutDays)
	return nil
}

func newExportCmd(with runner, out io.Writer) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup (json) or a CSV/XLSX export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, b backend) error {
				if output == "" || output == "-" {
					return runExport(ctx, b, format, out)
				}
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				if err := runExport(ctx, b, format, f); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, daily-csv, workouts-csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file; empty or - writes to stdout")
	return cmd
}

func runExport(ctx context.Context, b backend, format string, out io.Writer) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = b.Export(ctx)
	case "daily-csv":
		data, err = b.ExportDailyCSV(ctx)
	case "workouts-csv":
		data, err = b.ExportWorkoutCSV(ctx)
	case "xlsx":
		data, err = b.ExportWorkbook(ctx)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func newImportCmd(with runner, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return with(cmd, func(ctx context.Context, b backend) error {
				return runImport(ctx, b, snapshot, out)
			})
		},
	}
}

func runImport(ctx context.Context, b backend, snapshot []byte, out io.Writer) error {
	doc, err := b.Import(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}
	_, _ = fmt.Fprintf(out, "imported %d days and %d workouts\n", len(doc.DailyLogs), len(doc.WorkoutLogs))
	return nil
}

func newResetCmd(with runner, out io.Writer) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:       "reset daily|workouts|all",
		Short:     "Delete daily logs, workout logs or everything",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"daily", "workouts", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset %s without --yes", args[0])
			}
			return with(cmd, func(ctx context.Context, b backend) error {
				return runReset(ctx, b, args[0], out)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}

func runReset(ctx context.Context, b backend, what string, out io.Writer) error {
	var err error
	switch strings.ToLower(what) {
	case "daily":
		_, err = b.ResetDailyLogs(ctx)
	case "workouts":
		_, err = b.ResetWorkoutLogs(ctx)
	case "all":
		_, err = b.ResetAll(ctx)
	default:
		return fmt.Errorf("unknown reset target %q", what)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "reset %s\n", what)
	return nil
}
