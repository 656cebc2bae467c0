package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/pkg/client"
)

func newStepsCmd(with runner, out io.Writer) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "steps COUNT",
		Short: "Record the step count for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("steps must be an integer: %w", err)
			}
			return with(cmd, func(ctx context.Context, b backend) error {
				return runSteps(ctx, b, date, steps, out)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "Day as YYYY-MM-DD")
	return cmd
}

func runSteps(ctx context.Context, b backend, date string, steps int, out io.Writer) error {
	date, err := resolveDate(ctx, b, date)
	if err != nil {
		return err
	}
	doc, err := b.UpdateDailyLog(ctx, date, model.DailyLogPatch{Steps: &steps})
	if err != nil {
		return err
	}
	log := doc.DailyLogs[date]
	_, _ = fmt.Fprintf(out, "%s: %d steps (goal %d)\n", date, log.Steps, doc.Settings.StepsGoal)
	return nil
}

func newMobilityCmd(with runner, out io.Writer) *cobra.Command {
	var (
		date    string
		minutes int
		undo    bool
	)
	cmd := &cobra.Command{
		Use:   "mobility",
		Short: "Mark the mobility session done (minutes default to the goal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return with(cmd, func(ctx context.Context, b backend) error {
				return runMobility(ctx, b, date, minutes, undo, out)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "Day as YYYY-MM-DD")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes performed; 0 uses the mobility goal")
	cmd.Flags().BoolVar(&undo, "undo", false, "Clear the mobility flag instead")
	return cmd
}

func runMobility(ctx context.Context, b backend, date string, minutes int, undo bool, out io.Writer) error {
	date, err := resolveDate(ctx, b, date)
	if err != nil {
		return err
	}

	done := !undo
	patch := model.DailyLogPatch{MobilityDone: &done}
	switch {
	case undo:
		patch.MobilityMin = model.Ptr(0)
	case minutes > 0:
		patch.MobilityMin = &minutes
	default:
		doc, err := b.GetDocument(ctx)
		if err != nil {
			return err
		}
		patch.MobilityMin = model.Ptr(doc.Settings.MobilityGoalMin)
	}

	doc, err := b.UpdateDailyLog(ctx, date, patch)
	if err != nil {
		return err
	}
	log := doc.DailyLogs[date]
	_, _ = fmt.Fprintf(out, "%s: mobility done=%t (%d min)\n", date, log.MobilityDone, log.MobilityMin)
	return nil
}

func newWorkoutCmd(with runner, out io.Writer) *cobra.Command {
	var (
		date      string
		duration  int
		notes     string
		exercises []string
	)
	cmd := &cobra.Command{
		Use:   "workout [TEMPLATE]",
		Short: "Record a workout; the template defaults to the suggested one",
		Long: "Record a workout. Exercises are given as KEY[,WEIGHT[,REPS[,SETS]]]; " +
			"omitted numbers are taken from the last session of the same template.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tpl model.Template
			if len(args) == 1 {
				tpl = model.Template(args[0])
			}
			return with(cmd, func(ctx context.Context, b backend) error {
				return runWorkout(ctx, b, tpl, date, duration, notes, exercises, out)
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day as YYYY-MM-DD; empty is today")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-text note")
	cmd.Flags().StringArrayVarP(&exercises, "exercise", "e", nil, "Exercise as KEY[,WEIGHT[,REPS[,SETS]]] (repeatable)")
	return cmd
}

func runWorkout(ctx context.Context, b backend, tpl model.Template, date string, duration int, notes string, exerciseArgs []string, out io.Writer) error {
	if tpl == "" {
		d, err := b.Dashboard(ctx)
		if err != nil {
			return err
		}
		tpl = d.SuggestedTemplate
	}

	wl := model.WorkoutLog{Date: date, Template: tpl, Notes: notes, Exercises: []model.ExerciseLog{}}
	if duration > 0 {
		wl.DurationMin = &duration
	}
	for _, raw := range exerciseArgs {
		ex, err := parseExercise(raw)
		if err != nil {
			return err
		}
		if err := prefillExercise(ctx, b, tpl, &ex); err != nil {
			return err
		}
		wl.Exercises = append(wl.Exercises, ex)
	}

	doc, err := b.AppendWorkoutLog(ctx, wl)
	if err != nil {
		return err
	}
	saved := doc.WorkoutLogs[0]
	_, _ = fmt.Fprintf(out, "workout %s saved for %s (%d exercises, id %s)\n", saved.Template, saved.Date, len(saved.Exercises), saved.ID)
	return nil
}

// parseExercise reads KEY[,WEIGHT[,REPS[,SETS]]]; empty numbers stay unset.
func parseExercise(raw string) (model.ExerciseLog, error) {
	parts := strings.Split(raw, ",")
	ex := model.ExerciseLog{ExerciseKey: strings.TrimSpace(parts[0])}
	if ex.ExerciseKey == "" {
		return ex, fmt.Errorf("exercise %q: missing key", raw)
	}
	if len(parts) > 4 {
		return ex, fmt.Errorf("exercise %q: too many fields", raw)
	}
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return ex, fmt.Errorf("exercise %q: weight: %w", raw, err)
		}
		ex.Weight = &w
	}
	for i, dst := range []**int{&ex.Reps, &ex.Sets} {
		idx := i + 2
		if len(parts) <= idx || strings.TrimSpace(parts[idx]) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
		if err != nil {
			return ex, fmt.Errorf("exercise %q: %w", raw, err)
		}
		*dst = &n
	}
	return ex, nil
}

// prefillExercise copies unset numbers from the last session of tpl.
func prefillExercise(ctx context.Context, b backend, tpl model.Template, ex *model.ExerciseLog) error {
	if ex.Weight != nil && ex.Reps != nil && ex.Sets != nil {
		return nil
	}
	last, err := b.LastExercise(ctx, tpl, ex.ExerciseKey)
	if errors.Is(err, client.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ex.Weight == nil {
		ex.Weight = last.Weight
	}
	if ex.Reps == nil {
		ex.Reps = last.Reps
	}
	if ex.Sets == nil {
		ex.Sets = last.Sets
	}
	return nil
}

// resolveDate turns "today" into the backend's current date key.
func resolveDate(ctx context.Context, b backend, date string) (string, error) {
	if date != "" && date != "today" {
		return date, nil
	}
	d, err := b.Dashboard(ctx)
	if err != nil {
		return "", err
	}
	return d.Today, nil
}
