package store

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

var (
	dailyCSVHeader   = []string{"date", "steps", "mobilityDone", "mobilityMin"}
	workoutCSVHeader = []string{"date", "template", "exerciseKey", "weight", "reps", "sets"}
)

// ExportDailyCSV writes one row per daily log in ascending date order.
func (s *Store) ExportDailyCSV(ctx context.Context, w io.Writer) error {
	return writeDailyCSV(w, s.Read(ctx))
}

// ExportWorkoutCSV writes one row per logged exercise, workouts in stored
// order. Unset numbers are left blank.
func (s *Store) ExportWorkoutCSV(ctx context.Context, w io.Writer) error {
	return writeWorkoutCSV(w, s.Read(ctx))
}

func writeDailyCSV(w io.Writer, doc model.Document) error {
	dates := make([]string, 0, len(doc.DailyLogs))
	for d := range doc.DailyLogs {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	cw := csv.NewWriter(w)
	if err := cw.Write(dailyCSVHeader); err != nil {
		return err
	}
	for _, d := range dates {
		l := doc.DailyLogs[d]
		row := []string{d, strconv.Itoa(l.Steps), strconv.FormatBool(l.MobilityDone), strconv.Itoa(l.MobilityMin)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeWorkoutCSV(w io.Writer, doc model.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(workoutCSVHeader); err != nil {
		return err
	}
	for _, wl := range doc.WorkoutLogs {
		for _, ex := range wl.Exercises {
			row := []string{
				wl.Date,
				string(wl.Template),
				ex.ExerciseKey,
				formatFloat(ex.Weight),
				formatInt(ex.Reps),
				formatInt(ex.Sets),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
