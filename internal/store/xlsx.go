package store

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

const (
	dailySheet   = "Daily"
	workoutSheet = "Workouts"
)

// ExportWorkbook writes an XLSX workbook with the daily and workout CSV
// tables on two sheets. Numbers are stored as numeric cells.
func (s *Store) ExportWorkbook(ctx context.Context, w io.Writer) error {
	return writeWorkbook(w, s.Read(ctx))
}

func writeWorkbook(w io.Writer, doc model.Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), dailySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(workoutSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := setRows(f, dailySheet, dailyCSVHeader, dailyCells(doc)); err != nil {
		return err
	}
	if err := setRows(f, workoutSheet, workoutCSVHeader, workoutCells(doc)); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, header []string, rows [][]any) error {
	all := make([][]any, 0, len(rows)+1)
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	all = append(all, head)
	all = append(all, rows...)

	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func dailyCells(doc model.Document) [][]any {
	dates := make([]string, 0, len(doc.DailyLogs))
	for d := range doc.DailyLogs {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rows := make([][]any, 0, len(dates))
	for _, d := range dates {
		l := doc.DailyLogs[d]
		rows = append(rows, []any{d, l.Steps, l.MobilityDone, l.MobilityMin})
	}
	return rows
}

func workoutCells(doc model.Document) [][]any {
	var rows [][]any
	for _, wl := range doc.WorkoutLogs {
		for _, ex := range wl.Exercises {
			rows = append(rows, []any{wl.Date, string(wl.Template), ex.ExerciseKey, cellValue(ex.Weight), cellValue(ex.Reps), cellValue(ex.Sets)})
		}
	}
	return rows
}

// cellValue leaves unset numbers as empty cells.
func cellValue[T int | float64](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
