package main

import (
	"bytes"
	"context"

	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/query"
	"github.com/figofit/itfit-mvp-lite/internal/store"
	"github.com/figofit/itfit-mvp-lite/pkg/client"
)

// backend is what the commands need. *client.Client implements it remotely;
// localBackend implements it over a store opened in-process.
type backend interface {
	GetDocument(ctx context.Context) (*model.Document, error)
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Document, error)
	UpdateDailyLog(ctx context.Context, date string, patch model.DailyLogPatch) (*model.Document, error)
	AppendWorkoutLog(ctx context.Context, log model.WorkoutLog) (*model.Document, error)
	ResetDailyLogs(ctx context.Context) (*model.Document, error)
	ResetWorkoutLogs(ctx context.Context) (*model.Document, error)
	ResetAll(ctx context.Context) (*model.Document, error)
	Export(ctx context.Context) ([]byte, error)
	ExportDailyCSV(ctx context.Context) ([]byte, error)
	ExportWorkoutCSV(ctx context.Context) ([]byte, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, snapshot []byte) (*model.Document, error)
	Dashboard(ctx context.Context) (*query.Dashboard, error)
	LastExercise(ctx context.Context, template model.Template, exerciseKey string) (*model.ExerciseLog, error)
}

var (
	_ backend = (*client.Client)(nil)
	_ backend = (*localBackend)(nil)
)

type localBackend struct {
	st *store.Store
}

func (b *localBackend) GetDocument(ctx context.Context) (*model.Document, error) {
	doc := b.st.Read(ctx)
	return &doc, nil
}

func (b *localBackend) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Document, error) {
	return ptr(b.st.UpdateSettings(ctx, patch))
}

func (b *localBackend) UpdateDailyLog(ctx context.Context, date string, patch model.DailyLogPatch) (*model.Document, error) {
	return ptr(b.st.UpdateDailyLog(ctx, date, patch))
}

func (b *localBackend) AppendWorkoutLog(ctx context.Context, log model.WorkoutLog) (*model.Document, error) {
	return ptr(b.st.AppendWorkoutLog(ctx, log))
}

func (b *localBackend) ResetDailyLogs(ctx context.Context) (*model.Document, error) {
	return ptr(b.st.ResetDailyLogs(ctx))
}

func (b *localBackend) ResetWorkoutLogs(ctx context.Context) (*model.Document, error) {
	return ptr(b.st.ResetWorkoutLogs(ctx))
}

func (b *localBackend) ResetAll(ctx context.Context) (*model.Document, error) {
	return ptr(b.st.ResetAll(ctx))
}

func (b *localBackend) Export(ctx context.Context) ([]byte, error) {
	return b.st.Export(ctx)
}

func (b *localBackend) ExportDailyCSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	err := b.st.ExportDailyCSV(ctx, &buf)
	return buf.Bytes(), err
}

func (b *localBackend) ExportWorkoutCSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	err := b.st.ExportWorkoutCSV(ctx, &buf)
	return buf.Bytes(), err
}

func (b *localBackend) ExportWorkbook(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	err := b.st.ExportWorkbook(ctx, &buf)
	return buf.Bytes(), err
}

func (b *localBackend) Import(ctx context.Context, snapshot []byte) (*model.Document, error) {
	return b.st.Import(ctx, snapshot)
}

func (b *localBackend) Dashboard(ctx context.Context) (*query.Dashboard, error) {
	d := query.BuildDashboard(b.st.Read(ctx), b.st.Now())
	return &d, nil
}

func (b *localBackend) LastExercise(ctx context.Context, template model.Template, exerciseKey string) (*model.ExerciseLog, error) {
	ex, ok := query.LastExercise(b.st.Read(ctx).WorkoutLogs, template, exerciseKey)
	if !ok {
		return nil, client.ErrNotFound
	}
	return &ex, nil
}

func ptr(doc model.Document, err error) (*model.Document, error) {
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
