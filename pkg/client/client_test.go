package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figofit/itfit-mvp-lite/internal/api"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/store"
)

var fixedNow = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	st := store.New(kv.NewMemory(), store.WithClock(func() time.Time { return fixedNow }))
	srv := httptest.NewServer(api.NewRouter(st, func() bool { return true }, zerolog.Nop()))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	_, err = New("http://localhost", WithHTTPTimeout(0))
	assert.Error(t, err)

	_, err = New("http://localhost", WithRetries(-1, 0))
	assert.Error(t, err)
}

func TestClient_DocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	ok, err := c.Healthy(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	doc, err := c.GetDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), doc.Settings)

	doc, err = c.UpdateDailyLog(ctx, "2024-01-10", DailyLogPatch{Steps: model.Ptr(11000), MobilityDone: model.Ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 11000, doc.DailyLogs["2024-01-10"].Steps)

	doc, err = c.UpdateSettings(ctx, SettingsPatch{StepsGoal: model.Ptr(9000)})
	require.NoError(t, err)
	assert.Equal(t, 9000, doc.Settings.StepsGoal)

	doc, err = c.AppendWorkoutLog(ctx, WorkoutLog{
		Template:  TemplateA,
		Exercises: []ExerciseLog{{ExerciseKey: "bench", Weight: model.Ptr(50.0), Reps: model.Ptr(10)}},
	})
	require.NoError(t, err)
	require.Len(t, doc.WorkoutLogs, 1)
	assert.Equal(t, "2024-01-10", doc.WorkoutLogs[0].Date)

	dash, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.MobilityStreak)
	assert.Equal(t, 1, dash.StepsStreak)
	assert.Equal(t, TemplateB, dash.SuggestedTemplate)

	last, err := c.LastWorkout(ctx, TemplateA)
	require.NoError(t, err)
	assert.Equal(t, doc.WorkoutLogs[0].ID, last.ID)

	ex, err := c.LastExercise(ctx, TemplateA, "bench")
	require.NoError(t, err)
	assert.Equal(t, 10, *ex.Reps)

	_, err = c.LastWorkout(ctx, TemplateB)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_ExportImport(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.UpdateDailyLog(ctx, "2024-01-09", DailyLogPatch{Steps: model.Ptr(4000)})
	require.NoError(t, err)

	snapshot, err := c.Export(ctx)
	require.NoError(t, err)

	_, err = c.ResetAll(ctx)
	require.NoError(t, err)

	doc, err := c.Import(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 4000, doc.DailyLogs["2024-01-09"].Steps)

	_, err = c.Import(ctx, []byte(`[]`))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	csv, err := c.ExportDailyCSV(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "2024-01-09,4000,false,0")

	csv, err = c.ExportWorkoutCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "date,template,exerciseKey,weight,reps,sets\n", string(csv))

	xlsx, err := c.ExportWorkbook(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(xlsx[:2]))
}

func TestClient_Resets(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.UpdateDailyLog(ctx, "today", DailyLogPatch{Steps: model.Ptr(1)})
	require.NoError(t, err)
	_, err = c.AppendWorkoutLog(ctx, WorkoutLog{Template: TemplateB})
	require.NoError(t, err)

	doc, err := c.ResetDailyLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.DailyLogs)
	assert.Len(t, doc.WorkoutLogs, 1)

	doc, err = c.ResetWorkoutLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.WorkoutLogs)
}

func TestClient_ValidationErrorCarriesField(t *testing.T) {
	c := newTestClient(t)
	_, err := c.UpdateSettings(context.Background(), SettingsPatch{WorkoutDays: []int{9}})
	require.Error(t, err)

	var ve model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "workoutDays", ve.Field)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Service Unavailable","code":503,"message":"db down"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.GetDocument(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "db down", apiErr.Message)
}
