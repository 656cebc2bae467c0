package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figofit/itfit-mvp-lite/internal/api"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/query"
	"github.com/figofit/itfit-mvp-lite/internal/store"
	"github.com/figofit/itfit-mvp-lite/pkg/client"
)

// Wednesday.
var fixedNow = time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC)

func newLocal(t *testing.T) (*localBackend, *store.Store) {
	t.Helper()
	st := store.New(kv.NewMemory(), store.WithClock(func() time.Time { return fixedNow }))
	return &localBackend{st: st}, st
}

// execute runs the root command against b and returns its output.
func execute(t *testing.T, b backend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	open := func(ctx context.Context) (backend, func(), error) {
		return b, func() {}, nil
	}
	cmd := newRootCmd(open, &out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestSteps_DefaultsToToday(t *testing.T) {
	b, st := newLocal(t)

	out, err := execute(t, b, "steps", "9500")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-10: 9500 steps (goal 10000)")
	assert.Equal(t, 9500, st.Read(context.Background()).DailyLogs["2024-01-10"].Steps)
}

func TestSteps_Errors(t *testing.T) {
	b, _ := newLocal(t)

	_, err := execute(t, b, "steps", "many")
	assert.Error(t, err)

	_, err = execute(t, b, "steps", "--date", "2024-01-09", "--", "-5")
	assert.True(t, model.IsValidationError(err))

	_, err = execute(t, b, "steps", "100", "--date", "yesterday")
	assert.True(t, model.IsValidationError(err))
}

func TestMobility(t *testing.T) {
	b, st := newLocal(t)
	ctx := context.Background()

	_, err := execute(t, b, "mobility")
	require.NoError(t, err)
	log := st.Read(ctx).DailyLogs["2024-01-10"]
	assert.True(t, log.MobilityDone)
	assert.Equal(t, model.DefaultSettings().MobilityGoalMin, log.MobilityMin)

	_, err = execute(t, b, "mobility", "-m", "25", "-d", "2024-01-09")
	require.NoError(t, err)
	assert.Equal(t, 25, st.Read(ctx).DailyLogs["2024-01-09"].MobilityMin)

	out, err := execute(t, b, "mobility", "--undo")
	require.NoError(t, err)
	assert.Contains(t, out, "mobility done=false (0 min)")
}

func TestWorkout_SuggestedTemplateAndPrefill(t *testing.T) {
	b, st := newLocal(t)
	ctx := context.Background()

	_, err := execute(t, b, "workout", "-d", "2024-01-08", "-e", "squat,60,5,3", "-e", "row,40")
	require.NoError(t, err)
	_, err = execute(t, b, "workout", "-e", "press,30,8,3")
	require.NoError(t, err)

	doc := st.Read(ctx)
	require.Len(t, doc.WorkoutLogs, 2)
	assert.Equal(t, model.TemplateA, doc.WorkoutLogs[1].Template)
	assert.Equal(t, model.TemplateB, doc.WorkoutLogs[0].Template)
	assert.Equal(t, "2024-01-10", doc.WorkoutLogs[0].Date)

	// Reps and sets come from the last A session.
	_, err = execute(t, b, "workout", "A", "-e", "squat,62.5", "--duration", "45")
	require.NoError(t, err)
	latest := st.Read(ctx).WorkoutLogs[0]
	require.Len(t, latest.Exercises, 1)
	squat := latest.Exercises[0]
	assert.Equal(t, 62.5, *squat.Weight)
	assert.Equal(t, 5, *squat.Reps)
	assert.Equal(t, 3, *squat.Sets)
	assert.Equal(t, 45, *latest.DurationMin)
}

func TestParseExercise(t *testing.T) {
	ex, err := parseExercise("squat")
	require.NoError(t, err)
	assert.Equal(t, "squat", ex.ExerciseKey)
	assert.Nil(t, ex.Weight)

	ex, err = parseExercise("bench, 55.5 ,,4")
	require.NoError(t, err)
	assert.Equal(t, 55.5, *ex.Weight)
	assert.Nil(t, ex.Reps)
	assert.Equal(t, 4, *ex.Sets)

	for _, bad := range []string{"", ",10", "squat,heavy", "squat,1,2,3,4", "squat,1,x"} {
		_, err := parseExercise(bad)
		assert.Error(t, err, bad)
	}
}

func TestStats(t *testing.T) {
	b, _ := newLocal(t)
	_, err := execute(t, b, "steps", "12000")
	require.NoError(t, err)

	out, err := execute(t, b, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Today 2024-01-10")
	assert.Contains(t, out, "workout day: template A")
	assert.Contains(t, out, "Streaks: mobility 0, steps 1")
	assert.Contains(t, out, "Week 2024-01-08 to 2024-01-14")

	out, err = execute(t, b, "stats", "--json")
	require.NoError(t, err)
	var d query.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1, d.StepsStreak)
}

func TestSettings(t *testing.T) {
	b, st := newLocal(t)

	out, err := execute(t, b, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "steps goal 10000")

	_, err = execute(t, b, "settings", "--steps-goal", "12000", "--workout-days", "2,4")
	require.NoError(t, err)
	s := st.Read(context.Background()).Settings
	assert.Equal(t, 12000, s.StepsGoal)
	assert.Equal(t, []int{2, 4}, s.WorkoutDays)
	assert.Equal(t, model.DefaultSettings().MobilityGoalMin, s.MobilityGoalMin)

	_, err = execute(t, b, "settings", "--workouts-goal", "0")
	assert.True(t, model.IsValidationError(err))
}

func TestExportImport(t *testing.T) {
	b, st := newLocal(t)
	ctx := context.Background()
	_, err := execute(t, b, "steps", "7000", "-d", "2024-01-09")
	require.NoError(t, err)
	_, err = execute(t, b, "workout", "-e", "squat,60,5,3")
	require.NoError(t, err)

	backup := filepath.Join(t.TempDir(), "backup.json")
	_, err = execute(t, b, "export", "-o", backup)
	require.NoError(t, err)

	out, err := execute(t, b, "export", "--format", "daily-csv")
	require.NoError(t, err)
	assert.Equal(t, "date,steps,mobilityDone,mobilityMin\n2024-01-09,7000,false,0\n", out)

	out, err = execute(t, b, "export", "--format", "workouts-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-10,A,squat,60,5,3")

	out, err = execute(t, b, "export", "--format", "xlsx")
	require.NoError(t, err)
	assert.True(t, len(out) > 2 && out[:2] == "PK")

	_, err = execute(t, b, "export", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, b, "reset", "all", "--yes")
	require.NoError(t, err)
	assert.Empty(t, st.Read(ctx).DailyLogs)

	out, err = execute(t, b, "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 days and 1 workouts")
	assert.Equal(t, 7000, st.Read(ctx).DailyLogs["2024-01-09"].Steps)
}

func TestImport_RejectsInvalidFile(t *testing.T) {
	b, st := newLocal(t)
	ctx := context.Background()
	_, err := execute(t, b, "steps", "100")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"settings":{}}`), 0o600))

	_, err = execute(t, b, "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import rejected")
	assert.Equal(t, 100, st.Read(ctx).DailyLogs["2024-01-10"].Steps)

	_, err = execute(t, b, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	b, st := newLocal(t)
	ctx := context.Background()
	_, err := execute(t, b, "steps", "100")
	require.NoError(t, err)
	_, err = execute(t, b, "workout")
	require.NoError(t, err)

	_, err = execute(t, b, "reset", "daily")
	require.Error(t, err, "reset needs --yes")

	_, err = execute(t, b, "reset", "everything", "--yes")
	require.Error(t, err)

	_, err = execute(t, b, "reset", "workouts", "-y")
	require.NoError(t, err)
	doc := st.Read(ctx)
	assert.Empty(t, doc.WorkoutLogs)
	assert.Len(t, doc.DailyLogs, 1)

	_, err = execute(t, b, "reset", "daily", "-y")
	require.NoError(t, err)
	assert.Empty(t, st.Read(ctx).DailyLogs)
}

func TestRemoteBackend(t *testing.T) {
	st := store.New(kv.NewMemory(), store.WithClock(func() time.Time { return fixedNow }))
	srv := httptest.NewServer(api.NewRouter(st, func() bool { return true }, zerolog.Nop()))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	out, err := execute(t, c, "steps", "4321")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-10: 4321 steps")

	_, err = execute(t, c, "workout", "B", "-e", "deadlift,100,5,1")
	require.NoError(t, err)
	_, err = execute(t, c, "workout", "B", "-e", "deadlift,105")
	require.NoError(t, err)

	latest := st.Read(context.Background()).WorkoutLogs[0]
	require.Len(t, latest.Exercises, 1)
	assert.Equal(t, 5, *latest.Exercises[0].Reps)

	out, err = execute(t, c, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Next template: A")
}
