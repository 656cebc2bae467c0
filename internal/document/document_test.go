package document

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

var fixedNow = time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestIsValid_Rejections(t *testing.T) {
	cases := map[string]string{
		"array":              `[]`,
		"null":               `null`,
		"number":             `42`,
		"string":             `"itfit"`,
		"settings primitive": `{"settings":1,"dailyLogs":{},"workoutLogs":[]}`,
		"settings array":     `{"settings":[],"dailyLogs":{},"workoutLogs":[]}`,
		"dailyLogs array":    `{"settings":{},"dailyLogs":[],"workoutLogs":[]}`,
		"workoutLogs object": `{"settings":{},"dailyLogs":{},"workoutLogs":{}}`,
		"missing workouts":   `{"settings":{},"dailyLogs":{}}`,
		"unrelated schema":   `{"stepsGoal":10000,"workoutWeeklyGoal":3}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, IsValid(parse(t, raw)))
		})
	}
}

func TestIsValid_Accepts(t *testing.T) {
	assert.True(t, IsValid(parse(t, `{"settings":{},"dailyLogs":{},"workoutLogs":[]}`)))
}

func TestIsValid_TypedValuesAreNotTrees(t *testing.T) {
	assert.False(t, IsValid(nil))
	assert.False(t, IsValid([]any{}))
	assert.False(t, IsValid(model.NewDocument(fixedNow)))
}

func TestCheck_NamesField(t *testing.T) {
	err := Check(parse(t, `{"settings":1,"dailyLogs":{},"workoutLogs":[]}`))
	require.Error(t, err)
	var ve model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "settings", ve.Field)
}

func TestDecode_InvalidJSON(t *testing.T) {
	res := Decode([]byte(`{"settings":`), fixedNow)
	assert.False(t, res.OK)
	assert.True(t, model.IsValidationError(res.Err))
}

func TestDecode_BackfillsSettingsAndMeta(t *testing.T) {
	res := Decode([]byte(`{"settings":{"stepsGoal":8000},"dailyLogs":{},"workoutLogs":[]}`), fixedNow)
	require.True(t, res.OK, res.Err)

	want := model.DefaultSettings()
	want.StepsGoal = 8000
	assert.Equal(t, want, res.Doc.Settings)
	assert.Equal(t, 1, res.Doc.Meta.Version)
	assert.Equal(t, fixedNow, res.Doc.Meta.UpdatedAt)
	assert.Zero(t, res.Dropped)
}

func TestDecode_AbsorbsShapeDrift(t *testing.T) {
	raw := `{
		"settings": {"stepsGoal": "lots", "workoutDays": ["mon", 3]},
		"dailyLogs": {
			"2024-01-04": {"steps": 12000, "mobilityDone": true, "mobilityMin": 10},
			"2024-01-05": "garbage"
		},
		"workoutLogs": [
			{"id": "A-1", "date": "2024-01-04", "template": "A"},
			7
		]
	}`
	res := Decode([]byte(raw), fixedNow)
	require.True(t, res.OK, res.Err)

	assert.Equal(t, model.DefaultSettings(), res.Doc.Settings)
	assert.Equal(t, map[string]model.DailyLog{
		"2024-01-04": {Steps: 12000, MobilityDone: true, MobilityMin: 10},
	}, res.Doc.DailyLogs)
	require.Len(t, res.Doc.WorkoutLogs, 1)
	assert.Equal(t, []model.ExerciseLog{}, res.Doc.WorkoutLogs[0].Exercises)
	assert.Equal(t, 4, res.Dropped)
}

func TestDecode_KeepsStoredMeta(t *testing.T) {
	raw := `{"settings":{},"dailyLogs":{},"workoutLogs":[],"meta":{"version":1,"updatedAt":"2023-12-31T10:00:00.000Z"}}`
	res := Decode([]byte(raw), fixedNow)
	require.True(t, res.OK)
	assert.Equal(t, time.Date(2023, time.December, 31, 10, 0, 0, 0, time.UTC), res.Doc.Meta.UpdatedAt.UTC())
}

func TestEncodePretty_RoundTrip(t *testing.T) {
	doc := model.NewDocument(fixedNow)
	doc.DailyLogs["2024-01-05"] = model.DailyLog{Steps: 500, Notes: "walk"}
	doc.WorkoutLogs = []model.WorkoutLog{{
		ID: "B-1", Date: "2024-01-05", Template: model.TemplateB, DurationMin: model.Ptr(35),
		Exercises: []model.ExerciseLog{{ExerciseKey: "row", Weight: model.Ptr(12.5), Reps: model.Ptr(10)}},
	}}

	b, err := EncodePretty(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"settings\": {")

	res := Decode(b, time.Now())
	require.True(t, res.OK)
	assert.Equal(t, doc.Settings, res.Doc.Settings)
	assert.Equal(t, doc.DailyLogs, res.Doc.DailyLogs)
	assert.Equal(t, doc.WorkoutLogs, res.Doc.WorkoutLogs)
	assert.True(t, doc.Meta.UpdatedAt.Equal(res.Doc.Meta.UpdatedAt))
}

func TestEncode_EmptyCollectionsNotNull(t *testing.T) {
	b, err := Encode(Normalize(model.Document{}, fixedNow))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"dailyLogs":{}`)
	assert.Contains(t, string(b), `"workoutLogs":[]`)
}
