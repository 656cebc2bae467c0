package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Result is the outcome of decoding a stored or imported document.
// When OK is false, Err says why and Doc must not be used.
type Result struct {
	Doc model.Document
	OK  bool
	Err error
	// Dropped counts settings fields and log entries that could not be
	// coerced and were replaced by defaults or skipped.
	Dropped int
}

// Decode parses raw JSON and coerces it into a normalized document.
func Decode(raw []byte, now time.Time) Result {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return Result{Err: model.NewValidationError("document", fmt.Sprintf("invalid JSON: %v", err))}
	}
	return FromTree(tree, now)
}

// FromTree checks an already parsed tree and coerces it into a normalized document.
func FromTree(tree any, now time.Time) Result {
	if err := Check(tree); err != nil {
		return Result{Err: err}
	}
	obj := tree.(map[string]any)

	var doc model.Document
	dropped := 0

	var n int
	doc.Settings, n = coerceSettings(obj[FieldSettings].(map[string]any))
	dropped += n

	rawLogs := obj[FieldDailyLogs].(map[string]any)
	doc.DailyLogs = make(map[string]model.DailyLog, len(rawLogs))
	for key, v := range rawLogs {
		var dl model.DailyLog
		if err := coerce(v, &dl); err != nil {
			dropped++
			continue
		}
		doc.DailyLogs[key] = dl
	}

	rawWorkouts := obj[FieldWorkoutLogs].([]any)
	doc.WorkoutLogs = make([]model.WorkoutLog, 0, len(rawWorkouts))
	for _, v := range rawWorkouts {
		var wl model.WorkoutLog
		if _, isObj := v.(map[string]any); !isObj {
			dropped++
			continue
		}
		if err := coerce(v, &wl); err != nil {
			dropped++
			continue
		}
		doc.WorkoutLogs = append(doc.WorkoutLogs, wl)
	}

	if m, ok := obj[FieldMeta]; ok && m != nil {
		var meta model.Meta
		if err := coerce(m, &meta); err == nil {
			doc.Meta = meta
		}
	}

	return Result{Doc: Normalize(doc, now), OK: true, Dropped: dropped}
}

// Normalize back-fills missing collections, settings and meta so the
// document always serializes to the full canonical shape.
func Normalize(doc model.Document, now time.Time) model.Document {
	defaults := model.DefaultSettings()
	if doc.Settings.WorkoutDays == nil {
		doc.Settings.WorkoutDays = defaults.WorkoutDays
	}
	if doc.DailyLogs == nil {
		doc.DailyLogs = map[string]model.DailyLog{}
	}
	if doc.WorkoutLogs == nil {
		doc.WorkoutLogs = []model.WorkoutLog{}
	}
	for i := range doc.WorkoutLogs {
		if doc.WorkoutLogs[i].Exercises == nil {
			doc.WorkoutLogs[i].Exercises = []model.ExerciseLog{}
		}
	}
	if doc.Meta.Version == 0 || doc.Meta.UpdatedAt.IsZero() {
		doc.Meta = model.NewMeta(now)
	}
	return doc
}

// coerceSettings merges the stored settings object onto the defaults one
// field at a time, so a missing or mistyped field falls back to its default.
func coerceSettings(obj map[string]any) (model.Settings, int) {
	s := model.DefaultSettings()
	dropped := setField(obj, "stepsGoal", &s.StepsGoal) +
		setField(obj, "mobilityGoalMin", &s.MobilityGoalMin) +
		setField(obj, "workoutsGoalPerWeek", &s.WorkoutsGoalPerWeek) +
		setField(obj, "workoutDays", &s.WorkoutDays)
	return s, dropped
}

// setField overwrites dst only when obj[name] is present and decodes cleanly.
// It returns 1 when a present value had to be discarded.
func setField[T any](obj map[string]any, name string, dst *T) int {
	v, ok := obj[name]
	if !ok || v == nil {
		return 0
	}
	var tmp T
	if err := coerce(v, &tmp); err != nil {
		return 1
	}
	*dst = tmp
	return 0
}

// coerce re-encodes an untyped subtree into a typed target.
func coerce(v any, target any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
