// Package document validates, decodes and normalizes the persisted tracker document.
//
// Decoding is two-phase: raw JSON is first parsed into an untyped tree, the
// tree is structurally checked, and only then coerced into model.Document.
package document

import "github.com/figofit/itfit-mvp-lite/internal/model"

// JSON field names of the root object.
const (
	FieldSettings    = "settings"
	FieldDailyLogs   = "dailyLogs"
	FieldWorkoutLogs = "workoutLogs"
	FieldMeta        = "meta"
)

// Check is a coarse structural gate over an untyped JSON tree (as produced by
// json.Unmarshal into an any). It requires an object whose settings and
// dailyLogs are objects and whose workoutLogs is an array. Nested entries are
// not inspected here.
func Check(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return model.NewValidationError("document", "must be a JSON object")
	}
	if _, ok := obj[FieldSettings].(map[string]any); !ok {
		return model.NewValidationError(FieldSettings, "must be an object")
	}
	if _, ok := obj[FieldDailyLogs].(map[string]any); !ok {
		return model.NewValidationError(FieldDailyLogs, "must be an object")
	}
	if _, ok := obj[FieldWorkoutLogs].([]any); !ok {
		return model.NewValidationError(FieldWorkoutLogs, "must be an array")
	}
	return nil
}

// IsValid reports whether v passes Check.
func IsValid(v any) bool {
	return Check(v) == nil
}
