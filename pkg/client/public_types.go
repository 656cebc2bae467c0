package client

import (
	"github.com/figofit/itfit-mvp-lite/internal/model"
	"github.com/figofit/itfit-mvp-lite/internal/query"
)

// Re-exported so callers outside this module can name request and response types.
type (
	Document      = model.Document
	Settings      = model.Settings
	SettingsPatch = model.SettingsPatch
	DailyLog      = model.DailyLog
	DailyLogPatch = model.DailyLogPatch
	WorkoutLog    = model.WorkoutLog
	ExerciseLog   = model.ExerciseLog
	Template      = model.Template
	Dashboard     = query.Dashboard
	WeeklyStats   = query.WeeklyStats
)

const (
	TemplateA = model.TemplateA
	TemplateB = model.TemplateB
)
