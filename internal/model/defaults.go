package model

import (
	"slices"
	"time"
)

// DefaultSettings returns the goals used when nothing has been configured.
// Workout days default to Monday, Wednesday and Friday.
func DefaultSettings() Settings {
	return Settings{
		StepsGoal:           10000,
		MobilityGoalMin:     10,
		WorkoutsGoalPerWeek: 3,
		WorkoutDays:         []int{1, 3, 5},
	}
}

// NewMeta stamps a meta block for a write happening at now.
func NewMeta(now time.Time) Meta {
	return Meta{Version: SchemaVersion, UpdatedAt: now.UTC().Truncate(time.Millisecond)}
}

// NewDocument returns an empty document with default settings.
func NewDocument(now time.Time) Document {
	return Document{
		Settings:    DefaultSettings(),
		DailyLogs:   map[string]DailyLog{},
		WorkoutLogs: []WorkoutLog{},
		Meta:        NewMeta(now),
	}
}

// EmptyDailyLog is the base a first partial update for a date is merged onto.
func EmptyDailyLog() DailyLog {
	return DailyLog{Steps: 0, MobilityDone: false, MobilityMin: 0}
}

// Clone returns a deep copy so callers can mutate the result freely.
func (d Document) Clone() Document {
	out := d
	out.Settings.WorkoutDays = slices.Clone(d.Settings.WorkoutDays)
	out.DailyLogs = make(map[string]DailyLog, len(d.DailyLogs))
	for k, v := range d.DailyLogs {
		out.DailyLogs[k] = v
	}
	out.WorkoutLogs = make([]WorkoutLog, len(d.WorkoutLogs))
	for i, w := range d.WorkoutLogs {
		w.Exercises = slices.Clone(w.Exercises)
		out.WorkoutLogs[i] = w
	}
	return out
}

// IsWorkoutDay reports whether the weekday is one of the configured workout days.
func (s Settings) IsWorkoutDay(day time.Weekday) bool {
	return slices.Contains(s.WorkoutDays, int(day))
}
