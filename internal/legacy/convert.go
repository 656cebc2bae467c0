// Package legacy upgrades data written by the two-key storage format
// (one key for settings, one for a flat list of day entries) into the
// unified tracker document.
package legacy

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/document"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Storage keys used by the two-key format.
const (
	SettingsKey = "itfit_settings"
	LogKey      = "itfit_log"
)

// Settings is the shape stored under SettingsKey.
type Settings struct {
	StepsGoal         *int `json:"stepsGoal"`
	WorkoutWeeklyGoal *int `json:"workoutWeeklyGoal"`
	MobilityMinutes   *int `json:"mobilityMinutes"`
}

// Entry is one element of the array stored under LogKey.
// Dates use the D.M.YYYY form, e.g. "5. 1. 2024".
type Entry struct {
	Date         *string `json:"date"`
	MobilityDone *bool   `json:"mobilityDone"`
	WorkoutDone  *bool   `json:"workoutDone"`
	WorkoutType  *string `json:"workoutType"`
	Steps        *int    `json:"steps"`
}

// Stats summarises a conversion for logging.
type Stats struct {
	SettingsIgnored bool
	Days            int
	Workouts        int
}

// Convert builds a unified document from the raw legacy values. An empty
// string means the key was absent. Unparseable settings are ignored in
// favour of defaults; an unparseable log aborts the conversion.
func Convert(settingsRaw, logRaw string, now time.Time) (model.Document, Stats, error) {
	var stats Stats
	doc := model.NewDocument(now)

	if settingsRaw != "" {
		var ls Settings
		if err := json.Unmarshal([]byte(settingsRaw), &ls); err != nil {
			stats.SettingsIgnored = true
		} else {
			doc.Settings = ls.toSettings()
		}
	}

	if logRaw != "" {
		var entries *[]*Entry
		if err := json.Unmarshal([]byte(logRaw), &entries); err != nil {
			return model.Document{}, stats, fmt.Errorf("parse legacy log: %w", err)
		}
		if entries == nil {
			return model.Document{}, stats, fmt.Errorf("parse legacy log: not an array")
		}
		for i, e := range *entries {
			if e == nil || e.Date == nil {
				return model.Document{}, stats, fmt.Errorf("parse legacy log: entry %d has no date", i)
			}
			date := NormalizeDate(*e.Date)
			mobilityDone := e.MobilityDone != nil && *e.MobilityDone

			dl := model.DailyLog{MobilityDone: mobilityDone}
			if e.Steps != nil {
				dl.Steps = *e.Steps
			}
			// The legacy format never recorded minutes actually performed,
			// so a done session is credited with the full goal.
			if mobilityDone {
				dl.MobilityMin = doc.Settings.MobilityGoalMin
			}
			doc.DailyLogs[date] = dl

			if e.WorkoutDone != nil && *e.WorkoutDone {
				tpl := model.TemplateA
				if e.WorkoutType != nil && *e.WorkoutType != "" {
					tpl = model.Template(*e.WorkoutType)
				}
				doc.WorkoutLogs = append(doc.WorkoutLogs, model.WorkoutLog{
					ID:        fmt.Sprintf("legacy-%s-%s", date, tpl),
					Date:      date,
					Template:  tpl,
					Exercises: []model.ExerciseLog{},
				})
			}
		}
	}

	stats.Days = len(doc.DailyLogs)
	stats.Workouts = len(doc.WorkoutLogs)
	return document.Normalize(doc, now), stats, nil
}

func (ls Settings) toSettings() model.Settings {
	s := model.DefaultSettings()
	if ls.StepsGoal != nil {
		s.StepsGoal = *ls.StepsGoal
	}
	if ls.WorkoutWeeklyGoal != nil {
		s.WorkoutsGoalPerWeek = *ls.WorkoutWeeklyGoal
	}
	if ls.MobilityMinutes != nil {
		s.MobilityGoalMin = *ls.MobilityMinutes
	}
	return s
}

// NormalizeDate rewrites a D.M.YYYY date into YYYY-MM-DD. Dates without a
// dot, or with fewer than three components, are returned unchanged.
func NormalizeDate(date string) string {
	if !strings.Contains(date, ".") {
		return date
	}
	parts := strings.Split(date, ".")
	if len(parts) < 3 {
		return date
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	day, month, year := parts[0], parts[1], parts[2]
	return year + "-" + padTwo(month) + "-" + padTwo(day)
}

func padTwo(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
