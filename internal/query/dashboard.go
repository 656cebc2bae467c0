package query

import (
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/datekey"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Dashboard is the home screen summary for one day.
type Dashboard struct {
	Today             string          `json:"today"`
	TodayLog          *model.DailyLog `json:"todayLog,omitempty"`
	MobilityStreak    int             `json:"mobilityStreak"`
	StepsStreak       int             `json:"stepsStreak"`
	Week              WeeklyStats     `json:"week"`
	SuggestedTemplate model.Template  `json:"suggestedTemplate"`
	// TodaysWorkout is empty on rest days.
	TodaysWorkout model.Template `json:"todaysWorkout,omitempty"`
	Settings      model.Settings `json:"settings"`
}

// BuildDashboard computes the summary for the day containing now.
func BuildDashboard(doc model.Document, now time.Time) Dashboard {
	today := datekey.Format(now)
	d := Dashboard{
		Today:             today,
		MobilityStreak:    Streak(doc.DailyLogs, now, MobilityDone),
		StepsStreak:       Streak(doc.DailyLogs, now, StepsGoalMet(doc.Settings.StepsGoal)),
		Week:              Weekly(doc, now),
		SuggestedTemplate: SuggestedTemplate(doc.WorkoutLogs),
		Settings:          doc.Settings,
	}
	if log, ok := doc.DailyLogs[today]; ok {
		d.TodayLog = &log
	}
	if tpl, ok := TodaysWorkout(doc, now); ok {
		d.TodaysWorkout = tpl
	}
	return d
}
