// Package query computes read-only aggregates over a loaded document:
// streaks, weekly statistics and "last performed" lookups. Nothing here
// touches storage.
package query

import (
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/datekey"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// DayPredicate decides whether a logged day counts towards a streak or a
// weekly total. ok is false when the day has no log; Streak and Weekly never
// count such days whatever the predicate returns.
type DayPredicate func(log model.DailyLog, ok bool) bool

// MobilityDone holds on days with a completed mobility session.
func MobilityDone(log model.DailyLog, ok bool) bool {
	return ok && log.MobilityDone
}

// StepsGoalMet holds on days with a positive step count of at least goal.
func StepsGoalMet(goal int) DayPredicate {
	return func(log model.DailyLog, ok bool) bool {
		return ok && log.Steps > 0 && log.Steps >= goal
	}
}

// LastWorkoutLog returns the most recent workout that used template.
func LastWorkoutLog(logs []model.WorkoutLog, template model.Template) (model.WorkoutLog, bool) {
	for _, l := range logs {
		if l.Template == template {
			return l, true
		}
	}
	return model.WorkoutLog{}, false
}

// SuggestedTemplate alternates after the most recent workout: A is followed
// by B, anything else by A. With no workouts it is A.
func SuggestedTemplate(logs []model.WorkoutLog) model.Template {
	if len(logs) == 0 {
		return model.TemplateA
	}
	if logs[0].Template == model.TemplateA {
		return model.TemplateB
	}
	return model.TemplateA
}

// LastExercise finds exerciseKey in the most recent workout of template, the
// values used to prefill the next session.
func LastExercise(logs []model.WorkoutLog, template model.Template, exerciseKey string) (model.ExerciseLog, bool) {
	last, ok := LastWorkoutLog(logs, template)
	if !ok {
		return model.ExerciseLog{}, false
	}
	for _, ex := range last.Exercises {
		if ex.ExerciseKey == exerciseKey {
			return ex, true
		}
	}
	return model.ExerciseLog{}, false
}

// Streak counts consecutive days, starting with today and walking backwards,
// on which pred holds. Today counts even though it may be incomplete. The
// first day without a log ends the walk.
func Streak(logs map[string]model.DailyLog, now time.Time, pred DayPredicate) int {
	streak := 0
	for day := now; ; day = datekey.AddDays(day, -1) {
		log, ok := logs[datekey.Format(day)]
		if !ok || !pred(log, ok) {
			return streak
		}
		streak++
	}
}

// WeeklyStats aggregates the Monday-start week containing a given day.
type WeeklyStats struct {
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Days         []string `json:"days"`
	MobilityDays int      `json:"mobilityDays"`
	StepsDays    int      `json:"stepsDays"`
	Workouts     int      `json:"workouts"`
	WorkoutsGoal int      `json:"workoutsGoal"`
}

// Weekly computes the stats for the week containing now.
func Weekly(doc model.Document, now time.Time) WeeklyStats {
	start := datekey.WeekStart(now)
	days := make([]string, 7)
	inWeek := make(map[string]bool, 7)
	for i := range days {
		days[i] = datekey.Format(datekey.AddDays(start, i))
		inWeek[days[i]] = true
	}

	stats := WeeklyStats{
		Start:        days[0],
		End:          days[6],
		Days:         days,
		WorkoutsGoal: doc.Settings.WorkoutsGoalPerWeek,
	}
	stepsMet := StepsGoalMet(doc.Settings.StepsGoal)
	for _, d := range days {
		log, ok := doc.DailyLogs[d]
		if !ok {
			continue
		}
		if MobilityDone(log, ok) {
			stats.MobilityDays++
		}
		if stepsMet(log, ok) {
			stats.StepsDays++
		}
	}
	for _, w := range doc.WorkoutLogs {
		if inWeek[w.Date] {
			stats.Workouts++
		}
	}
	return stats
}

// TodaysWorkout returns the suggested template when today is a configured
// workout day.
func TodaysWorkout(doc model.Document, now time.Time) (model.Template, bool) {
	if !doc.Settings.IsWorkoutDay(now.Weekday()) {
		return "", false
	}
	return SuggestedTemplate(doc.WorkoutLogs), true
}
