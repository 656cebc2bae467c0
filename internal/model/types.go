package model

import "time"

// SchemaVersion is the only document version written by this module.
const SchemaVersion = 1

// Template names a predefined workout routine from the exercise catalog.
type Template string

const (
	TemplateA Template = "A"
	TemplateB Template = "B"
)

// Settings holds the user's goals.
// WorkoutDays uses Go's time.Weekday numbering (Sunday = 0, Monday = 1, ... Saturday = 6).
type Settings struct {
	StepsGoal           int   `json:"stepsGoal"`
	MobilityGoalMin     int   `json:"mobilityGoalMin"`
	WorkoutsGoalPerWeek int   `json:"workoutsGoalPerWeek"`
	WorkoutDays         []int `json:"workoutDays"`
}

// DailyLog is the single record kept for one calendar day.
type DailyLog struct {
	Steps        int    `json:"steps"`
	MobilityDone bool   `json:"mobilityDone"`
	MobilityMin  int    `json:"mobilityMin"`
	Notes        string `json:"notes,omitempty"`
}

// ExerciseLog is one exercise row inside a workout session. All metrics are optional.
type ExerciseLog struct {
	ExerciseKey string   `json:"exerciseKey"`
	Weight      *float64 `json:"weight,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	Sets        *int     `json:"sets,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// WorkoutLog is a completed workout session.
type WorkoutLog struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Template    Template      `json:"template"`
	DurationMin *int          `json:"durationMin,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Exercises   []ExerciseLog `json:"exercises"`
}

// Meta carries the schema version and the time of the last write.
type Meta struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Document is the root aggregate persisted under the canonical key.
// WorkoutLogs is ordered most-recent-first.
type Document struct {
	Settings    Settings            `json:"settings"`
	DailyLogs   map[string]DailyLog `json:"dailyLogs"`
	WorkoutLogs []WorkoutLog        `json:"workoutLogs"`
	Meta        Meta                `json:"meta"`
}
