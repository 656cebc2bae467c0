package model

import "slices"

// DailyLogPatch is a partial DailyLog. Nil fields are left unchanged when applied.
type DailyLogPatch struct {
	Steps        *int    `json:"steps,omitempty"`
	MobilityDone *bool   `json:"mobilityDone,omitempty"`
	MobilityMin  *int    `json:"mobilityMin,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Apply merges the patch onto base.
func (p DailyLogPatch) Apply(base DailyLog) DailyLog {
	if p.Steps != nil {
		base.Steps = *p.Steps
	}
	if p.MobilityDone != nil {
		base.MobilityDone = *p.MobilityDone
	}
	if p.MobilityMin != nil {
		base.MobilityMin = *p.MobilityMin
	}
	if p.Notes != nil {
		base.Notes = *p.Notes
	}
	return base
}

// SettingsPatch is a partial Settings. Nil fields are left unchanged when applied.
type SettingsPatch struct {
	StepsGoal           *int  `json:"stepsGoal,omitempty"`
	MobilityGoalMin     *int  `json:"mobilityGoalMin,omitempty"`
	WorkoutsGoalPerWeek *int  `json:"workoutsGoalPerWeek,omitempty"`
	WorkoutDays         []int `json:"workoutDays,omitempty"`
}

// Apply merges the patch onto base.
func (p SettingsPatch) Apply(base Settings) Settings {
	if p.StepsGoal != nil {
		base.StepsGoal = *p.StepsGoal
	}
	if p.MobilityGoalMin != nil {
		base.MobilityGoalMin = *p.MobilityGoalMin
	}
	if p.WorkoutsGoalPerWeek != nil {
		base.WorkoutsGoalPerWeek = *p.WorkoutsGoalPerWeek
	}
	if p.WorkoutDays != nil {
		base.WorkoutDays = slices.Clone(p.WorkoutDays)
	}
	return base
}

// Validate rejects goals that are not positive and weekdays outside 0..6.
func (p SettingsPatch) Validate() error {
	for field, v := range map[string]*int{
		"stepsGoal":           p.StepsGoal,
		"mobilityGoalMin":     p.MobilityGoalMin,
		"workoutsGoalPerWeek": p.WorkoutsGoalPerWeek,
	} {
		if v != nil && *v <= 0 {
			return NewValidationError(field, "must be a positive integer")
		}
	}
	for _, d := range p.WorkoutDays {
		if d < 0 || d > 6 {
			return NewValidationError("workoutDays", "weekday must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	return nil
}

// Validate rejects negative counters.
func (p DailyLogPatch) Validate() error {
	if p.Steps != nil && *p.Steps < 0 {
		return NewValidationError("steps", "must not be negative")
	}
	if p.MobilityMin != nil && *p.MobilityMin < 0 {
		return NewValidationError("mobilityMin", "must not be negative")
	}
	return nil
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
