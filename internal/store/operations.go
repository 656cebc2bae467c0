package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/figofit/itfit-mvp-lite/internal/datekey"
	"github.com/figofit/itfit-mvp-lite/internal/document"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// UpdateDailyLog merges patch onto the log for dateKey, creating it from
// model.EmptyDailyLog when the day has no entry yet.
func (s *Store) UpdateDailyLog(ctx context.Context, dateKey string, patch model.DailyLogPatch) (model.Document, error) {
	if _, err := time.Parse(datekey.Layout, dateKey); err != nil {
		return model.Document{}, model.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if err := patch.Validate(); err != nil {
		return model.Document{}, err
	}
	return s.Update(ctx, func(doc model.Document) model.Document {
		existing, ok := doc.DailyLogs[dateKey]
		if !ok {
			existing = model.EmptyDailyLog()
		}
		doc.DailyLogs[dateKey] = patch.Apply(existing)
		return doc
	})
}

// AppendWorkoutLog prepends log so the sequence stays most-recent-first.
// An empty ID becomes "<template>-<uuid>" and an empty date becomes today.
func (s *Store) AppendWorkoutLog(ctx context.Context, log model.WorkoutLog) (model.Document, error) {
	if log.Template == "" {
		return model.Document{}, model.NewValidationError("template", "template is required")
	}
	if log.Date == "" {
		log.Date = datekey.Today(s.now)
	} else if _, err := time.Parse(datekey.Layout, log.Date); err != nil {
		return model.Document{}, model.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if log.ID == "" {
		log.ID = fmt.Sprintf("%s-%s", log.Template, uuid.New().String())
	}
	if log.Exercises == nil {
		log.Exercises = []model.ExerciseLog{}
	}
	return s.Update(ctx, func(doc model.Document) model.Document {
		doc.WorkoutLogs = append([]model.WorkoutLog{log}, doc.WorkoutLogs...)
		return doc
	})
}

// UpdateSettings merges patch onto the stored settings.
func (s *Store) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Document, error) {
	if err := patch.Validate(); err != nil {
		return model.Document{}, err
	}
	return s.Update(ctx, func(doc model.Document) model.Document {
		doc.Settings = patch.Apply(doc.Settings)
		return doc
	})
}

// ResetDailyLogs clears every daily log, keeping settings and workouts.
func (s *Store) ResetDailyLogs(ctx context.Context) (model.Document, error) {
	return s.Update(ctx, func(doc model.Document) model.Document {
		doc.DailyLogs = map[string]model.DailyLog{}
		return doc
	})
}

// ResetWorkoutLogs clears every workout log, keeping settings and daily logs.
func (s *Store) ResetWorkoutLogs(ctx context.Context) (model.Document, error) {
	return s.Update(ctx, func(doc model.Document) model.Document {
		doc.WorkoutLogs = []model.WorkoutLog{}
		return doc
	})
}

// Export returns the current document as pretty-printed JSON, the backup format.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	return document.EncodePretty(s.Read(ctx))
}

// Import validates payload and, when it passes, replaces the stored document
// with its normalized form. A rejected payload yields a nil document and a
// model.ValidationError; nothing is written in that case.
func (s *Store) Import(ctx context.Context, payload []byte) (*model.Document, error) {
	res := document.Decode(payload, s.now())
	if !res.OK {
		importsRejectedTotal.Inc()
		s.log.Warn().Err(res.Err).Msg("import rejected")
		return nil, res.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	written, err := s.Write(ctx, res.Doc)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("days", len(written.DailyLogs)).
		Int("workouts", len(written.WorkoutLogs)).
		Int("dropped", res.Dropped).
		Msg("snapshot imported")
	return &written, nil
}
