package legacy

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/figofit/itfit-mvp-lite/internal/document"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Migrator performs the one-shot upgrade into the canonical key.
type Migrator struct {
	storage      kv.Storage
	canonicalKey string
	now          func() time.Time
	log          zerolog.Logger
}

// NewMigrator wires a migrator writing into canonicalKey.
func NewMigrator(storage kv.Storage, canonicalKey string, now func() time.Time, log zerolog.Logger) *Migrator {
	if now == nil {
		now = time.Now
	}
	return &Migrator{storage: storage, canonicalKey: canonicalKey, now: now, log: log}
}

// Run migrates legacy data when the canonical key is absent and at least one
// legacy key holds a value. On success the canonical document is written, both
// legacy keys are removed and the document is returned with ok=true. Every
// failure is absorbed and reported as ok=false with storage left unchanged.
func (m *Migrator) Run(ctx context.Context) (model.Document, bool) {
	if m.storage == nil {
		return model.Document{}, false
	}

	if raw, present, err := m.storage.Get(ctx, m.canonicalKey); err != nil || (present && raw != "") {
		if err != nil {
			m.log.Warn().Err(err).Msg("legacy migration skipped: canonical key unreadable")
		}
		return model.Document{}, false
	}

	settingsRaw, ok := m.read(ctx, SettingsKey)
	if !ok {
		return model.Document{}, false
	}
	logRaw, ok := m.read(ctx, LogKey)
	if !ok {
		return model.Document{}, false
	}
	if settingsRaw == "" && logRaw == "" {
		return model.Document{}, false
	}

	doc, stats, err := Convert(settingsRaw, logRaw, m.now())
	if err != nil {
		m.log.Warn().Err(err).Msg("legacy migration aborted")
		return model.Document{}, false
	}
	if stats.SettingsIgnored {
		m.log.Warn().Str("key", SettingsKey).Msg("legacy settings unparseable; using defaults")
	}

	payload, err := document.Encode(doc)
	if err != nil {
		m.log.Error().Stack().Err(err).Msg("legacy migration aborted")
		return model.Document{}, false
	}
	if err := m.storage.Set(ctx, m.canonicalKey, string(payload)); err != nil {
		m.log.Error().Stack().Err(err).Msg("legacy migration aborted: canonical write failed")
		return model.Document{}, false
	}

	// The canonical key now wins over any leftover legacy key, so a failed
	// removal cannot cause a second migration.
	for _, key := range []string{SettingsKey, LogKey} {
		if err := m.storage.Remove(ctx, key); err != nil {
			m.log.Warn().Err(err).Str("key", key).Msg("legacy key not removed")
		}
	}

	m.log.Info().
		Int("days", stats.Days).
		Int("workouts", stats.Workouts).
		Msg("legacy data migrated")
	return doc, true
}

func (m *Migrator) read(ctx context.Context, key string) (string, bool) {
	v, _, err := m.storage.Get(ctx, key)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("legacy migration skipped: key unreadable")
		return "", false
	}
	return v, true
}
