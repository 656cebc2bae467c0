// Package store gives read, write and update access to the single tracker
// document kept under the canonical key of a kv.Storage.
//
// A nil storage is a supported mode: reads return defaults and writes are
// silent no-ops. Stored content that cannot be parsed or fails validation is
// treated as absent and left in place.
//
// Reads and updates are serialized inside one process only, so a migration
// triggered by a read cannot interleave with an update. Two processes sharing a
// backend can still overwrite each other's read-time snapshot; the last write
// wins for the whole document.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/figofit/itfit-mvp-lite/internal/document"
	"github.com/figofit/itfit-mvp-lite/internal/kv"
	"github.com/figofit/itfit-mvp-lite/internal/legacy"
	"github.com/figofit/itfit-mvp-lite/internal/model"
)

// Key is the canonical storage key of the document.
const Key = "itfit:v1"

// Store is the document store. The zero value is not usable; call New.
type Store struct {
	storage  kv.Storage
	migrator *legacy.Migrator
	now      func() time.Time
	log      zerolog.Logger

	mu sync.Mutex
}

// Option configures a Store during construction in New.
type Option func(*Store)

// WithClock replaces time.Now. The clock's location decides which calendar
// day "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New returns a store over storage. Pass a nil storage when no persistent
// medium exists.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{storage: storage, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.migrator = legacy.NewMigrator(storage, Key, s.now, s.log)
	return s
}

// Available reports whether a persistent medium is attached.
func (s *Store) Available() bool { return s.storage != nil }

// Now returns the store's current time.
func (s *Store) Now() time.Time { return s.now() }

// Read returns the current document, falling back to defaults whenever the
// stored one is missing or unusable. A missing document triggers the legacy
// migration first.
func (s *Store) Read(ctx context.Context) model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return model.NewDocument(s.now())
	}
	return doc
}

// load is Read for callers holding s.mu. Unlike Read it reports backend
// read failures, so updates never build on defaults that merely stand in for
// an unreadable record.
func (s *Store) load(ctx context.Context) (model.Document, error) {
	if s.storage == nil {
		readsTotal.WithLabelValues(sourceDefault).Inc()
		return model.NewDocument(s.now()), nil
	}

	raw, present, err := s.storage.Get(ctx, Key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", Key).Msg("document unreadable")
		readsTotal.WithLabelValues(sourceDefault).Inc()
		return model.Document{}, fmt.Errorf("read document: %w", err)
	}

	if !present || raw == "" {
		if doc, ok := s.migrator.Run(ctx); ok {
			readsTotal.WithLabelValues(sourceMigrated).Inc()
			return doc, nil
		}
		readsTotal.WithLabelValues(sourceDefault).Inc()
		return model.NewDocument(s.now()), nil
	}

	res := document.Decode([]byte(raw), s.now())
	if !res.OK {
		s.log.Warn().Err(res.Err).Str("key", Key).Msg("stored document rejected; serving defaults")
		readsTotal.WithLabelValues(sourceDefault).Inc()
		return model.NewDocument(s.now()), nil
	}
	if res.Dropped > 0 {
		s.log.Warn().Int("dropped", res.Dropped).Msg("stored document had entries that could not be decoded")
	}
	readsTotal.WithLabelValues(sourceStored).Inc()
	return res.Doc, nil
}

// Write stamps meta (version 1, updatedAt now) and stores doc under the
// canonical key. It returns the stamped document. Without a storage it is a
// no-op that still returns the stamped document.
func (s *Store) Write(ctx context.Context, doc model.Document) (model.Document, error) {
	now := s.now()
	doc = document.Normalize(doc, now)
	doc.Meta = model.NewMeta(now)

	if s.storage == nil {
		writesTotal.WithLabelValues(resultUnavailable).Inc()
		return doc, nil
	}

	payload, err := document.Encode(doc)
	if err != nil {
		writesTotal.WithLabelValues(resultError).Inc()
		return doc, err
	}
	if err := s.storage.Set(ctx, Key, string(payload)); err != nil {
		writesTotal.WithLabelValues(resultError).Inc()
		return doc, fmt.Errorf("write document: %w", err)
	}
	writesTotal.WithLabelValues(resultOK).Inc()
	return doc, nil
}

// Update loads the current document, applies fn, writes the result and
// returns the written document. A backend read failure aborts the update
// without writing.
func (s *Store) Update(ctx context.Context, fn func(model.Document) model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return model.Document{}, err
	}
	return s.Write(ctx, fn(doc))
}

// ResetAll overwrites the whole document with defaults.
func (s *Store) ResetAll(ctx context.Context) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Write(ctx, model.NewDocument(s.now()))
}
