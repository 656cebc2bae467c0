package kvtest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/figofit/itfit-mvp-lite/internal/kv"
)

// Run exercises a minimal compliance suite against a kv.Storage implementation.
// Implementations should provide a clean, isolated storage and return it from makeStorage.
func Run(t *testing.T, makeStorage func(t *testing.T) kv.Storage) {
	t.Helper()

	s := makeStorage(t)
	ctx := context.Background()

	// Unique key so shared backends do not collide between runs
	key := "kvtest:" + uuid.New().String()

	// Absent
	if v, ok, err := s.Get(ctx, key); err != nil || ok || v != "" {
		t.Fatalf("Get absent: v=%q ok=%v err=%v", v, ok, err)
	}

	// Set + Get
	if err := s.Set(ctx, key, `{"a":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := s.Get(ctx, key); err != nil || !ok || v != `{"a":1}` {
		t.Fatalf("Get after Set: v=%q ok=%v err=%v", v, ok, err)
	}

	// Overwrite
	if err := s.Set(ctx, key, `{"a":2}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _, err := s.Get(ctx, key); err != nil || v != `{"a":2}` {
		t.Fatalf("Get after overwrite: v=%q err=%v", v, err)
	}

	// Empty string is a present value, not an absent key
	emptyKey := key + ":empty"
	if err := s.Set(ctx, emptyKey, ""); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if v, ok, err := s.Get(ctx, emptyKey); err != nil || !ok || v != "" {
		t.Fatalf("Get empty: v=%q ok=%v err=%v", v, ok, err)
	}

	// Remove, and removing again is not an error
	if err := s.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get after Remove: ok=%v err=%v", ok, err)
	}
	if err := s.Remove(ctx, key); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	_ = s.Remove(ctx, emptyKey)
}
