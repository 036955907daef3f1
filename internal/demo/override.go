package demo

import (
	"context"
	"sync"
)

// OverrideStore persists the process-wide simulated "now" as an ISO 8601
// string. An empty string means no override. Callers treat read failures as
// "no override" and write failures as best-effort; persistence is never a
// correctness requirement for rendering.
type OverrideStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, iso string) error
	Clear(ctx context.Context) error
}

// MemoryOverrideStore keeps the override in process memory (demo mode).
type MemoryOverrideStore struct {
	mu  sync.RWMutex
	iso string
}

func NewMemoryOverrideStore() *MemoryOverrideStore {
	return &MemoryOverrideStore{}
}

func (s *MemoryOverrideStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iso, nil
}

func (s *MemoryOverrideStore) Set(_ context.Context, iso string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iso = iso
	return nil
}

func (s *MemoryOverrideStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iso = ""
	return nil
}

// ReadOverride fetches the current override, degrading storage failures to
// "no override" so a broken store can never break a render.
func ReadOverride(ctx context.Context, store OverrideStore) string {
	if store == nil {
		return ""
	}
	iso, err := store.Get(ctx)
	if err != nil {
		return ""
	}
	return iso
}
