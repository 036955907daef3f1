package demo

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryOverrideStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryOverrideStore()

	iso, err := s.Get(ctx)
	if err != nil || iso != "" {
		t.Fatalf("Get on empty store = %q, %v", iso, err)
	}

	if err := s.Set(ctx, "2025-03-10T09:00:00Z"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	iso, _ = s.Get(ctx)
	if iso != "2025-03-10T09:00:00Z" {
		t.Errorf("Get = %q after Set", iso)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	iso, _ = s.Get(ctx)
	if iso != "" {
		t.Errorf("Get = %q after Clear, want empty", iso)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context) (string, error)   { return "", errors.New("store down") }
func (failingStore) Set(context.Context, string) error     { return errors.New("store down") }
func (failingStore) Clear(context.Context) error           { return errors.New("store down") }

func TestReadOverride_DegradesOnFailure(t *testing.T) {
	if got := ReadOverride(context.Background(), failingStore{}); got != "" {
		t.Errorf("ReadOverride = %q, want empty on store failure", got)
	}
}

func TestReadOverride_NilStore(t *testing.T) {
	if got := ReadOverride(context.Background(), nil); got != "" {
		t.Errorf("ReadOverride = %q, want empty for nil store", got)
	}
}
