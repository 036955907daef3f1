package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryRepository_CreateAssignsDefaults(t *testing.T) {
	repo := NewMemoryRepository()
	a := &Appointment{PublicID: "appt-1", Status: "scheduled"}
	if err := repo.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned")
	}
}

func TestMemoryRepository_CreateKeepsExplicitValues(t *testing.T) {
	repo := NewMemoryRepository()
	id := uuid.New()
	created := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	a := &Appointment{ID: id, PublicID: "appt-1", CreatedAt: created}
	if err := repo.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID != id || !a.CreatedAt.Equal(created) {
		t.Error("explicit ID or CreatedAt was overwritten")
	}
}

func TestMemoryRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	for _, id := range []string{"first", "second", "third"} {
		if err := repo.CreateBill(ctx, &Bill{PublicID: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	bills, err := repo.ListBills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if bills[i].PublicID != want {
			t.Fatalf("position %d = %s, want %s", i, bills[i].PublicID, want)
		}
	}
}

func TestMemoryRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	if err := repo.CreateSlot(ctx, &Slot{PublicID: "slot-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	first, _ := repo.ListSlots(ctx)
	first[0] = nil
	second, _ := repo.ListSlots(ctx)
	if second[0] == nil {
		t.Error("mutating a listed slice reached the repository")
	}
}

func TestListKind_DispatchesAllKinds(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seed := []Record{
		&Appointment{PublicID: "a1"},
		&Bill{PublicID: "b1"},
		&Lien{PublicID: "l1"},
		&Slot{PublicID: "s1"},
		&Report{PublicID: "r1"},
	}
	for _, r := range seed {
		if err := Create(ctx, repo, r); err != nil {
			t.Fatalf("create %s: %v", r.RecordID(), err)
		}
	}
	for _, k := range []Kind{KindAppointment, KindBill, KindLien, KindSlot, KindReport} {
		recs, err := ListKind(ctx, repo, k)
		if err != nil {
			t.Fatalf("list %s: %v", k, err)
		}
		if len(recs) != 1 {
			t.Fatalf("list %s: %d records, want 1", k, len(recs))
		}
		if recs[0].RecordKind() != k {
			t.Errorf("list %s returned kind %s", k, recs[0].RecordKind())
		}
	}
}

func TestListKind_UnknownKind(t *testing.T) {
	if _, err := ListKind(context.Background(), NewMemoryRepository(), Kind("widget")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
