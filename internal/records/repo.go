package records

import (
	"context"
	"fmt"
)

// Repository provides access to the real (non-synthetic) record sets. Both
// the in-memory demo store and the Postgres store implement it.
type Repository interface {
	ListAppointments(ctx context.Context) ([]*Appointment, error)
	CreateAppointment(ctx context.Context, a *Appointment) error
	ListBills(ctx context.Context) ([]*Bill, error)
	CreateBill(ctx context.Context, b *Bill) error
	ListLiens(ctx context.Context) ([]*Lien, error)
	CreateLien(ctx context.Context, l *Lien) error
	ListSlots(ctx context.Context) ([]*Slot, error)
	CreateSlot(ctx context.Context, s *Slot) error
	ListReports(ctx context.Context) ([]*Report, error)
	CreateReport(ctx context.Context, r *Report) error
}

// ListKind lists records of the given kind through the generic Record view.
func ListKind(ctx context.Context, repo Repository, k Kind) ([]Record, error) {
	switch k {
	case KindAppointment:
		items, err := repo.ListAppointments(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	case KindBill:
		items, err := repo.ListBills(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	case KindLien:
		items, err := repo.ListLiens(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	case KindSlot:
		items, err := repo.ListSlots(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	case KindReport:
		items, err := repo.ListReports(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown record kind: %s", k)
}

// Create stores a record through its concrete type.
func Create(ctx context.Context, repo Repository, r Record) error {
	switch v := r.(type) {
	case *Appointment:
		return repo.CreateAppointment(ctx, v)
	case *Bill:
		return repo.CreateBill(ctx, v)
	case *Lien:
		return repo.CreateLien(ctx, v)
	case *Slot:
		return repo.CreateSlot(ctx, v)
	case *Report:
		return repo.CreateReport(ctx, v)
	}
	return fmt.Errorf("unknown record type %T", r)
}
