package records

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process Repository used in demo mode and tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	appointments []*Appointment
	bills        []*Bill
	liens        []*Lien
	slots        []*Slot
	reports      []*Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) ListAppointments(_ context.Context) ([]*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *MemoryRepository) CreateAppointment(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.appointments = append(m.appointments, a)
	return nil
}

func (m *MemoryRepository) ListBills(_ context.Context) ([]*Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Bill, len(m.bills))
	copy(out, m.bills)
	return out, nil
}

func (m *MemoryRepository) CreateBill(_ context.Context, b *Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	m.bills = append(m.bills, b)
	return nil
}

func (m *MemoryRepository) ListLiens(_ context.Context) ([]*Lien, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Lien, len(m.liens))
	copy(out, m.liens)
	return out, nil
}

func (m *MemoryRepository) CreateLien(_ context.Context, l *Lien) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	m.liens = append(m.liens, l)
	return nil
}

func (m *MemoryRepository) ListSlots(_ context.Context) ([]*Slot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Slot, len(m.slots))
	copy(out, m.slots)
	return out, nil
}

func (m *MemoryRepository) CreateSlot(_ context.Context, s *Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	m.slots = append(m.slots, s)
	return nil
}

func (m *MemoryRepository) ListReports(_ context.Context) ([]*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Report, len(m.reports))
	copy(out, m.reports)
	return out, nil
}

func (m *MemoryRepository) CreateReport(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.reports = append(m.reports, r)
	return nil
}
