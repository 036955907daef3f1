// Package records defines the domain records that flow through the demo
// pipeline: appointments, bills, liens, slots, and diagnostic reports for
// the imaging referral network. Every variant implements the Record
// interface so enrichment and projection stay kind-agnostic.
package records

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the record variants.
type Kind string

const (
	KindAppointment Kind = "appointment"
	KindBill        Kind = "bill"
	KindLien        Kind = "lien"
	KindSlot        Kind = "slot"
	KindReport      Kind = "report"
)

// Record is the shared view of all domain record variants. EffectiveTime
// returns the primary timestamp used for anchoring, windowing, and sorting;
// AmountCents returns 0 for kinds that carry no monetary value.
type Record interface {
	RecordID() string
	RecordKind() Kind
	EffectiveTime() time.Time
	RecordStatus() string
	Synthetic() bool
	// SearchText returns the fields matched by free-text search.
	SearchText() []string
	// Field returns a named kind-specific attribute ("" when absent).
	Field(name string) string
	AmountCents() int64
}

// Statuses valid per kind. Services and handlers validate against these.
var (
	ValidAppointmentStatuses = map[string]bool{
		"scheduled": true, "confirmed": true, "in-progress": true,
		"completed": true, "no-show": true, "cancelled": true,
	}
	ValidBillStatuses = map[string]bool{
		"draft": true, "submitted": true, "paid": true,
		"overdue": true, "denied": true,
	}
	ValidLienStatuses = map[string]bool{
		"pending": true, "active": true, "settled": true, "released": true,
	}
	ValidSlotStatuses = map[string]bool{
		"free": true, "held": true, "booked": true,
	}
	ValidReportStatuses = map[string]bool{
		"pending": true, "draft": true, "final": true, "amended": true,
	}
)

// ValidStatuses returns the status set for a kind (nil for unknown kinds).
func ValidStatuses(k Kind) map[string]bool {
	switch k {
	case KindAppointment:
		return ValidAppointmentStatuses
	case KindBill:
		return ValidBillStatuses
	case KindLien:
		return ValidLienStatuses
	case KindSlot:
		return ValidSlotStatuses
	case KindReport:
		return ValidReportStatuses
	}
	return nil
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PublicID    string    `db:"public_id" json:"public_id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	Referrer    string    `db:"referrer" json:"referrer"`
	Center      string    `db:"center" json:"center"`
	Modality    string    `db:"modality" json:"modality"`
	BodyPart    string    `db:"body_part" json:"body_part"`
	Status      string    `db:"status" json:"status"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	IsSynthetic bool      `db:"is_synthetic" json:"is_synthetic"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (a *Appointment) RecordID() string         { return a.PublicID }
func (a *Appointment) RecordKind() Kind         { return KindAppointment }
func (a *Appointment) EffectiveTime() time.Time { return a.StartTime }
func (a *Appointment) RecordStatus() string     { return a.Status }
func (a *Appointment) Synthetic() bool          { return a.IsSynthetic }
func (a *Appointment) AmountCents() int64       { return 0 }

func (a *Appointment) SearchText() []string {
	return []string{a.PublicID, a.PatientName, a.Referrer, a.Center, a.Modality, a.BodyPart}
}

func (a *Appointment) Field(name string) string {
	switch name {
	case "modality":
		return a.Modality
	case "center":
		return a.Center
	case "body_part":
		return a.BodyPart
	case "referrer":
		return a.Referrer
	}
	return ""
}

// Bill maps to the bill table.
type Bill struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PublicID      string    `db:"public_id" json:"public_id"`
	AppointmentID string    `db:"appointment_id" json:"appointment_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	Center        string    `db:"center" json:"center"`
	Payer         string    `db:"payer" json:"payer"`
	Amount        int64     `db:"amount_cents" json:"amount_cents"`
	Status        string    `db:"status" json:"status"`
	BillingDate   time.Time `db:"billing_date" json:"billing_date"`
	DueDate       time.Time `db:"due_date" json:"due_date"`
	IsSynthetic   bool      `db:"is_synthetic" json:"is_synthetic"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

func (b *Bill) RecordID() string         { return b.PublicID }
func (b *Bill) RecordKind() Kind         { return KindBill }
func (b *Bill) EffectiveTime() time.Time { return b.BillingDate }
func (b *Bill) RecordStatus() string     { return b.Status }
func (b *Bill) Synthetic() bool          { return b.IsSynthetic }
func (b *Bill) AmountCents() int64       { return b.Amount }

func (b *Bill) SearchText() []string {
	return []string{b.PublicID, b.PatientName, b.Center, b.Payer, b.AppointmentID}
}

func (b *Bill) Field(name string) string {
	switch name {
	case "center":
		return b.Center
	case "payer":
		return b.Payer
	case "amount":
		return strconv.FormatInt(b.Amount, 10)
	}
	return ""
}

// Lien maps to the lien table.
type Lien struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PublicID     string    `db:"public_id" json:"public_id"`
	PatientName  string    `db:"patient_name" json:"patient_name"`
	Attorney     string    `db:"attorney" json:"attorney"`
	Funder       string    `db:"funder" json:"funder"`
	Amount       int64     `db:"amount_cents" json:"amount_cents"`
	Status       string    `db:"status" json:"status"`
	AccidentDate time.Time `db:"accident_date" json:"accident_date"`
	LienDate     time.Time `db:"lien_date" json:"lien_date"`
	IsSynthetic  bool      `db:"is_synthetic" json:"is_synthetic"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (l *Lien) RecordID() string         { return l.PublicID }
func (l *Lien) RecordKind() Kind         { return KindLien }
func (l *Lien) EffectiveTime() time.Time { return l.LienDate }
func (l *Lien) RecordStatus() string     { return l.Status }
func (l *Lien) Synthetic() bool          { return l.IsSynthetic }
func (l *Lien) AmountCents() int64       { return l.Amount }

func (l *Lien) SearchText() []string {
	return []string{l.PublicID, l.PatientName, l.Attorney, l.Funder}
}

func (l *Lien) Field(name string) string {
	switch name {
	case "attorney":
		return l.Attorney
	case "funder":
		return l.Funder
	}
	return ""
}

// Slot maps to the slot table.
type Slot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PublicID    string    `db:"public_id" json:"public_id"`
	Center      string    `db:"center" json:"center"`
	Modality    string    `db:"modality" json:"modality"`
	Status      string    `db:"status" json:"status"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	IsSynthetic bool      `db:"is_synthetic" json:"is_synthetic"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (s *Slot) RecordID() string         { return s.PublicID }
func (s *Slot) RecordKind() Kind         { return KindSlot }
func (s *Slot) EffectiveTime() time.Time { return s.StartTime }
func (s *Slot) RecordStatus() string     { return s.Status }
func (s *Slot) Synthetic() bool          { return s.IsSynthetic }
func (s *Slot) AmountCents() int64       { return 0 }

func (s *Slot) SearchText() []string {
	return []string{s.PublicID, s.Center, s.Modality}
}

func (s *Slot) Field(name string) string {
	switch name {
	case "modality":
		return s.Modality
	case "center":
		return s.Center
	}
	return ""
}

// Report maps to the report table.
type Report struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PublicID      string    `db:"public_id" json:"public_id"`
	AppointmentID string    `db:"appointment_id" json:"appointment_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	Radiologist   string    `db:"radiologist" json:"radiologist"`
	Modality      string    `db:"modality" json:"modality"`
	Impression    string    `db:"impression" json:"impression"`
	Status        string    `db:"status" json:"status"`
	ReportDate    time.Time `db:"report_date" json:"report_date"`
	IsSynthetic   bool      `db:"is_synthetic" json:"is_synthetic"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

func (r *Report) RecordID() string         { return r.PublicID }
func (r *Report) RecordKind() Kind         { return KindReport }
func (r *Report) EffectiveTime() time.Time { return r.ReportDate }
func (r *Report) RecordStatus() string     { return r.Status }
func (r *Report) Synthetic() bool          { return r.IsSynthetic }
func (r *Report) AmountCents() int64       { return 0 }

func (r *Report) SearchText() []string {
	return []string{r.PublicID, r.PatientName, r.Radiologist, r.Modality, r.Impression}
}

func (r *Report) Field(name string) string {
	switch name {
	case "modality":
		return r.Modality
	case "radiologist":
		return r.Radiologist
	}
	return ""
}

// Timestamps extracts the effective timestamps of a record set, preserving
// order. Used to build the candidate list for pivot anchoring.
func Timestamps(recs []Record) []time.Time {
	out := make([]time.Time, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.EffectiveTime())
	}
	return out
}
