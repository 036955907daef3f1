package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository is the Postgres-backed Repository.
type PGRepository struct{ pool *pgxpool.Pool }

func NewPGRepository(pool *pgxpool.Pool) *PGRepository { return &PGRepository{pool: pool} }

const apptCols = `id, public_id, patient_name, referrer, center, modality,
	body_part, status, start_time, end_time, is_synthetic, created_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PublicID, &a.PatientName, &a.Referrer, &a.Center,
		&a.Modality, &a.BodyPart, &a.Status, &a.StartTime, &a.EndTime,
		&a.IsSynthetic, &a.CreatedAt)
	return &a, err
}

func (r *PGRepository) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+apptCols+` FROM appointment ORDER BY start_time, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PublicID == "" {
		a.PublicID = a.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, public_id, patient_name, referrer, center,
			modality, body_part, status, start_time, end_time, is_synthetic)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.PublicID, a.PatientName, a.Referrer, a.Center,
		a.Modality, a.BodyPart, a.Status, a.StartTime, a.EndTime, a.IsSynthetic)
	return err
}

const billCols = `id, public_id, appointment_id, patient_name, center, payer,
	amount_cents, status, billing_date, due_date, is_synthetic, created_at`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.PublicID, &b.AppointmentID, &b.PatientName, &b.Center,
		&b.Payer, &b.Amount, &b.Status, &b.BillingDate, &b.DueDate,
		&b.IsSynthetic, &b.CreatedAt)
	return &b, err
}

func (r *PGRepository) ListBills(ctx context.Context) ([]*Bill, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+billCols+` FROM bill ORDER BY billing_date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateBill(ctx context.Context, b *Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.PublicID == "" {
		b.PublicID = b.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bill (id, public_id, appointment_id, patient_name, center,
			payer, amount_cents, status, billing_date, due_date, is_synthetic)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		b.ID, b.PublicID, b.AppointmentID, b.PatientName, b.Center,
		b.Payer, b.Amount, b.Status, b.BillingDate, b.DueDate, b.IsSynthetic)
	return err
}

const lienCols = `id, public_id, patient_name, attorney, funder, amount_cents,
	status, accident_date, lien_date, is_synthetic, created_at`

func scanLien(row pgx.Row) (*Lien, error) {
	var l Lien
	err := row.Scan(&l.ID, &l.PublicID, &l.PatientName, &l.Attorney, &l.Funder,
		&l.Amount, &l.Status, &l.AccidentDate, &l.LienDate, &l.IsSynthetic, &l.CreatedAt)
	return &l, err
}

func (r *PGRepository) ListLiens(ctx context.Context) ([]*Lien, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+lienCols+` FROM lien ORDER BY lien_date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Lien
	for rows.Next() {
		l, err := scanLien(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateLien(ctx context.Context, l *Lien) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.PublicID == "" {
		l.PublicID = l.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lien (id, public_id, patient_name, attorney, funder,
			amount_cents, status, accident_date, lien_date, is_synthetic)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		l.ID, l.PublicID, l.PatientName, l.Attorney, l.Funder,
		l.Amount, l.Status, l.AccidentDate, l.LienDate, l.IsSynthetic)
	return err
}

const slotCols = `id, public_id, center, modality, status, start_time,
	end_time, is_synthetic, created_at`

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	err := row.Scan(&s.ID, &s.PublicID, &s.Center, &s.Modality, &s.Status,
		&s.StartTime, &s.EndTime, &s.IsSynthetic, &s.CreatedAt)
	return &s, err
}

func (r *PGRepository) ListSlots(ctx context.Context) ([]*Slot, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+slotCols+` FROM slot ORDER BY start_time, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateSlot(ctx context.Context, s *Slot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.PublicID == "" {
		s.PublicID = s.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO slot (id, public_id, center, modality, status, start_time,
			end_time, is_synthetic)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.PublicID, s.Center, s.Modality, s.Status, s.StartTime,
		s.EndTime, s.IsSynthetic)
	return err
}

const reportCols = `id, public_id, appointment_id, patient_name, radiologist,
	modality, impression, status, report_date, is_synthetic, created_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.PublicID, &rep.AppointmentID, &rep.PatientName,
		&rep.Radiologist, &rep.Modality, &rep.Impression, &rep.Status,
		&rep.ReportDate, &rep.IsSynthetic, &rep.CreatedAt)
	return &rep, err
}

func (r *PGRepository) ListReports(ctx context.Context) ([]*Report, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reportCols+` FROM report ORDER BY report_date, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *PGRepository) CreateReport(ctx context.Context, rep *Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.PublicID == "" {
		rep.PublicID = rep.ID.String()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report (id, public_id, appointment_id, patient_name,
			radiologist, modality, impression, status, report_date, is_synthetic)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rep.ID, rep.PublicID, rep.AppointmentID, rep.PatientName,
		rep.Radiologist, rep.Modality, rep.Impression, rep.Status,
		rep.ReportDate, rep.IsSynthetic)
	return err
}
