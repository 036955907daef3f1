package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mriguys/mriguys/internal/records"
)

// seedWindowStart anchors the fixture cluster. The dates are deliberately
// historical so renders without a time override exercise anchoring: the
// nearest record timestamps sit far from the real clock.
var seedWindowStart = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

const seedWindowDays = 19

// Seed writes a reproducible baseline fixture set through the repository.
// Running it twice produces duplicate rows; callers seed into a fresh store.
func Seed(ctx context.Context, repo records.Repository) error {
	day := 0
	for d := 0; d < seedWindowDays; d++ {
		date := seedWindowStart.AddDate(0, 0, d)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if err := seedDay(ctx, repo, date, day); err != nil {
			return fmt.Errorf("seed day %s: %w", date.Format("2006-01-02"), err)
		}
		day++
	}
	return nil
}

func seedDay(ctx context.Context, repo records.Repository, date time.Time, day int) error {
	perDay := 2 + day%3
	for n := 0; n < perDay; n++ {
		idx := day*7 + n*3

		start := date.Add(time.Duration(9+n*2) * time.Hour)
		appt := &records.Appointment{
			ID:          seedUUID("appt", day, n),
			PublicID:    fmt.Sprintf("seed-appt-%s-%02d", date.Format("20060102"), n),
			PatientName: patientNames[idx%len(patientNames)],
			Referrer:    referrerNames[idx%len(referrerNames)],
			Center:      centerNames[idx%len(centerNames)],
			Modality:    modalities[idx%len(modalities)],
			BodyPart:    bodyParts[idx%len(bodyParts)],
			Status:      apptSeedStatus(day, n),
			StartTime:   start,
			EndTime:     start.Add(45 * time.Minute),
		}
		if err := repo.CreateAppointment(ctx, appt); err != nil {
			return err
		}

		// Completed visits produce downstream paper: a report and a bill.
		if appt.Status != "completed" {
			continue
		}
		report := &records.Report{
			ID:            seedUUID("report", day, n),
			PublicID:      fmt.Sprintf("seed-report-%s-%02d", date.Format("20060102"), n),
			AppointmentID: appt.PublicID,
			PatientName:   appt.PatientName,
			Radiologist:   radiologistNames[idx%len(radiologistNames)],
			Modality:      appt.Modality,
			Impression:    impressionSummaries[idx%len(impressionSummaries)],
			Status:        "final",
			ReportDate:    start.Add(26 * time.Hour),
		}
		if err := repo.CreateReport(ctx, report); err != nil {
			return err
		}
		bill := &records.Bill{
			ID:            seedUUID("bill", day, n),
			PublicID:      fmt.Sprintf("seed-bill-%s-%02d", date.Format("20060102"), n),
			AppointmentID: appt.PublicID,
			PatientName:   appt.PatientName,
			Center:        appt.Center,
			Payer:         payerNames[idx%len(payerNames)],
			Amount:        int64(65000 + idx*1700),
			Status:        billSeedStatus(day, n),
			BillingDate:   start.Add(48 * time.Hour),
			DueDate:       start.Add(48 * time.Hour).AddDate(0, 0, 30),
		}
		if err := repo.CreateBill(ctx, bill); err != nil {
			return err
		}
	}

	// One lien and a handful of open slots per seeded day.
	lienIdx := day * 5
	lien := &records.Lien{
		ID:           seedUUID("lien", day, 0),
		PublicID:     fmt.Sprintf("seed-lien-%s", date.Format("20060102")),
		PatientName:  patientNames[lienIdx%len(patientNames)],
		Attorney:     attorneyFirms[lienIdx%len(attorneyFirms)],
		Funder:       funderNames[lienIdx%len(funderNames)],
		Amount:       int64(250000 + lienIdx*11000),
		Status:       lienSeedStatus(day),
		AccidentDate: date.AddDate(0, 0, -45),
		LienDate:     date.Add(10 * time.Hour),
	}
	if err := repo.CreateLien(ctx, lien); err != nil {
		return err
	}

	for n := 0; n < 3; n++ {
		idx := day*3 + n
		start := date.Add(time.Duration(8+n*3) * time.Hour)
		slot := &records.Slot{
			ID:        seedUUID("slot", day, n),
			PublicID:  fmt.Sprintf("seed-slot-%s-%02d", date.Format("20060102"), n),
			Center:    centerNames[idx%len(centerNames)],
			Modality:  modalities[idx%len(modalities)],
			Status:    slotSeedStatus(day, n),
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
		}
		if err := repo.CreateSlot(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

func seedUUID(kind string, day, n int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("seed-%s-%d-%d", kind, day, n)))
}

func apptSeedStatus(day, n int) string {
	switch (day + n) % 5 {
	case 0:
		return "scheduled"
	case 1, 2:
		return "completed"
	case 3:
		return "confirmed"
	default:
		return "no-show"
	}
}

func billSeedStatus(day, n int) string {
	switch (day + n) % 4 {
	case 0:
		return "draft"
	case 1:
		return "submitted"
	case 2:
		return "paid"
	default:
		return "overdue"
	}
}

func lienSeedStatus(day int) string {
	switch day % 3 {
	case 0:
		return "pending"
	case 1:
		return "active"
	default:
		return "settled"
	}
}

func slotSeedStatus(day, n int) string {
	switch (day + n) % 3 {
	case 0:
		return "free"
	case 1:
		return "booked"
	default:
		return "held"
	}
}
