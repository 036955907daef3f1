package demo

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/mriguys/mriguys/internal/records"
)

// EnrichConfig controls synthetic generation for one record kind. Zero
// values fall back to kind-level defaults rather than failing, so a view
// only has to specify what it cares about.
type EnrichConfig struct {
	Kind records.Kind

	// WindowDays bounds generation to [pivot-WindowDays, pivot+WindowDays].
	WindowDays int
	// MinRealInWindow gates generation: when at least this many real
	// records fall in the fixed 30-day lookback before the pivot, the real
	// set is considered ample and returned unchanged.
	MinRealInWindow int
	// ToleranceDays is the anchoring tolerance used when resolving the
	// pivot for this kind. Kept here so each view carries one config.
	ToleranceDays int

	WeekdaysOnly bool

	// PerDayMin/PerDayMax bound the generated count per retained day.
	// Ignored when HoursOfDay is set, in which case each listed hour is an
	// independent emission slot.
	PerDayMin  int
	PerDayMax  int
	HoursOfDay []int

	// Statuses is the pool statuses are drawn from. Defaults per kind.
	Statuses []string

	AmountMinCents int64
	AmountMaxCents int64
}

// enrichLookbackDays is the fixed lookback used by the ampleness gate,
// independent of WindowDays.
const enrichLookbackDays = 30

// hourlyEmitOdds is the numerator (out of 10) for per-hour emission when
// HoursOfDay is configured.
const hourlyEmitOdds = 7

var defaultStatuses = map[records.Kind][]string{
	records.KindAppointment: {"scheduled", "confirmed", "completed", "no-show", "cancelled"},
	records.KindBill:        {"draft", "submitted", "paid", "overdue"},
	records.KindLien:        {"pending", "active", "settled"},
	records.KindSlot:        {"free", "held", "booked"},
	records.KindReport:      {"pending", "draft", "final"},
}

var publicIDPrefix = map[records.Kind]string{
	records.KindAppointment: "appt",
	records.KindBill:        "bill",
	records.KindLien:        "lien",
	records.KindSlot:        "slot",
	records.KindReport:      "rpt",
}

func (c EnrichConfig) withDefaults() EnrichConfig {
	if c.WindowDays <= 0 {
		c.WindowDays = 14
	}
	if c.MinRealInWindow <= 0 {
		c.MinRealInWindow = 15
	}
	if c.ToleranceDays <= 0 {
		c.ToleranceDays = 14
	}
	if len(c.HoursOfDay) == 0 {
		if c.PerDayMin <= 0 {
			c.PerDayMin = 1
		}
		if c.PerDayMax < c.PerDayMin {
			c.PerDayMax = c.PerDayMin + 2
		}
	}
	if len(c.Statuses) == 0 {
		c.Statuses = defaultStatuses[c.Kind]
	}
	if c.AmountMinCents <= 0 {
		c.AmountMinCents = 40000
	}
	// The max defaults relative to the min so a min-only config keeps a
	// positive range instead of inverting it.
	if c.AmountMaxCents <= c.AmountMinCents {
		c.AmountMaxCents = c.AmountMinCents + 180000
	}
	return c
}

// Enrich appends deterministic synthetic records around the pivot when the
// real set is too sparse to demo against. Real records are never removed or
// altered; an invalid pivot disables generation entirely. Calling Enrich
// twice with identical inputs yields identical output, including ids.
func Enrich(real []records.Record, pivot time.Time, cfg EnrichConfig) []records.Record {
	if pivot.IsZero() {
		return real
	}
	cfg = cfg.withDefaults()

	lookback := pivot.AddDate(0, 0, -enrichLookbackDays)
	inWindow := 0
	for _, r := range real {
		ts := r.EffectiveTime()
		if !ts.Before(lookback) && !ts.After(pivot) {
			inWindow++
		}
	}
	if inWindow >= cfg.MinRealInWindow {
		return real
	}

	out := make([]records.Record, 0, len(real))
	out = append(out, real...)

	base := pivot.UTC()
	for off := -cfg.WindowDays; off <= cfg.WindowDays; off++ {
		d := base.AddDate(0, 0, off)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		wd := day.Weekday()
		if cfg.WeekdaysOnly && (wd == time.Saturday || wd == time.Sunday) {
			continue
		}

		if len(cfg.HoursOfDay) > 0 {
			seq := 0
			for _, hour := range cfg.HoursOfDay {
				if draw(cfg.Kind, off, hour, wd, "emit")%10 >= hourlyEmitOdds {
					continue
				}
				out = append(out, build(cfg, day, off, seq, hour))
				seq++
			}
			continue
		}

		span := uint64(cfg.PerDayMax - cfg.PerDayMin + 1)
		count := cfg.PerDayMin + int(draw(cfg.Kind, off, 0, wd, "count")%span)
		for i := 0; i < count; i++ {
			hour := 8 + int(draw(cfg.Kind, off, i, wd, "hour")%9)
			out = append(out, build(cfg, day, off, i, hour))
		}
	}
	return out
}

// draw produces a stable 64-bit value from the composite slot key plus a
// field label, so every generated field is an independent but reproducible
// function of (kind, dayOffset, slot, dayOfWeek).
func draw(kind records.Kind, dayOffset, slot int, weekday time.Weekday, field string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s-%d-%d-%d-%s", kind, dayOffset, slot, int(weekday), field)
	return h.Sum64()
}

func pick(pool []string, v uint64) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[v%uint64(len(pool))]
}

func syntheticID(prefix string, day time.Time, seq int) (string, uuid.UUID) {
	publicID := fmt.Sprintf("syn-%s-%s-%02d", prefix, day.Format("20060102"), seq)
	return publicID, uuid.NewSHA1(uuid.NameSpaceOID, []byte(publicID))
}

func amount(cfg EnrichConfig, off, seq int, wd time.Weekday) int64 {
	span := (cfg.AmountMaxCents-cfg.AmountMinCents)/100 + 1
	return cfg.AmountMinCents + int64(draw(cfg.Kind, off, seq, wd, "amount")%uint64(span))*100
}

func build(cfg EnrichConfig, day time.Time, off, seq, hour int) records.Record {
	wd := day.Weekday()
	publicID, id := syntheticID(publicIDPrefix[cfg.Kind], day, seq)
	start := day.Add(time.Duration(hour) * time.Hour)
	status := pick(cfg.Statuses, draw(cfg.Kind, off, seq, wd, "status"))

	switch cfg.Kind {
	case records.KindBill:
		return &records.Bill{
			ID:            id,
			PublicID:      publicID,
			AppointmentID: fmt.Sprintf("syn-appt-%s-%02d", day.Format("20060102"), seq),
			PatientName:   pick(patientNames, draw(cfg.Kind, off, seq, wd, "patient")),
			Center:        pick(centerNames, draw(cfg.Kind, off, seq, wd, "center")),
			Payer:         pick(payerNames, draw(cfg.Kind, off, seq, wd, "payer")),
			Amount:        amount(cfg, off, seq, wd),
			Status:        status,
			BillingDate:   start,
			DueDate:       start.AddDate(0, 0, 30),
			IsSynthetic:   true,
		}
	case records.KindLien:
		accidentOffset := 40 + int(draw(cfg.Kind, off, seq, wd, "accident")%50)
		return &records.Lien{
			ID:           id,
			PublicID:     publicID,
			PatientName:  pick(patientNames, draw(cfg.Kind, off, seq, wd, "patient")),
			Attorney:     pick(attorneyFirms, draw(cfg.Kind, off, seq, wd, "attorney")),
			Funder:       pick(funderNames, draw(cfg.Kind, off, seq, wd, "funder")),
			Amount:       amount(cfg, off, seq, wd),
			Status:       status,
			AccidentDate: start.AddDate(0, 0, -accidentOffset),
			LienDate:     start,
			IsSynthetic:  true,
		}
	case records.KindSlot:
		return &records.Slot{
			ID:          id,
			PublicID:    publicID,
			Center:      pick(centerNames, draw(cfg.Kind, off, seq, wd, "center")),
			Modality:    pick(modalities, draw(cfg.Kind, off, seq, wd, "modality")),
			Status:      status,
			StartTime:   start,
			EndTime:     start.Add(30 * time.Minute),
			IsSynthetic: true,
		}
	case records.KindReport:
		return &records.Report{
			ID:            id,
			PublicID:      publicID,
			AppointmentID: fmt.Sprintf("syn-appt-%s-%02d", day.Format("20060102"), seq),
			PatientName:   pick(patientNames, draw(cfg.Kind, off, seq, wd, "patient")),
			Radiologist:   pick(radiologistNames, draw(cfg.Kind, off, seq, wd, "radiologist")),
			Modality:      pick(modalities, draw(cfg.Kind, off, seq, wd, "modality")),
			Impression:    pick(impressionSummaries, draw(cfg.Kind, off, seq, wd, "impression")),
			Status:        status,
			ReportDate:    start,
			IsSynthetic:   true,
		}
	default:
		return &records.Appointment{
			ID:          id,
			PublicID:    publicID,
			PatientName: pick(patientNames, draw(cfg.Kind, off, seq, wd, "patient")),
			Referrer:    pick(referrerNames, draw(cfg.Kind, off, seq, wd, "referrer")),
			Center:      pick(centerNames, draw(cfg.Kind, off, seq, wd, "center")),
			Modality:    pick(modalities, draw(cfg.Kind, off, seq, wd, "modality")),
			BodyPart:    pick(bodyParts, draw(cfg.Kind, off, seq, wd, "bodypart")),
			Status:      status,
			StartTime:   start,
			EndTime:     start.Add(45 * time.Minute),
			IsSynthetic: true,
		}
	}
}
