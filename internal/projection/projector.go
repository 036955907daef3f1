// Package projection filters, sorts, and aggregates enriched record sets
// for a view. Rows and KPIs always come from the same filtered set, so the
// table and its totals can never disagree.
package projection

import (
	"sort"
	"strings"
	"time"

	"github.com/mriguys/mriguys/internal/records"
)

// DateRange names the supported date-range filters. Ranges are evaluated
// relative to the view's anchor instant, not the wall clock.
type DateRange string

const (
	RangeAll       DateRange = "all"
	RangeToday     DateRange = "today"
	RangeThisWeek  DateRange = "this-week"
	RangeThisMonth DateRange = "this-month"
	RangeCustom    DateRange = "custom"
)

// FilterSet is a conjunction of independent predicates. "all" or the empty
// string disables the corresponding predicate. Fields holds kind-specific
// equality filters (modality, center, attorney, ...).
type FilterSet struct {
	Search string
	Status string
	Range  DateRange
	From   time.Time
	To     time.Time
	Fields map[string]string

	// Anchor is the reference instant for Range evaluation (the pivot).
	Anchor time.Time
}

// SortSpec orders rows by effective timestamp. Ties keep insertion order.
type SortSpec struct {
	Descending bool
}

// KPISet aggregates the full filtered set, pre-pagination.
type KPISet struct {
	Total         int                `json:"total"`
	ByStatus      map[string]int     `json:"by_status"`
	AmountCents   map[string]int64   `json:"amount_cents_by_status"`
	TotalAmount   int64              `json:"total_amount_cents"`
	Rates         map[string]float64 `json:"rates"`
	SyntheticRows int                `json:"synthetic_rows"`
}

// Projection is the output of Project.
type Projection struct {
	Rows []records.Record
	KPIs KPISet
}

// Project applies the filter conjunction, sorts stably, and computes KPIs
// over exactly the rows it returns.
func Project(recs []records.Record, f FilterSet, s SortSpec) Projection {
	rows := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if matches(r, f) {
			rows = append(rows, r)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := rows[i].EffectiveTime(), rows[j].EffectiveTime()
		if s.Descending {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})

	return Projection{Rows: rows, KPIs: computeKPIs(rows)}
}

func matches(r records.Record, f FilterSet) bool {
	// Search misses exclude the record regardless of other predicates.
	if term := strings.TrimSpace(f.Search); term != "" {
		needle := strings.ToLower(term)
		hit := false
		for _, field := range r.SearchText() {
			if strings.Contains(strings.ToLower(field), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if !wildcard(f.Status) && r.RecordStatus() != f.Status {
		return false
	}

	if !inRange(r.EffectiveTime(), f) {
		return false
	}

	for name, want := range f.Fields {
		if wildcard(want) {
			continue
		}
		if !strings.EqualFold(r.Field(name), want) {
			return false
		}
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == "all"
}

func inRange(ts time.Time, f FilterSet) bool {
	switch f.Range {
	case "", RangeAll:
		return true
	case RangeToday:
		start := dayStart(f.Anchor)
		return !ts.Before(start) && ts.Before(start.AddDate(0, 0, 1))
	case RangeThisWeek:
		start := weekStart(f.Anchor)
		return !ts.Before(start) && ts.Before(start.AddDate(0, 0, 7))
	case RangeThisMonth:
		a := f.Anchor
		start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, a.Location())
		return !ts.Before(start) && ts.Before(start.AddDate(0, 1, 0))
	case RangeCustom:
		if !f.From.IsZero() && ts.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && ts.After(f.To) {
			return false
		}
		return true
	}
	// Unknown range values are treated as no filter.
	return true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday 00:00 of t's week.
func weekStart(t time.Time) time.Time {
	d := dayStart(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func computeKPIs(rows []records.Record) KPISet {
	k := KPISet{
		Total:       len(rows),
		ByStatus:    make(map[string]int),
		AmountCents: make(map[string]int64),
		Rates:       make(map[string]float64),
	}
	for _, r := range rows {
		st := r.RecordStatus()
		k.ByStatus[st]++
		if amt := r.AmountCents(); amt != 0 {
			k.AmountCents[st] += amt
			k.TotalAmount += amt
		}
		if r.Synthetic() {
			k.SyntheticRows++
		}
	}
	for st, n := range k.ByStatus {
		k.Rates[st] = Rate(n, k.Total)
	}
	return k
}

// Rate returns part/total guarded against division by zero.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
