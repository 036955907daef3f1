// Package views wires the demo pipeline into the role-gated dashboard
// contexts. Each view contributes only its enrichment config, filterable
// fields, and ordered rule list; anchoring, enrichment, projection, and
// insight evaluation are shared.
package views

import (
	"github.com/mriguys/mriguys/internal/demo"
	"github.com/mriguys/mriguys/internal/insight"
	"github.com/mriguys/mriguys/internal/projection"
	"github.com/mriguys/mriguys/internal/records"
)

// View declares one dashboard context.
type View struct {
	Name   string
	Kind   records.Kind
	Roles  []string
	Enrich demo.EnrichConfig
	Sort   projection.SortSpec
	Rules  []insight.Rule

	// TopN > 0 returns an operator insights panel of that size; 0 returns
	// a single best tip with a fixed fallback.
	TopN int
}

var businessHours = []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17}

// All returns the dashboard views in registration order.
func All() []View {
	return []View{
		{
			Name:  "worklist",
			Kind:  records.KindAppointment,
			Roles: []string{"ops", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindAppointment,
				WindowDays:      14,
				MinRealInWindow: 20,
				WeekdaysOnly:    true,
				PerDayMin:       2,
				PerDayMax:       6,
			},
			Sort:  projection.SortSpec{},
			Rules: worklistRules,
			TopN:  3,
		},
		{
			Name:  "billing",
			Kind:  records.KindBill,
			Roles: []string{"ops", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindBill,
				WindowDays:      14,
				MinRealInWindow: 50,
				WeekdaysOnly:    true,
				PerDayMin:       1,
				PerDayMax:       4,
				AmountMinCents:  45000,
				AmountMaxCents:  320000,
			},
			Sort:  projection.SortSpec{Descending: true},
			Rules: billingRules,
			TopN:  3,
		},
		{
			Name:  "cases",
			Kind:  records.KindAppointment,
			Roles: []string{"patient", "referrer", "ops", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindAppointment,
				WindowDays:      14,
				MinRealInWindow: 20,
				WeekdaysOnly:    true,
				PerDayMin:       1,
				PerDayMax:       3,
			},
			Sort:  projection.SortSpec{},
			Rules: caseTipRules,
		},
		{
			Name:  "casepacket",
			Kind:  records.KindReport,
			Roles: []string{"attorney", "ops", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindReport,
				WindowDays:      14,
				MinRealInWindow: 20,
				WeekdaysOnly:    true,
				PerDayMin:       1,
				PerDayMax:       3,
			},
			Sort:  projection.SortSpec{Descending: true},
			Rules: casePacketRules,
			TopN:  3,
		},
		{
			Name:  "lienledger",
			Kind:  records.KindLien,
			Roles: []string{"funder", "attorney", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindLien,
				WindowDays:      14,
				MinRealInWindow: 15,
				PerDayMin:       1,
				PerDayMax:       2,
				AmountMinCents:  150000,
				AmountMaxCents:  1200000,
			},
			Sort:  projection.SortSpec{Descending: true},
			Rules: lienLedgerRules,
			TopN:  3,
		},
		{
			Name:  "slots",
			Kind:  records.KindSlot,
			Roles: []string{"imaging-center", "ops", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindSlot,
				WindowDays:      14,
				MinRealInWindow: 80,
				WeekdaysOnly:    true,
				HoursOfDay:      businessHours,
			},
			Sort:  projection.SortSpec{},
			Rules: slotsRules,
			TopN:  3,
		},
		{
			Name:  "attorney",
			Kind:  records.KindLien,
			Roles: []string{"attorney", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindLien,
				WindowDays:      14,
				MinRealInWindow: 15,
				PerDayMin:       1,
				PerDayMax:       2,
				AmountMinCents:  150000,
				AmountMaxCents:  1200000,
			},
			Sort:  projection.SortSpec{Descending: true},
			Rules: attorneyRules,
			TopN:  3,
		},
		{
			Name:  "imagingcenter",
			Kind:  records.KindSlot,
			Roles: []string{"imaging-center", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindSlot,
				WindowDays:      14,
				MinRealInWindow: 80,
				WeekdaysOnly:    true,
				HoursOfDay:      businessHours,
			},
			Sort:  projection.SortSpec{},
			Rules: imagingCenterRules,
			TopN:  3,
		},
		{
			Name:  "referrer",
			Kind:  records.KindAppointment,
			Roles: []string{"referrer", "admin"},
			Enrich: demo.EnrichConfig{
				Kind:            records.KindAppointment,
				WindowDays:      14,
				MinRealInWindow: 20,
				WeekdaysOnly:    true,
				PerDayMin:       1,
				PerDayMax:       4,
			},
			Sort:  projection.SortSpec{},
			Rules: referrerRules,
			TopN:  3,
		},
	}
}
