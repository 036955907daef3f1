package views

import (
	"fmt"
	"time"

	"github.com/mriguys/mriguys/internal/insight"
)

// Rule lists are declared most-urgent first: declaration order is the
// tie-break between equal priorities.

func countWithin(ctx insight.Context, statuses map[string]bool, from, to time.Time) int {
	n := 0
	for _, r := range ctx.Rows {
		if !statuses[r.RecordStatus()] {
			continue
		}
		ts := r.EffectiveTime()
		if !ts.Before(from) && ts.Before(to) {
			n++
		}
	}
	return n
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

var worklistRules = []insight.Rule{
	{
		Name: "urgent-upcoming",
		When: func(ctx insight.Context) bool {
			open := map[string]bool{"scheduled": true, "confirmed": true}
			return countWithin(ctx, open, ctx.Pivot, ctx.Pivot.Add(48*time.Hour)) > 0
		},
		Build: func(ctx insight.Context) insight.Insight {
			open := map[string]bool{"scheduled": true, "confirmed": true}
			n := countWithin(ctx, open, ctx.Pivot, ctx.Pivot.Add(48*time.Hour))
			return insight.Insight{
				Message:    fmt.Sprintf("%d appointments in the next 48 hours still need prep confirmation calls.", n),
				Kind:       "scheduling",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "no-show-risk",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["no-show"] > 0.15 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("No-show rate is %.0f%%. Enable reminder texts for unconfirmed patients.", ctx.KPIs.Rates["no-show"]*100),
				Kind:       "scheduling",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "unconfirmed-backlog",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["scheduled"] > 10 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d scheduled appointments are awaiting confirmation.", ctx.KPIs.ByStatus["scheduled"]),
				Kind:       "scheduling",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "completion-trend",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["completed"] > 0.5 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Completion rate is above 50% for this window. Throughput is healthy.",
				Kind:       "scheduling",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var billingRules = []insight.Rule{
	{
		Name: "overdue-exposure",
		When: func(ctx insight.Context) bool { return ctx.KPIs.AmountCents["overdue"] > 500000 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%s in overdue balances. Prioritize the oldest invoices for follow-up.", dollars(ctx.KPIs.AmountCents["overdue"])),
				Kind:       "financial",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "denied-followup",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["denied"] > 0 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d denied claims need resubmission or appeal within payer deadlines.", ctx.KPIs.ByStatus["denied"]),
				Kind:       "financial",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "draft-backlog",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["draft"] > 5 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d draft bills have not been submitted yet.", ctx.KPIs.ByStatus["draft"]),
				Kind:       "financial",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "collections-health",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["paid"] >= 0.6 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "More than 60% of billed volume is collected for this window.",
				Kind:       "financial",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var caseTipRules = []insight.Rule{
	{
		Name: "appointment-tomorrow",
		When: func(ctx insight.Context) bool {
			open := map[string]bool{"scheduled": true, "confirmed": true}
			return countWithin(ctx, open, ctx.Pivot, ctx.Pivot.Add(24*time.Hour)) > 0
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Your imaging appointment is within the next day. Arrive 15 minutes early with a photo ID.",
				Kind:       "preparation",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "mri-prep",
		When: func(ctx insight.Context) bool {
			for _, r := range ctx.Rows {
				if r.Field("modality") == "MRI" && r.EffectiveTime().After(ctx.Pivot) {
					return true
				}
			}
			return false
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "You have an upcoming MRI. Leave jewelry and metal objects at home, and tell the technologist about any implants.",
				Kind:       "preparation",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "no-activity",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Total == 0 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "No appointments are on file for this case yet. Contact your referrer to get scheduled.",
				Kind:       "scheduling",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "winter-travel",
		When: func(ctx insight.Context) bool {
			m := ctx.Pivot.Month()
			return m == time.December || m == time.January || m == time.February
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Winter weather can slow travel. Allow extra time to reach the imaging center.",
				Kind:       "logistics",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var casePacketRules = []insight.Rule{
	{
		Name: "missing-final-reads",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["pending"] > 3 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d reports are still pending. The packet cannot be finalized without them.", ctx.KPIs.ByStatus["pending"]),
				Kind:       "documentation",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "draft-aging",
		When: func(ctx insight.Context) bool {
			cutoff := ctx.Pivot.AddDate(0, 0, -7)
			for _, r := range ctx.Rows {
				if r.RecordStatus() == "draft" && r.EffectiveTime().Before(cutoff) {
					return true
				}
			}
			return false
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Draft reports older than a week are holding up the packet. Request final sign-off.",
				Kind:       "documentation",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "packet-ready",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Total > 0 && ctx.KPIs.Rates["final"] >= 0.8 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Over 80% of reports are finalized. The packet is nearly ready to send.",
				Kind:       "documentation",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var lienLedgerRules = []insight.Rule{
	{
		Name: "stale-pending",
		When: func(ctx insight.Context) bool {
			cutoff := ctx.Pivot.AddDate(0, 0, -30)
			for _, r := range ctx.Rows {
				if r.RecordStatus() == "pending" && r.EffectiveTime().Before(cutoff) {
					return true
				}
			}
			return false
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Liens have been pending for more than 30 days. Chase outstanding signatures.",
				Kind:       "financial",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "active-exposure",
		When: func(ctx insight.Context) bool { return ctx.KPIs.AmountCents["active"] > 100000000 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("Active lien exposure is %s. Review concentration by attorney before funding more.", dollars(ctx.KPIs.AmountCents["active"])),
				Kind:       "financial",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "settlement-momentum",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["settled"] > 0.3 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Settlement rate is above 30% for this window.",
				Kind:       "financial",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var slotsRules = []insight.Rule{
	{
		Name: "held-expiring",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["held"] > 5 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d held slots have not been confirmed. Release or book them before they expire.", ctx.KPIs.ByStatus["held"]),
				Kind:       "capacity",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "idle-capacity",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["free"] > 0.4 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%.0f%% of slots are open. Notify high-volume referrers about same-week availability.", ctx.KPIs.Rates["free"]*100),
				Kind:       "capacity",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "booked-out",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["booked"] > 0.8 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Schedule is more than 80% booked. Consider extending evening hours.",
				Kind:       "capacity",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
}

var attorneyRules = []insight.Rule{
	{
		Name: "aging-accidents",
		When: func(ctx insight.Context) bool {
			cutoff := ctx.Pivot.AddDate(0, 0, -180)
			for _, r := range ctx.Rows {
				if r.RecordStatus() == "pending" && r.EffectiveTime().Before(cutoff) {
					return true
				}
			}
			return false
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Pending liens tied to accidents older than six months risk statute issues. Review these cases first.",
				Kind:       "legal",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "portfolio-exposure",
		When: func(ctx insight.Context) bool { return ctx.KPIs.TotalAmount > 50000000 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("Total lien value across open cases is %s.", dollars(ctx.KPIs.TotalAmount)),
				Kind:       "financial",
				Priority:   insight.PriorityMedium,
				Actionable: false,
			}
		},
	},
	{
		Name: "released-wins",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["released"] > 0 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d liens were released this window.", ctx.KPIs.ByStatus["released"]),
				Kind:       "legal",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var imagingCenterRules = []insight.Rule{
	{
		Name: "underutilized-today",
		When: func(ctx insight.Context) bool {
			free := map[string]bool{"free": true}
			return countWithin(ctx, free, ctx.Pivot, ctx.Pivot.Add(24*time.Hour)) > 3
		},
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "More than three scanner slots are open in the next 24 hours. Offer them to the waitlist.",
				Kind:       "capacity",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "utilization-rate",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Total > 0 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("Scanner utilization is %.0f%% booked across this window.", ctx.KPIs.Rates["booked"]*100),
				Kind:       "capacity",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}

var referrerRules = []insight.Rule{
	{
		Name: "patient-no-shows",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["no-show"] > 2 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    fmt.Sprintf("%d of your referred patients missed appointments. A warm handoff call cuts no-shows.", ctx.KPIs.ByStatus["no-show"]),
				Kind:       "referral",
				Priority:   insight.PriorityHigh,
				Actionable: true,
			}
		},
	},
	{
		Name: "unscheduled-referrals",
		When: func(ctx insight.Context) bool { return ctx.KPIs.ByStatus["scheduled"] > ctx.KPIs.ByStatus["confirmed"] },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "More referrals are scheduled than confirmed. Patients may need a reminder to confirm.",
				Kind:       "referral",
				Priority:   insight.PriorityMedium,
				Actionable: true,
			}
		},
	},
	{
		Name: "turnaround-healthy",
		When: func(ctx insight.Context) bool { return ctx.KPIs.Rates["completed"] > 0.4 },
		Build: func(ctx insight.Context) insight.Insight {
			return insight.Insight{
				Message:    "Most referred studies in this window are already completed.",
				Kind:       "referral",
				Priority:   insight.PriorityLow,
				Actionable: false,
			}
		},
	},
}
