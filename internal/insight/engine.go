// Package insight evaluates ordered condition/suggestion rules against a
// projected record set and surfaces the highest-priority applicable
// suggestions ("AI Tips" / "AI Insights" panels). There is no model behind
// this: it is a fixed, ordered set of threshold rules.
package insight

import (
	"sort"
	"time"

	"github.com/mriguys/mriguys/internal/projection"
	"github.com/mriguys/mriguys/internal/records"
)

// Priority of an insight. Higher ordinal wins.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityOrdinal = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Insight is a single prioritized suggestion. Created fresh on every
// evaluation pass, never persisted, never mutated after creation.
type Insight struct {
	Message    string   `json:"message"`
	Kind       string   `json:"kind"`
	Priority   Priority `json:"priority"`
	Actionable bool     `json:"actionable"`
}

// Context is the read-only input rules evaluate against.
type Context struct {
	Pivot time.Time
	Rows  []records.Record
	KPIs  projection.KPISet
}

// Rule pairs a predicate with an insight builder. Declaration order within
// a view's rule list is the tie-break when priorities are equal, so lists
// should be declared most-urgent first.
type Rule struct {
	Name  string
	When  func(Context) bool
	Build func(Context) Insight
}

// DefaultInsight is returned by Best when no rule fires.
var DefaultInsight = Insight{
	Message:    "Everything looks on track. Check back after your next appointment.",
	Kind:       "general",
	Priority:   PriorityLow,
	Actionable: false,
}

// Evaluate runs every rule in declared order and returns the fired insights
// sorted by priority descending; equal priorities keep declaration order.
// A rule whose predicate or builder panics is skipped, never aborting the
// pass: one bad rule must not blank the panel.
func Evaluate(ctx Context, rules []Rule) []Insight {
	fired := make([]Insight, 0, len(rules))
	for _, r := range rules {
		if ins, ok := apply(ctx, r); ok {
			fired = append(fired, ins)
		}
	}
	sort.SliceStable(fired, func(i, j int) bool {
		return priorityOrdinal[fired[i].Priority] > priorityOrdinal[fired[j].Priority]
	})
	return fired
}

func apply(ctx Context, r Rule) (ins Insight, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if r.When == nil || r.Build == nil || !r.When(ctx) {
		return Insight{}, false
	}
	return r.Build(ctx), true
}

// Best returns the single highest-priority fired insight, or DefaultInsight
// when nothing fired (patient-facing "AI Tip" mode).
func Best(ctx Context, rules []Rule) Insight {
	fired := Evaluate(ctx, rules)
	if len(fired) == 0 {
		return DefaultInsight
	}
	return fired[0]
}

// TopN returns the first n sorted insights; an empty (non-nil) slice is the
// "no suggestions" sentinel (operator-facing panel mode).
func TopN(ctx Context, rules []Rule, n int) []Insight {
	fired := Evaluate(ctx, rules)
	if n < len(fired) {
		fired = fired[:n]
	}
	return fired
}
