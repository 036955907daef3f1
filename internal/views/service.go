package views

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mriguys/mriguys/internal/demo"
	"github.com/mriguys/mriguys/internal/insight"
	"github.com/mriguys/mriguys/internal/projection"
	"github.com/mriguys/mriguys/internal/records"
)

// Service runs the full render pipeline for a view: anchor, enrich,
// project, evaluate. It owns no state beyond the pivot memo; everything
// else is re-derived per render.
type Service struct {
	repo      records.Repository
	overrides demo.OverrideStore
	anchor    *demo.Anchor
	now       func() time.Time
	tolerance int
	log       zerolog.Logger
}

func NewService(repo records.Repository, overrides demo.OverrideStore, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		overrides: overrides,
		anchor:    demo.NewAnchor(),
		now:       time.Now,
		tolerance: 14,
		log:       log,
	}
}

// WithClock replaces the wall clock. Tests use this to pin "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithToleranceDays overrides the default anchoring tolerance for views that
// do not set their own.
func (s *Service) WithToleranceDays(days int) *Service {
	if days > 0 {
		s.tolerance = days
	}
	return s
}

// Result is the rendered output handed to the transport layer.
type Result struct {
	Pivot    time.Time         `json:"pivot"`
	Rows     []records.Record  `json:"rows"`
	KPIs     projection.KPISet `json:"kpis"`
	Insights []insight.Insight `json:"insights,omitempty"`
	Tip      *insight.Insight  `json:"tip,omitempty"`
}

// Render executes the pipeline. A failing record fetch renders as an empty
// real set (the enricher then fills the window); a failing override read
// renders against real time. Nothing in here returns an error to the user.
func (s *Service) Render(ctx context.Context, v View, f projection.FilterSet) *Result {
	real, err := records.ListKind(ctx, s.repo, v.Kind)
	if err != nil {
		s.log.Warn().Err(err).Str("view", v.Name).Msg("record fetch failed, rendering empty set")
		real = nil
	}

	overrideISO := demo.ReadOverride(ctx, s.overrides)
	cfg := v.Enrich
	tolerance := cfg.ToleranceDays
	if tolerance <= 0 {
		tolerance = s.tolerance
	}

	pivot := s.anchor.Pivot(v.Name, overrideISO, s.now(), records.Timestamps(real), tolerance)
	enriched := demo.Enrich(real, pivot, cfg)

	f.Anchor = pivot
	proj := projection.Project(enriched, f, v.Sort)

	res := &Result{
		Pivot: pivot,
		Rows:  proj.Rows,
		KPIs:  proj.KPIs,
	}

	ictx := insight.Context{Pivot: pivot, Rows: proj.Rows, KPIs: proj.KPIs}
	if v.TopN > 0 {
		res.Insights = insight.TopN(ictx, v.Rules, v.TopN)
	} else {
		tip := insight.Best(ictx, v.Rules)
		res.Tip = &tip
	}
	return res
}

// InvalidatePivots drops all memoized pivots, forcing re-anchoring on the
// next render. Called when the demo-time override changes.
func (s *Service) InvalidatePivots() {
	s.anchor.InvalidateAll()
}
