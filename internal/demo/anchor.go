// Package demo implements the demo-time pipeline: pivot-date anchoring
// against an optional simulated-time override, and deterministic synthetic
// record enrichment so sparse datasets still render a believable dashboard.
package demo

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// ResolvePivot resolves the anchor instant for a view render.
//
// overrideISO, when parseable as RFC 3339, replaces realNow as the base
// "now" so operators can simulate a different point in time. The pivot is
// then the candidate timestamp nearest to that base, provided it lies
// within toleranceDays; with no candidates, or the nearest one strictly
// farther than the tolerance, the base itself is returned. Malformed
// overrides and zero candidates never fail, they degrade to realNow.
func ResolvePivot(overrideISO string, realNow time.Time, candidates []time.Time, toleranceDays int) time.Time {
	base := realNow
	if overrideISO != "" {
		if t, err := time.Parse(time.RFC3339, overrideISO); err == nil {
			base = t
		}
	}

	var nearest time.Time
	best := time.Duration(-1)
	for _, c := range candidates {
		if c.IsZero() {
			continue
		}
		d := base.Sub(c)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
			nearest = c
		}
	}
	if best < 0 {
		return base
	}
	if best > time.Duration(toleranceDays)*24*time.Hour {
		return base
	}
	return nearest
}

type pivotEntry struct {
	fingerprint uint64
	pivot       time.Time
}

// Anchor memoizes resolved pivots per view so repeated renders with an
// unchanged record set and override keep the same pivot even as the real
// clock advances between renders. The memo key includes the real clock's
// calendar day, so a view with no usable candidates still rolls its "today"
// over at midnight instead of pinning to the first request's wall time.
// This is an optimization against visible jitter, not a correctness
// requirement: enrichment is hash-deterministic for a given pivot either
// way.
type Anchor struct {
	mu   sync.Mutex
	memo map[string]pivotEntry
}

func NewAnchor() *Anchor {
	return &Anchor{memo: make(map[string]pivotEntry)}
}

// Pivot returns the memoized pivot for the view, recomputing only when the
// override, the candidate set, or the real clock's day changed.
func (a *Anchor) Pivot(view, overrideISO string, realNow time.Time, candidates []time.Time, toleranceDays int) time.Time {
	fp := fingerprint(overrideISO, realNow, candidates, toleranceDays)

	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.memo[view]; ok && e.fingerprint == fp {
		return e.pivot
	}
	p := ResolvePivot(overrideISO, realNow, candidates, toleranceDays)
	a.memo[view] = pivotEntry{fingerprint: fp, pivot: p}
	return p
}

// Invalidate drops the memoized pivot for a view. Called when the override
// is changed so the next render re-anchors immediately.
func (a *Anchor) Invalidate(view string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.memo, view)
}

// InvalidateAll drops every memoized pivot.
func (a *Anchor) InvalidateAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.memo = make(map[string]pivotEntry)
}

func fingerprint(overrideISO string, realNow time.Time, candidates []time.Time, toleranceDays int) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d|", overrideISO, realNow.UTC().Format("2006-01-02"), toleranceDays)
	for _, c := range candidates {
		fmt.Fprintf(h, "%d,", c.UnixNano())
	}
	return h.Sum64()
}
