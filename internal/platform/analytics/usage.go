// Package analytics records per-view request usage in memory and exposes it
// on an operator endpoint. Counters reset on restart; durable metrics are
// out of scope for the demo deployment.
package analytics

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mriguys/mriguys/internal/platform/auth"
)

type viewStats struct {
	requests  int64
	errors    int64
	totalTime time.Duration
	lastSeen  time.Time
}

// Tracker accumulates usage counters keyed by view name.
type Tracker struct {
	mu      sync.Mutex
	views   map[string]*viewStats
	started time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		views:   make(map[string]*viewStats),
		started: time.Now(),
	}
}

// Record adds one request observation for a view.
func (t *Tracker) Record(view string, status int, took time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	vs := t.views[view]
	if vs == nil {
		vs = &viewStats{}
		t.views[view] = vs
	}
	vs.requests++
	if status >= http.StatusBadRequest {
		vs.errors++
	}
	vs.totalTime += took
	vs.lastSeen = time.Now()
}

// ViewSummary is the wire shape for one view's counters.
type ViewSummary struct {
	View          string    `json:"view"`
	Requests      int64     `json:"requests"`
	Errors        int64     `json:"errors"`
	AvgLatencyMS  float64   `json:"avg_latency_ms"`
	LastRequestAt time.Time `json:"last_request_at"`
}

// Overview is the full usage report.
type Overview struct {
	Since         time.Time     `json:"since"`
	TotalRequests int64         `json:"total_requests"`
	TotalErrors   int64         `json:"total_errors"`
	Views         []ViewSummary `json:"views"`
}

// Overview snapshots the counters, busiest view first.
func (t *Tracker) Overview() Overview {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := Overview{Since: t.started, Views: make([]ViewSummary, 0, len(t.views))}
	for name, vs := range t.views {
		s := ViewSummary{
			View:          name,
			Requests:      vs.requests,
			Errors:        vs.errors,
			LastRequestAt: vs.lastSeen,
		}
		if vs.requests > 0 {
			s.AvgLatencyMS = float64(vs.totalTime.Milliseconds()) / float64(vs.requests)
		}
		out.TotalRequests += vs.requests
		out.TotalErrors += vs.errors
		out.Views = append(out.Views, s)
	}
	sort.Slice(out.Views, func(i, j int) bool {
		if out.Views[i].Requests != out.Views[j].Requests {
			return out.Views[i].Requests > out.Views[j].Requests
		}
		return out.Views[i].View < out.Views[j].View
	})
	return out
}

// Middleware records usage for view routes and passes everything else
// through untouched.
func Middleware(t *Tracker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			view := viewFromPath(c.Request().URL.Path)
			if view == "" {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			t.Record(view, status, time.Since(start))
			return err
		}
	}
}

// viewFromPath extracts the view name from /api/v1/views/<name>.
func viewFromPath(path string) string {
	const marker = "/views/"
	i := strings.Index(path, marker)
	if i < 0 {
		return ""
	}
	rest := path[i+len(marker):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// Handler serves the usage report to operators.
type Handler struct {
	tracker *Tracker
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/usage", h.GetOverview, auth.RequireRole("ops", "admin"))
}

func (h *Handler) GetOverview(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tracker.Overview())
}
