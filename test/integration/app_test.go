package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mriguys/mriguys/internal/demo"
	"github.com/mriguys/mriguys/internal/platform/analytics"
	"github.com/mriguys/mriguys/internal/platform/auth"
	"github.com/mriguys/mriguys/internal/platform/live"
	"github.com/mriguys/mriguys/internal/platform/middleware"
	"github.com/mriguys/mriguys/internal/records"
	"github.com/mriguys/mriguys/internal/views"
)

var signingKey = []byte("integration-test-key")

// clock is pinned close to the fixture window so anchoring stays inside it.
var clock = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func token(t *testing.T, roles ...string) string {
	t.Helper()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "it-user",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: roles,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// newApp assembles the server the same way the serve command does, on an
// in-memory store with the baseline fixtures.
func newApp(t *testing.T) *echo.Echo {
	t.Helper()

	repo := records.NewMemoryRepository()
	if err := demo.Seed(context.Background(), repo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	overrides := demo.NewMemoryOverrideStore()
	logger := zerolog.Nop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	usage := analytics.NewTracker()
	e.Use(analytics.Middleware(usage))

	apiV1 := e.Group("/api/v1", auth.JWTMiddleware(auth.JWTConfig{SigningKey: signingKey}))

	hub := live.NewHub(logger)
	live.NewHandler(hub).RegisterRoutes(apiV1)

	svc := views.NewService(repo, overrides, logger).
		WithClock(func() time.Time { return clock })
	views.NewHandler(svc).RegisterRoutes(apiV1)

	onClockChange := func() {
		svc.InvalidatePivots()
		hub.NotifyClockChanged()
	}
	demo.NewHandler(overrides, onClockChange, logger).RegisterRoutes(apiV1)
	analytics.NewHandler(usage).RegisterRoutes(apiV1)

	return e
}

func do(e *echo.Echo, method, path, bearer, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthNeedsNoAuth(t *testing.T) {
	rec := do(newApp(t), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestViewsRequireAuth(t *testing.T) {
	rec := do(newApp(t), http.MethodGet, "/api/v1/views/worklist", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestViewRoleGate(t *testing.T) {
	e := newApp(t)

	rec := do(e, http.MethodGet, "/api/v1/views/worklist", token(t, "patient"), "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("patient on worklist: status = %d, want 403", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/v1/views/worklist", token(t, "ops"), "")
	if rec.Code != http.StatusOK {
		t.Errorf("ops on worklist: status = %d, want 200", rec.Code)
	}
}

func TestAdminReachesEveryView(t *testing.T) {
	e := newApp(t)
	admin := token(t, "admin")
	for _, v := range views.All() {
		rec := do(e, http.MethodGet, "/api/v1/views/"+v.Name, admin, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, body %s", v.Name, rec.Code, rec.Body.String())
		}
	}
}

func TestViewRendersSeededData(t *testing.T) {
	rec := do(newApp(t), http.MethodGet, "/api/v1/views/worklist?limit=100", token(t, "ops"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Pivot time.Time `json:"pivot"`
		Rows  []struct {
			PublicID    string `json:"public_id"`
			IsSynthetic bool   `json:"is_synthetic"`
		} `json:"rows"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total == 0 {
		t.Fatal("no rows rendered from the fixture set")
	}
	if body.Pivot.IsZero() {
		t.Fatal("pivot missing")
	}

	var real int
	for _, r := range body.Rows {
		if !r.IsSynthetic {
			real++
		}
	}
	if real == 0 {
		t.Error("expected seeded fixtures among the rendered rows")
	}
}

func TestDemoTimeScrub(t *testing.T) {
	e := newApp(t)
	admin := token(t, "admin")

	before := do(e, http.MethodGet, "/api/v1/views/worklist", token(t, "ops"), "")
	var first struct {
		Pivot time.Time `json:"pivot"`
	}
	if err := json.Unmarshal(before.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}

	override := "2025-06-02T09:00:00Z"
	rec := do(e, http.MethodPut, "/api/v1/demo/time", admin, `{"override":"`+override+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("scrub status = %d, body %s", rec.Code, rec.Body.String())
	}

	after := do(e, http.MethodGet, "/api/v1/views/worklist", token(t, "ops"), "")
	var second struct {
		Pivot time.Time `json:"pivot"`
	}
	if err := json.Unmarshal(after.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.Pivot.Equal(first.Pivot) {
		t.Error("pivot did not move after scrubbing the demo clock")
	}

	rec = do(e, http.MethodDelete, "/api/v1/demo/time", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}

	restored := do(e, http.MethodGet, "/api/v1/views/worklist", token(t, "ops"), "")
	var third struct {
		Pivot time.Time `json:"pivot"`
	}
	if err := json.Unmarshal(restored.Body.Bytes(), &third); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !third.Pivot.Equal(first.Pivot) {
		t.Errorf("pivot = %v after clear, want %v", third.Pivot, first.Pivot)
	}
}

func TestDemoTimeGate(t *testing.T) {
	rec := do(newApp(t), http.MethodPut, "/api/v1/demo/time",
		token(t, "patient"), `{"override":"2025-06-02T09:00:00Z"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestUsageReport(t *testing.T) {
	e := newApp(t)
	ops := token(t, "ops")
	do(e, http.MethodGet, "/api/v1/views/worklist", ops, "")

	rec := do(e, http.MethodGet, "/api/v1/usage", ops, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "worklist") {
		t.Error("usage report missing the rendered view")
	}
}

func TestUnknownViewIs404(t *testing.T) {
	rec := do(newApp(t), http.MethodGet, "/api/v1/views/nope", token(t, "admin"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
