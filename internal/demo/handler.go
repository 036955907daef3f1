package demo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mriguys/mriguys/internal/platform/auth"
)

// Handler exposes the simulated-time override. Changing the override calls
// onChange so memoized pivots re-anchor on the next render.
type Handler struct {
	store    OverrideStore
	onChange func()
	log      zerolog.Logger
}

func NewHandler(store OverrideStore, onChange func(), log zerolog.Logger) *Handler {
	return &Handler{store: store, onChange: onChange, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/demo/time", auth.RequireRole("admin", "ops"))
	g.GET("", h.GetOverride)
	g.PUT("", h.SetOverride)
	g.DELETE("", h.ClearOverride)
}

type overrideResponse struct {
	Override string `json:"override"`
	Active   bool   `json:"active"`
}

func (h *Handler) GetOverride(c echo.Context) error {
	iso := ReadOverride(c.Request().Context(), h.store)
	return c.JSON(http.StatusOK, overrideResponse{Override: iso, Active: iso != ""})
}

type setOverrideRequest struct {
	Override string `json:"override"`
}

func (h *Handler) SetOverride(c echo.Context) error {
	var req setOverrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := time.Parse(time.RFC3339, req.Override); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "override must be an RFC 3339 timestamp")
	}
	if err := h.store.Set(c.Request().Context(), req.Override); err != nil {
		h.log.Warn().Err(err).Msg("persisting time override failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store override")
	}
	if h.onChange != nil {
		h.onChange()
	}
	return c.JSON(http.StatusOK, overrideResponse{Override: req.Override, Active: true})
}

func (h *Handler) ClearOverride(c echo.Context) error {
	if err := h.store.Clear(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("clearing time override failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "could not clear override")
	}
	if h.onChange != nil {
		h.onChange()
	}
	return c.JSON(http.StatusOK, overrideResponse{})
}
