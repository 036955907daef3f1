package views

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mriguys/mriguys/internal/insight"
	"github.com/mriguys/mriguys/internal/platform/auth"
	"github.com/mriguys/mriguys/internal/projection"
	"github.com/mriguys/mriguys/internal/records"
	"github.com/mriguys/mriguys/pkg/pagination"
)

// fieldParams are the kind-specific equality filters accepted on the query
// string. Unknown params are ignored; a record kind that has no such field
// simply never matches when the filter is set.
var fieldParams = []string{
	"modality", "center", "body_part", "referrer",
	"payer", "attorney", "funder", "radiologist",
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts one GET route per view, each gated on the view's
// role list.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	for _, v := range All() {
		view := v
		api.GET("/views/"+view.Name, func(c echo.Context) error {
			return h.render(c, view)
		}, auth.RequireRole(view.Roles...))
	}
}

// viewResponse is the wire shape: pivot, KPIs, and insights describe the
// full filtered set; rows carry only the requested page.
type viewResponse struct {
	Pivot    time.Time         `json:"pivot"`
	Rows     []records.Record  `json:"rows"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	HasMore  bool              `json:"has_more"`
	KPIs     projection.KPISet `json:"kpis"`
	Insights []insight.Insight `json:"insights,omitempty"`
	Tip      *insight.Insight  `json:"tip,omitempty"`
}

func (h *Handler) render(c echo.Context, v View) error {
	f, err := filtersFromRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sortSpec := v.Sort
	switch c.QueryParam("sort") {
	case "asc":
		sortSpec.Descending = false
	case "desc":
		sortSpec.Descending = true
	}
	view := v
	view.Sort = sortSpec

	res := h.svc.Render(c.Request().Context(), view, f)

	// Paginate after KPI computation. Totals and insights always reflect
	// the whole filtered set, not the page.
	p := pagination.FromContext(c)
	total := len(res.Rows)
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, viewResponse{
		Pivot:    res.Pivot,
		Rows:     res.Rows[start:end],
		Total:    total,
		Limit:    p.Limit,
		Offset:   p.Offset,
		HasMore:  p.HasNext(total),
		KPIs:     res.KPIs,
		Insights: res.Insights,
		Tip:      res.Tip,
	})
}

func filtersFromRequest(c echo.Context) (projection.FilterSet, error) {
	f := projection.FilterSet{
		Search: c.QueryParam("q"),
		Status: c.QueryParam("status"),
		Range:  projection.DateRange(c.QueryParam("range")),
	}
	if f.Search == "" {
		f.Search = c.QueryParam("search")
	}

	switch f.Range {
	case "", projection.RangeAll, projection.RangeToday,
		projection.RangeThisWeek, projection.RangeThisMonth:
	case projection.RangeCustom:
		var err error
		if from := c.QueryParam("from"); from != "" {
			f.From, err = time.Parse(time.RFC3339, from)
			if err != nil {
				f.From, err = time.Parse("2006-01-02", from)
			}
			if err != nil {
				return f, fmt.Errorf("invalid from date: %q", from)
			}
		}
		if to := c.QueryParam("to"); to != "" {
			f.To, err = time.Parse(time.RFC3339, to)
			if err != nil {
				f.To, err = time.Parse("2006-01-02", to)
			}
			if err != nil {
				return f, fmt.Errorf("invalid to date: %q", to)
			}
		}
	default:
		return f, fmt.Errorf("unknown range %q", f.Range)
	}

	for _, name := range fieldParams {
		if v := c.QueryParam(name); v != "" {
			if f.Fields == nil {
				f.Fields = make(map[string]string)
			}
			f.Fields[name] = v
		}
	}
	return f, nil
}
