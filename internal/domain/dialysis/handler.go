package dialysis

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/docstore"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "doctor", "nurse"))
	g.GET("/flow-charts", h.ListFlowCharts)
	g.POST("/flow-charts", h.CreateFlowChart)
	g.PUT("/flow-charts/:id", h.UpdateFlowChart)
	g.DELETE("/flow-charts/:id", h.DeleteFlowChart)
	g.GET("/haemodialysis-records", h.ListSessions)
	g.POST("/haemodialysis-records", h.CreateSession)
	g.PUT("/haemodialysis-records/:id", h.UpdateSession)
	g.DELETE("/haemodialysis-records/:id", h.DeleteSession)
}

// -- Flow chart handlers --

func (h *Handler) ListFlowCharts(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, err := h.svc.ListFlowCharts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page, total := pagination.Slice(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateFlowChart(c echo.Context) error {
	var f record.FlowChart
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.AddFlowChart(c.Request().Context(), &f)
	if err != nil {
		var verr *docstore.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateFlowChart(c echo.Context) error {
	var f record.FlowChart
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f.ID = c.Param("id")
	updated, err := h.svc.UpdateFlowChart(c.Request().Context(), &f)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "flow chart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteFlowChart(c echo.Context) error {
	if err := h.svc.DeleteFlowChart(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "flow chart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Session handlers --

func (h *Handler) ListSessions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, err := h.svc.ListSessions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page, total := pagination.Slice(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) CreateSession(c echo.Context) error {
	var hr record.HaemodialysisRecord
	if err := c.Bind(&hr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.AddSession(c.Request().Context(), &hr)
	if err != nil {
		var verr *docstore.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateSession(c echo.Context) error {
	var hr record.HaemodialysisRecord
	if err := c.Bind(&hr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hr.ID = c.Param("id")
	updated, err := h.svc.UpdateSession(c.Request().Context(), &hr)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "haemodialysis record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteSession(c echo.Context) error {
	if err := h.svc.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "haemodialysis record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
