package appointment

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
	"github.com/carely/portal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.CancelAppointment)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	a, err := h.svc.Create(c.Request().Context(), callerID, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		if !auth.Owns(callerID, id) {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized to view other patients' appointments")
		}
	}
	items, total, err := h.svc.List(c.Request().Context(), callerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	a, err := h.svc.Get(c.Request().Context(), callerID, id)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	a, err := h.svc.Update(c.Request().Context(), callerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if err := h.svc.Cancel(c.Request().Context(), callerID, id); err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.NoContent(http.StatusNoContent)
}
