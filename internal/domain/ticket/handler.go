package ticket

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
	api.POST("/support-tickets", h.CreateTicket)
	api.GET("/support-tickets", h.ListTickets)
	api.GET("/support-tickets/:id", h.GetTicket)
	api.GET("/support-tickets/number/:ticket_number", h.GetTicketByNumber)
	api.PUT("/support-tickets/:id", h.UpdateTicket)
}

func (h *Handler) CreateTicket(c echo.Context) error {
	var req CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	t, err := h.svc.Create(c.Request().Context(), callerID, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTickets(c echo.Context) error {
	pg := pagination.FromContext(c)
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		if !auth.Owns(callerID, id) {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized to view other patients' tickets")
		}
	}
	items, total, err := h.svc.List(c.Request().Context(), callerID, c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetTicket(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	t, err := h.svc.Get(c.Request().Context(), callerID, id)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) GetTicketByNumber(c echo.Context) error {
	callerID := auth.PatientIDFromContext(c.Request().Context())
	t, err := h.svc.GetByNumber(c.Request().Context(), callerID, c.Param("ticket_number"))
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTicket(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	t, err := h.svc.Update(c.Request().Context(), callerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, t)
}
