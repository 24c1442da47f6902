package record

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
	api.POST("/medical-records", h.CreateRecord)
	api.GET("/medical-records", h.ListRecords)
	api.GET("/medical-records/:id", h.GetRecord)
	api.PUT("/medical-records/:id", h.UpdateRecord)
	api.DELETE("/medical-records/:id", h.DeleteRecord)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var req CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	rec, err := h.svc.Create(c.Request().Context(), callerID, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		if !auth.Owns(callerID, id) {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized to view other patients' medical records")
		}
	}
	items, total, err := h.svc.List(c.Request().Context(), callerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	rec, err := h.svc.Get(c.Request().Context(), callerID, id)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	rec, err := h.svc.Update(c.Request().Context(), callerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), callerID, id); err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.NoContent(http.StatusNoContent)
}
