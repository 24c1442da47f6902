package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
	"github.com/carely/portal/pkg/pagination"
)

type Handler struct {
	svc    *Service
	issuer *auth.TokenIssuer
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", h.Me)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeactivatePatient)
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Register(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	token, err := h.issuer.Issue(p.ID, p.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) Me(c echo.Context) error {
	callerID := auth.PatientIDFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), callerID, callerID)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

// ListPatients returns only the caller's own row; the portal has no
// cross-patient browsing.
func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	callerID := auth.PatientIDFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), callerID, callerID)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse([]*Patient{p}, 1, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), callerID, id)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdatePatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	p, err := h.svc.Update(c.Request().Context(), callerID, id, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeactivatePatient(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	if err := h.svc.Deactivate(c.Request().Context(), callerID, id); err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.NoContent(http.StatusNoContent)
}
