package chat

import (
	"net/http"

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
	api.POST("/chat", h.Chat)
	api.GET("/chat/conversations", h.ListConversations)
	api.GET("/chat/conversations/:conversation_id/messages", h.GetMessages)
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	callerID := auth.PatientIDFromContext(c.Request().Context())
	resp, err := h.svc.Chat(c.Request().Context(), callerID, &req)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListConversations(c echo.Context) error {
	pg := pagination.FromContext(c)
	callerID := auth.PatientIDFromContext(c.Request().Context())
	items, total, err := h.svc.ListConversations(c.Request().Context(), callerID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetMessages(c echo.Context) error {
	callerID := auth.PatientIDFromContext(c.Request().Context())
	msgs, err := h.svc.History(c.Request().Context(), callerID, c.Param("conversation_id"))
	if err != nil {
		return echo.NewHTTPError(errs.Status(err), errs.ClientMessage(err))
	}
	if msgs == nil {
		msgs = []*Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}
