package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireSession())
	g.GET("/statistics/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	d, err := h.svc.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
