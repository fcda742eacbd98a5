package media

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/apperr"
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
	g.POST("/media", h.Create, auth.RequireRole(auth.RoleResident, auth.RoleHead))
	g.GET("/media/patient/:patientId", h.ListByPatient)
	g.DELETE("/media/:id", h.Delete, auth.RequireRole(auth.RoleResident, auth.RoleHead))
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	ref, err := h.svc.Create(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ref)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apperr.NotFoundf("patient")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	refs, err := h.svc.ListByPatient(c.Request().Context(), actor, patientID)
	if err != nil {
		return err
	}
	if refs == nil {
		refs = []*MediaReference{}
	}
	return c.JSON(http.StatusOK, refs)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("media reference")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
