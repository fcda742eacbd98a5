package patient

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

	g.POST("/patients", h.Admit, auth.RequireRole(auth.RoleResident, auth.RoleHead))
	g.GET("/patients", h.List)
	g.GET("/patients/active", h.ListActive)
	g.GET("/patients/:id", h.Get)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Delete, auth.RequireRole(auth.RoleHead))
	g.POST("/patients/:id/discharge", h.Discharge, auth.RequireRole(auth.RoleResident, auth.RoleHead))

	g.GET("/archive", h.ListArchive)

	g.GET("/beds/:department", h.GetBeds)
	g.PUT("/beds/:department", h.UpdateBeds, auth.RequireRole(auth.RoleHead))
}

func (h *Handler) Admit(c echo.Context) error {
	var req AdmitRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	p, err := h.svc.Admit(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("patient")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	p, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	patients, err := h.svc.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*PatientRecord{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) ListActive(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	patients, err := h.svc.ListActive(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*PatientRecord{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("patient")
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	p, err := h.svc.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("patient")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type dischargeRequest struct {
	DischargeReason string `json:"discharge_reason"`
	Notes           string `json:"notes"`
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("patient")
	}
	var req dischargeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	rec, err := h.svc.Discharge(c.Request().Context(), actor, id, req.DischargeReason, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListArchive(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	recs, err := h.svc.ListArchive(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []*ArchiveRecord{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) GetBeds(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	counter, err := h.svc.GetBeds(c.Request().Context(), actor, c.Param("department"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counter)
}

func (h *Handler) UpdateBeds(c echo.Context) error {
	var req BedsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	counter, err := h.svc.UpdateBeds(c.Request().Context(), actor, c.Param("department"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counter)
}
