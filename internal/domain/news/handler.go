package news

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

	g.POST("/news", h.Publish)
	g.GET("/news", h.List)
	g.GET("/news/:id", h.Get)
	g.PUT("/news/:id", h.Update)
	g.DELETE("/news/:id", h.Delete)

	g.POST("/comments", h.AddComment)
	g.GET("/comments/news/:newsId", h.ListComments)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func (h *Handler) Publish(c echo.Context) error {
	var req PublishRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	a, err := h.svc.Publish(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c echo.Context) error {
	actor := auth.IdentityFromContext(c.Request().Context())
	items, err := h.svc.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Announcement{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("announcement")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	a, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("announcement")
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	a, err := h.svc.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("announcement")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddComment(c echo.Context) error {
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	comment, err := h.svc.AddComment(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	newsID, err := uuid.Parse(c.Param("newsId"))
	if err != nil {
		return apperr.NotFoundf("announcement")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	comments, err := h.svc.ListComments(c.Request().Context(), actor, newsID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NotFoundf("comment")
	}
	actor := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.DeleteComment(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
