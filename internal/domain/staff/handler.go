package staff

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type Handler struct {
	svc        *Service
	sessions   auth.SessionStore
	issuer     *auth.TokenIssuer
	cookieName string
	sessionTTL time.Duration
}

func NewHandler(svc *Service, sessions auth.SessionStore, issuer *auth.TokenIssuer, cookieName string, sessionTTL time.Duration) *Handler {
	return &Handler{
		svc:        svc,
		sessions:   sessions,
		issuer:     issuer,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", auth.RequireSession())
	authed.GET("/auth/me", h.Me)
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/users", h.ListUsers)

	api.PUT("/users/:id/role", h.UpdateRole, auth.RequireSession(), auth.RequireRole(auth.RoleHead))
}

// Register creates an account and opens a session for it, so a newly
// registered staff member is logged in immediately.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}

	acc, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	if err := h.openSession(c, acc); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, acc)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *StaffAccount `json:"user"`
	Token string        `json:"token,omitempty"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}

	acc, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.openSession(c, acc); err != nil {
		return err
	}

	resp := loginResponse{User: acc}
	if h.issuer != nil {
		// Bearer token for clients that cannot hold cookies.
		if token, err := h.issuer.Issue(acc.Identity()); err == nil {
			resp.Token = token
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Me(c echo.Context) error {
	id := auth.IdentityFromContext(c.Request().Context())
	if id == nil {
		return apperr.ErrUnauthenticated
	}
	acc, err := h.svc.GetAccount(c.Request().Context(), id, id.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		_ = h.sessions.Delete(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) ListUsers(c echo.Context) error {
	id := auth.IdentityFromContext(c.Request().Context())
	accs, err := h.svc.ListAccounts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if accs == nil {
		accs = []*StaffAccount{}
	}
	return c.JSON(http.StatusOK, accs)
}

type updateRoleRequest struct {
	Role auth.Role `json:"role"`
}

func (h *Handler) UpdateRole(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("id", "invalid account id")
	}
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("", "malformed request body")
	}

	actor := auth.IdentityFromContext(c.Request().Context())
	acc, err := h.svc.ChangeRole(c.Request().Context(), actor, targetID, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *Handler) openSession(c echo.Context, acc *StaffAccount) error {
	token, err := h.sessions.Create(c.Request().Context(), acc.Identity())
	if err != nil {
		return apperr.Storef("create session", err)
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})
	return nil
}
