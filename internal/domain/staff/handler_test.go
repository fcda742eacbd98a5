package staff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo, *auth.MemorySessionStore) {
	store := auth.NewMemorySessionStore(time.Hour)
	svc := NewService(newMockRepo())
	h := NewHandler(svc, store, nil, "surgward_session", time.Hour)
	e := echo.New()
	return h, e, store
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, id auth.Identity) echo.Context {
	c := e.NewContext(req, rec)
	c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), id)))
	return c
}

func TestHandler_Register(t *testing.T) {
	h, e, store := newTestHandler()

	body := `{"email":"reg@hospital.test","password":"pw","display_name":"Dr. Reg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not carry password material")
	}

	// Registration logs the caller in.
	var sessionCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "surgward_session" {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected session cookie on register")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if id, err := store.Get(req.Context(), sessionCookie.Value); err != nil || id.Role != auth.RoleSurgeon {
		t.Errorf("expected live surgeon session, got %v / %v", id, err)
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	h, e, _ := newTestHandler()

	for i := 0; i < 2; i++ {
		body := `{"email":"dup@hospital.test","password":"pw","display_name":"Dr. Dup"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.Register(c)
		if i == 0 && err != nil {
			t.Fatalf("first register failed: %v", err)
		}
		if i == 1 && err == nil {
			t.Error("expected error for duplicate email")
		}
	}
}

func TestHandler_Login(t *testing.T) {
	h, e, _ := newTestHandler()

	if _, err := h.svc.Register(nil, RegisterRequest{
		Email: "dr@hospital.test", Password: "pw", DisplayName: "Dr.",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	body := `{"email":"dr@hospital.test","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.User == nil || resp.User.Email != "dr@hospital.test" {
		t.Errorf("unexpected login payload: %+v", resp)
	}
}

func TestHandler_Login_IssuesBearerToken(t *testing.T) {
	store := auth.NewMemorySessionStore(time.Hour)
	issuer := auth.NewTokenIssuer([]byte("test-signing-key"), time.Hour)
	svc := NewService(newMockRepo())
	h := NewHandler(svc, store, issuer, "surgward_session", time.Hour)
	e := echo.New()

	if _, err := svc.Register(nil, RegisterRequest{
		Email: "mob@hospital.test", Password: "pw", DisplayName: "Dr. Mobile",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	body := `{"email":"mob@hospital.test","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp loginResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatal("expected bearer token in login response")
	}
	if id, err := issuer.Verify(resp.Token); err != nil || id.DisplayName != "Dr. Mobile" {
		t.Errorf("token did not verify: %v / %v", id, err)
	}
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	h, e, _ := newTestHandler()

	if _, err := h.svc.Register(nil, RegisterRequest{
		Email: "dr@hospital.test", Password: "pw", DisplayName: "Dr.",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	body := `{"email":"dr@hospital.test","password":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestHandler_Me(t *testing.T) {
	h, e, _ := newTestHandler()

	acc, err := h.svc.Register(nil, RegisterRequest{
		Email: "me@hospital.test", Password: "pw", DisplayName: "Dr. Me",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, acc.Identity())

	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var got StaffAccount
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Email != "me@hospital.test" {
		t.Errorf("unexpected account: %+v", got)
	}
}

func TestHandler_Me_Anonymous(t *testing.T) {
	h, e, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err == nil {
		t.Error("expected error for anonymous caller")
	}
}

func TestHandler_Logout_DestroysSession(t *testing.T) {
	h, e, store := newTestHandler()

	token, err := store.Create(nil, auth.Identity{StaffID: uuid.New(), Role: auth.RoleSurgeon})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "surgward_session", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(req.Context(), token); err == nil {
		t.Error("session should be gone after logout")
	}
}

func TestHandler_UpdateRole(t *testing.T) {
	h, e, _ := newTestHandler()

	acc, err := h.svc.Register(nil, RegisterRequest{
		Email: "t@hospital.test", Password: "pw", DisplayName: "T",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	body := `{"role":"resident"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, auth.Identity{StaffID: uuid.New(), Role: auth.RoleHead})
	c.SetParamNames("id")
	c.SetParamValues(acc.ID.String())

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got StaffAccount
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Role != auth.RoleResident {
		t.Errorf("expected resident, got %s", got.Role)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e, _ := newTestHandler()
	api := e.Group("/api")

	h.RegisterRoutes(api)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Method+":"+r.Path] = true
	}

	expected := []string{
		"POST:/api/auth/register",
		"POST:/api/auth/login",
		"GET:/api/auth/me",
		"POST:/api/auth/logout",
		"GET:/api/users",
		"PUT:/api/users/:id/role",
	}
	for _, path := range expected {
		if !routePaths[path] {
			t.Errorf("missing expected route: %s", path)
		}
	}
}
