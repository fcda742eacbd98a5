package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/auth"
)

func TestHandler_Dashboard(t *testing.T) {
	svc := NewService(&mockRepo{total: 3, active: 2, archived: 1})
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/statistics/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), *surgeon())))

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var d Dashboard
	json.Unmarshal(rec.Body.Bytes(), &d)
	if d.TotalPatients != 3 || d.ActivePatients != 2 {
		t.Errorf("unexpected dashboard: %+v", d)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))
	e := echo.New()
	api := e.Group("/api")

	h.RegisterRoutes(api)

	found := false
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet && r.Path == "/api/statistics/dashboard" {
			found = true
		}
	}
	if !found {
		t.Error("missing route GET /api/statistics/dashboard")
	}
}
