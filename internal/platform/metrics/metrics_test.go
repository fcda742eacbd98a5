package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddleware_RecordsRequests(t *testing.T) {
	p := NewProvider()

	e := echo.New()
	e.Use(p.Middleware())
	e.GET("/patients/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", p.Handler())

	req := httptest.NewRequest(http.MethodGet, "/patients/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/patients/:id",status="200"} 1`) {
		t.Errorf("request counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(body, "http_request_duration_seconds_bucket") {
		t.Errorf("duration histogram missing from exposition")
	}
}

func TestMiddleware_CountsErrorStatus(t *testing.T) {
	p := NewProvider()

	e := echo.New()
	e.Use(p.Middleware())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})
	e.GET("/metrics", p.Handler())

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `status="404"`) {
		t.Errorf("error status not recorded:\n%s", rec.Body.String())
	}
}

func TestDomainInstruments(t *testing.T) {
	p := NewProvider()
	p.SetOccupiedBeds("surgery", 12)
	p.RecordAdmission("surgery")
	p.RecordDischarge("improved")

	e := echo.New()
	e.GET("/metrics", p.Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`department_occupied_beds{department="surgery"} 12`,
		`patient_admissions_total{department="surgery"} 1`,
		`patient_discharges_total{reason="improved"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in exposition:\n%s", want, body)
		}
	}
}

func TestNewProvider_IndependentRegistries(t *testing.T) {
	// Two providers must not collide on registration.
	a := NewProvider()
	b := NewProvider()
	a.RecordAdmission("surgery")
	b.RecordAdmission("surgery")
}
