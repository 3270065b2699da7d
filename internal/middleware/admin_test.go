package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func adminProbe(t *testing.T, configured, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := AdminAuth(configured)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestAdminAuthAcceptsCorrectToken(t *testing.T) {
	rec := adminProbe(t, "s3cret", "Bearer s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsWrongToken(t *testing.T) {
	rec := adminProbe(t, "s3cret", "Bearer nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rec := adminProbe(t, "s3cret", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminAuthFailsClosedOnEmptyConfig(t *testing.T) {
	// an unset ADMIN_TOKEN must not open the admin surface
	rec := adminProbe(t, "", "Bearer ")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
