package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/utils"
)

func TestSessionAuthSetsClaims(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", utils.SessionClaims{
		UserID: 9, Email: "c@example.com", UserType: "creator", ProfileID: 3,
	}, 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := SessionAuth("secret")(func(c echo.Context) error {
		if got := c.Get("user_id"); got != uint64(9) {
			t.Fatalf("user_id = %v", got)
		}
		if got := c.Get("user_type"); got != "creator" {
			t.Fatalf("user_type = %v", got)
		}
		if got := c.Get("profile_id"); got != uint64(3) {
			t.Fatalf("profile_id = %v", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := SessionAuth("secret")(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("next handler must not run without a token")
	}
}

func TestSessionAuthRejectsBadToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := SessionAuth("secret")(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUserType(t *testing.T) {
	e := echo.New()

	run := func(userType any) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if userType != nil {
			c.Set("user_type", userType)
		}
		h := RequireUserType("creator")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := run("creator"); code != http.StatusOK {
		t.Fatalf("creator: expected 200, got %d", code)
	}
	if code := run("brand"); code != http.StatusForbidden {
		t.Fatalf("brand: expected 403, got %d", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Fatalf("no type: expected 403, got %d", code)
	}
}
