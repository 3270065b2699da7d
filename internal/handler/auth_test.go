package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
)

func authPost(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// Validation runs before any store access, so these cases need no
// database behind the handler.
func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil, nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing all", `{}`, "missing required fields: email, password, user_type"},
		{"missing password", `{"email":"a@b.co","user_type":"creator"}`, "missing required fields: password"},
		{"bad user_type", `{"email":"a@b.co","password":"longenough","user_type":"admin"}`, "invalid user_type"},
		{"bad email", `{"email":"nope","password":"longenough","user_type":"brand"}`, "invalid email format"},
		{"short password", `{"email":"a@b.co","password":"short","user_type":"creator"}`, "at least 8 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := authPost(t, h.Register, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Fatalf("body %q does not mention %q", rec.Body.String(), tc.want)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil, nil)
	rec := authPost(t, h.Login, `{"email":"a@b.co"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing required fields: password") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "auth_token" || ck.Value != "" || ck.MaxAge != -1 {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
}
