package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/faizanhere221/infoish-marketplace/internal/config"
)

func TestProxyForwardsRequestAndRelaysResponse(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/influencers" {
			t.Errorf("backend path = %q", r.URL.Path)
		}
		if r.URL.RawQuery != "query=fitness" {
			t.Errorf("backend query = %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer backend.Close()

	h := NewProxyHandler(config.Config{BackendURL: backend.URL})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search?query=fitness", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("Search: %v", err)
	}
	// status and body come back verbatim, whatever the backend said
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected relayed 418, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"results":[]}` {
		t.Fatalf("body = %q", body)
	}
}

func TestProxyForwardsBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"influencer_id":5}` {
			t.Errorf("backend body = %q", b)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5}`))
	}))
	defer backend.Close()

	h := NewProxyHandler(config.Config{BackendURL: backend.URL})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(`{"influencer_id":5}`))
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AddFavorite(c); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProxyRejectsMissingAuthWithoutContactingBackend(t *testing.T) {
	contacted := false
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contacted = true
	}))
	defer backend.Close()

	h := NewProxyHandler(config.Config{BackendURL: backend.URL})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListFavorites(c); err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if contacted {
		t.Fatal("backend must not be contacted without an Authorization header")
	}
}

func TestProxyBackendUnreachable(t *testing.T) {
	// a closed server guarantees a connection error
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	h := NewProxyHandler(config.Config{BackendURL: backend.URL})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/keys", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListKeys(c); err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "backend unreachable") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestGoogleAuthNeedsNoAuthorization(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"x"}`))
	}))
	defer backend.Close()

	h := NewProxyHandler(config.Config{BackendURL: backend.URL})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{"id_token":"y"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GoogleAuth(c); err != nil {
		t.Fatalf("GoogleAuth: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
