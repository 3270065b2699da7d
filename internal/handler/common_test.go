package handler

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.com", "x@sub.domain.io"}
	for _, s := range valid {
		if !validEmail(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com", "a@.com "}
	for _, s := range invalid {
		if validEmail(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func paginationCtx(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query       string
		limit, next int
	}{
		{"", 20, 0},
		{"limit=5&offset=10", 5, 10},
		{"limit=0", 20, 0},
		{"limit=-3&offset=-7", 20, 0},
		{"limit=bogus&offset=bogus", 20, 0},
		{"limit=1000", 100, 0},
	}
	for _, tc := range cases {
		limit, offset := parsePagination(paginationCtx(t, tc.query))
		if limit != tc.limit || offset != tc.next {
			t.Errorf("query %q: got (%d,%d), want (%d,%d)", tc.query, limit, offset, tc.limit, tc.next)
		}
	}
}

func TestMissingFields(t *testing.T) {
	got := missingFields("name", "", "email", "a@b.co", "subject", "  ", "message", "hi")
	want := []string{"name", "subject"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if m := missingFields("email", "a@b.co"); m != nil {
		t.Fatalf("expected nil for no missing fields, got %v", m)
	}
}
