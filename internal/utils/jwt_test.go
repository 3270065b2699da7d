package utils

import (
	"strings"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	claims := SessionClaims{UserID: 42, Email: "creator@example.com", UserType: "creator", ProfileID: 7}
	tok, err := NewSessionToken("secret", claims, 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected a non-empty token")
	}
	if until := time.Until(tok.Exp); until < 6*24*time.Hour {
		t.Fatalf("expected ~7 day expiry, got %v", until)
	}

	got, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if got != claims {
		t.Fatalf("claims mismatch: got %+v want %+v", got, claims)
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", SessionClaims{UserID: 1, Email: "a@b.co", UserType: "brand"}, 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, err := ParseSessionToken("other-secret", tok.Token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionTokenTampered(t *testing.T) {
	tok, err := NewSessionToken("secret", SessionClaims{UserID: 1, Email: "a@b.co", UserType: "brand"}, 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	parts := strings.Split(tok.Token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok.Token)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	if _, err := ParseSessionToken("secret", tampered); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

func TestParseSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken("secret", "not-a-token"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
