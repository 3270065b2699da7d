package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	// cost 4 keeps the test fast; production uses 12
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "hunter22") {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword(hash, "hunter23") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Fatal("expected malformed hash to fail verification")
	}
}
