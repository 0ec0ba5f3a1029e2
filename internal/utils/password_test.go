package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("p@ssw0rd123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	if hash == "p@ssw0rd123" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "p@ssw0rd123") {
		t.Fatalf("expected verify ok")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Fatalf("expected verify fail")
	}
}
