package utils

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestNewAccessToken(t *testing.T) {
	issued, err := NewAccessToken(testSecret, 42, "customer_service", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if issued.Token == "" {
		t.Fatalf("expected token")
	}
	if issued.JTI == "" {
		t.Fatalf("expected jti")
	}
	if issued.Exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseToken(testSecret, issued.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != 42 {
		t.Fatalf("subject mismatch: %d", claims.Subject)
	}
	if claims.Role != "customer_service" {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.Type != TokenTypeAccess {
		t.Fatalf("type mismatch: %s", claims.Type)
	}
	if claims.JTI != issued.JTI {
		t.Fatalf("jti mismatch: %s vs %s", claims.JTI, issued.JTI)
	}
}

func TestNewRefreshTokenCarriesRole(t *testing.T) {
	issued, err := NewRefreshToken(testSecret, 7, "admin", 3)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	claims, err := ParseToken(testSecret, issued.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Type != TokenTypeRefresh {
		t.Fatalf("expected refresh type, got %s", claims.Type)
	}
	if claims.Role != "admin" {
		t.Fatalf("refresh token must carry the role, got %q", claims.Role)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	issued, err := NewAccessToken(testSecret, 1, "customer", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseToken("other-secret", issued.Token); err == nil {
		t.Fatalf("expected failure with wrong secret")
	}
	if _, err := ParseToken(testSecret, "not-a-jwt"); err == nil {
		t.Fatalf("expected failure for garbage input")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	issued, err := NewAccessToken(testSecret, 1, "customer", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseToken(testSecret, issued.Token); err == nil {
		t.Fatalf("expected failure for expired token")
	}
}

func TestTokensGetUniqueJTIs(t *testing.T) {
	a, err := NewAccessToken(testSecret, 1, "customer", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	b, err := NewAccessToken(testSecret, 1, "customer", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if a.JTI == b.JTI {
		t.Fatalf("expected distinct jtis, both %s", a.JTI)
	}
}
