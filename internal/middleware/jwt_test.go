package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/utils"
)

const testSecret = "test-secret"

// fakeChecker implements RevocationChecker with a fixed set of revoked jtis.
type fakeChecker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeChecker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func runAuthed(t *testing.T, authHeader string, checker RevocationChecker) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/parcels", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := JWTAuth(testSecret, checker)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, captured
}

func TestJWTAuthMissingBearer(t *testing.T) {
	rec, _ := runAuthed(t, "", &fakeChecker{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	issued, err := utils.NewAccessToken(testSecret, 9, "admin", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec, c := runAuthed(t, "Bearer "+issued.Token, &fakeChecker{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uid, _ := c.Get(CtxUserID).(uint64); uid != 9 {
		t.Fatalf("user_id not set, got %v", c.Get(CtxUserID))
	}
	if role, _ := c.Get(CtxRole).(string); role != "admin" {
		t.Fatalf("role not set, got %v", c.Get(CtxRole))
	}
	if jti, _ := c.Get(CtxJTI).(string); jti != issued.JTI {
		t.Fatalf("jti not set, got %v", c.Get(CtxJTI))
	}
}

func TestJWTAuthRevokedToken(t *testing.T) {
	issued, err := utils.NewAccessToken(testSecret, 9, "admin", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	checker := &fakeChecker{revoked: map[string]bool{issued.JTI: true}}
	rec, _ := runAuthed(t, "Bearer "+issued.Token, checker)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token must be rejected before expiry, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	issued, err := utils.NewRefreshToken(testSecret, 9, "admin", 3)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	rec, _ := runAuthed(t, "Bearer "+issued.Token, &fakeChecker{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not authenticate requests, got %d", rec.Code)
	}
}

func TestJWTAuthFailsClosedOnLedgerError(t *testing.T) {
	issued, err := utils.NewAccessToken(testSecret, 9, "admin", 120)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	checker := &fakeChecker{err: context.DeadlineExceeded}
	rec, _ := runAuthed(t, "Bearer "+issued.Token, checker)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("ledger errors must fail closed, got %d", rec.Code)
	}
}
