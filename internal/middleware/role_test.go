package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runWithRole(t *testing.T, role any, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/locations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    any
		allowed []string
		want    int
	}{
		{"admin allowed", "admin", []string{"admin"}, http.StatusOK},
		{"customer forbidden", "customer", []string{"admin"}, http.StatusForbidden},
		{"staff list admits customer_service", "customer_service", []string{"admin", "customer_service"}, http.StatusOK},
		{"missing role forbidden", nil, []string{"admin"}, http.StatusForbidden},
		{"non-string role forbidden", 12, []string{"admin"}, http.StatusForbidden},
		{"unknown role forbidden", "driver", []string{"admin", "customer_service", "customer"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runWithRole(t, tc.role, tc.allowed...)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
