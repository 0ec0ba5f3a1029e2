package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated
// user's role is in the given allow-list.  The gate is pure: it reads the
// role claim stored in context by JWTAuth and performs no I/O.  It must run
// strictly after JWTAuth and strictly before the handler, so a forbidden
// caller is rejected before any side effect.  A missing or unknown role is
// treated the same as a disallowed one.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(CtxRole).(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "Access forbidden"})
            }
            return next(c)
        }
    }
}
