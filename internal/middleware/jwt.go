package middleware // middleware provides shared request processing for handlers

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/matwana/logistics/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
    CtxUserID = "user_id"
    CtxRole   = "role"
    CtxJTI    = "jti"
)

// RevocationChecker answers whether a token id has been blocklisted.  The
// production implementation is service.Blocklist (MySQL ledger behind a
// Redis cache); tests substitute a fake.
type RevocationChecker interface {
    IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth returns an Echo middleware that authenticates a Bearer access
// token.  Checks run cheapest-first: signature and expiry (ParseToken), then
// token type, then the revocation ledger. A token is never trusted for
// authorization until the revocation check has passed.  On success the
// subject, role and jti claims are stored in the request context under
// CtxUserID, CtxRole and CtxJTI.  Any failure is a 401; the ledger being
// unreachable also fails closed.
func JWTAuth(secret string, revoked RevocationChecker) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.ParseToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            // Refresh tokens never authenticate a request directly.
            if claims.Type != utils.TokenTypeAccess {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.JTI)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not verify token"})
            }
            if isRevoked {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked"})
            }

            c.Set(CtxUserID, claims.Subject)
            c.Set(CtxRole, claims.Role)
            c.Set(CtxJTI, claims.JTI)
            return next(c)
        }
    }
}
