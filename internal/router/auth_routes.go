package router

import (
	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/handler"
	"github.com/matwana/logistics/internal/middleware"
)

// RegisterAuth registers the authentication endpoints.  Signup, login and
// refresh live under /v1/auth without middleware; identity and logout
// require a valid, non-revoked access token.  Logout deliberately skips the
// role gate: any authenticated user may end their own session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, revoked middleware.RevocationChecker) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	authed := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret, revoked))
	authed.GET("/identity", a.Identity)
	authed.POST("/logout", a.Logout)
}
