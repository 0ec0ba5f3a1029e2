package handler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/middleware"
)

// dbTimeout bounds every handler-initiated database call.
const dbTimeout = 5 * time.Second

var errNoUser = errors.New("no authenticated user in context")

// reqCtx derives a timeout context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUserID extracts the authenticated user's id stored by the JWT
// middleware.
func currentUserID(c echo.Context) (uint64, error) {
	id, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || id == 0 {
		return 0, errNoUser
	}
	return id, nil
}
