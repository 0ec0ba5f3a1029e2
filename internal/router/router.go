// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/handler"
	"github.com/matwana/logistics/internal/metrics"
)

// RegisterRoutes registers routes that carry no authentication at all: the
// health check, the prometheus scrape endpoint, and the public browse
// endpoints (vehicle fleet and the rate card), which the original service
// exposed without a token so customers can price a shipment before signing
// up.
func RegisterRoutes(e *echo.Echo, v *handler.VehicleHandler, l *handler.LocationHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", metrics.Handler())

	e.GET("/v1/vehicles", v.List)
	e.GET("/v1/locations", l.List)
}
