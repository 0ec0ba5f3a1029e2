package router

import (
	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/handler"
	"github.com/matwana/logistics/internal/middleware"
	"github.com/matwana/logistics/internal/model"
)

// RegisterResources registers the protected CRUD surface.  Every route runs
// JWTAuth first (signature, expiry, revocation) and then a per-operation
// RequireRole allow-list, so a forbidden caller is rejected before the
// handler performs any read or write.
func RegisterResources(e *echo.Echo, jwtSecret string, revoked middleware.RevocationChecker,
	u *handler.UserHandler, p *handler.ParcelHandler, v *handler.VehicleHandler,
	l *handler.LocationHandler, a *handler.AssignmentHandler) {

	auth := middleware.JWTAuth(jwtSecret, revoked)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleCustomerService)
	admin := middleware.RequireRole(model.RoleAdmin)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleCustomerService, model.RoleCustomer)

	g := e.Group("/v1", auth)

	// ---- Users (staff; delete is admin-only) ----
	g.GET("/users", u.List, staff)
	g.POST("/users", u.Create, staff)
	g.GET("/users/:id", u.Get, staff)
	g.PUT("/users/:id", u.Update, staff)
	g.DELETE("/users/:id", u.Delete, admin)

	// ---- Parcels (read/delete by any role, create/update by staff) ----
	g.GET("/parcels", p.List, anyRole)
	g.POST("/parcels", p.Create, staff)
	g.GET("/parcels/:id", p.Get, anyRole)
	g.PUT("/parcels/:id", p.Update, staff)
	g.DELETE("/parcels/:id", p.Delete, anyRole)

	// ---- Vehicles (listing is public, see RegisterRoutes) ----
	g.POST("/vehicles", v.Create, staff)
	g.GET("/vehicles/:id", v.Get, staff)
	g.PUT("/vehicles/:id", v.Update, staff)
	g.DELETE("/vehicles/:id", v.Delete, staff)

	// ---- Locations / rate card (listing is public, see RegisterRoutes) ----
	g.POST("/locations", l.Create, admin)
	g.DELETE("/locations", l.DeleteAll, admin)
	g.GET("/locations/:id", l.Get, staff)
	g.PUT("/locations/:id", l.Update, staff)
	g.DELETE("/locations/:id", l.Delete, admin)

	// ---- Assignments (:id is a staff user id) ----
	g.GET("/assignments/:id", a.ListParcels, staff)
	g.DELETE("/assignments/:id", a.Delete, staff)
}
