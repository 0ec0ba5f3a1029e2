package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/repository"
)

// LocationHandler serves the rate-card endpoints.  Creating and deleting
// rates is admin-only; the card itself is readable by anyone so customers
// can price a shipment before booking.
type LocationHandler struct {
	Locations *repository.LocationRepo
}

func NewLocationHandler(l *repository.LocationRepo) *LocationHandler {
	return &LocationHandler{Locations: l}
}

type locationResp struct {
	ID          uint64  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	CostPerKg   float64 `json:"cost_per_kg"`
}

func toLocationResp(l model.Location) locationResp {
	return locationResp{ID: l.ID, Origin: l.Origin, Destination: l.Destination, CostPerKg: l.CostPerKg}
}

// List handles GET /v1/locations (public).
func (h *LocationHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	locations, err := h.Locations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]locationResp, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResp(l))
	}
	return c.JSON(http.StatusOK, out)
}

type locationCreateReq struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	CostPerKg   float64 `json:"cost_per_kg"`
}

// Create handles POST /v1/locations (admin only).
func (h *LocationHandler) Create(c echo.Context) error {
	var req locationCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Origin == "" || req.Destination == "" || req.CostPerKg <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter the origin, destination and cost_per_kg"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l := model.Location{Origin: req.Origin, Destination: req.Destination, CostPerKg: req.CostPerKg}
	if err := h.Locations.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
	}
	return c.JSON(http.StatusCreated, toLocationResp(l))
}

// DeleteAll handles DELETE /v1/locations (admin only): bulk reset of the
// rate card.
func (h *LocationHandler) DeleteAll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := h.Locations.DeleteAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No location is found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All locations have been deleted"})
}

// Get handles GET /v1/locations/:id (staff only).
func (h *LocationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No location is found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toLocationResp(l))
}

type locationUpdateReq struct {
	Origin      *string  `json:"origin"`
	Destination *string  `json:"destination"`
	CostPerKg   *float64 `json:"cost_per_kg"`
}

// Update handles PUT /v1/locations/:id (staff only).  Existing parcels keep
// their stored shipping cost; the new rate applies to parcels created or
// re-weighed afterwards.
func (h *LocationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req locationUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CostPerKg != nil && *req.CostPerKg <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost_per_kg must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	upd := repository.LocationUpdate{
		Origin:      req.Origin,
		Destination: req.Destination,
		CostPerKg:   req.CostPerKg,
	}
	if err := h.Locations.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No location is found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	l, err := h.Locations.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toLocationResp(l))
}

// Delete handles DELETE /v1/locations/:id (admin only).
func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Locations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No location is found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Location is deleted"})
}
