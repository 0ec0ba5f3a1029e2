package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/queue"
	"github.com/matwana/logistics/internal/repository"
	"github.com/matwana/logistics/internal/service"
)

// ParcelHandler serves the parcel CRUD endpoints.
type ParcelHandler struct {
	Parcels   *repository.ParcelRepo
	Users     *repository.UserRepo
	Locations *repository.LocationRepo
	Vehicles  *repository.VehicleRepo
}

func NewParcelHandler(p *repository.ParcelRepo, u *repository.UserRepo,
	l *repository.LocationRepo, v *repository.VehicleRepo) *ParcelHandler {
	return &ParcelHandler{Parcels: p, Users: u, Locations: l, Vehicles: v}
}

// parcelResp is the serialized form of a parcel.  It deliberately omits the
// assignment list: assignments back-reference parcels and serializing them
// would recurse.
type parcelResp struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	TrackingNumber string  `json:"tracking_number"`
	Weight         float64 `json:"weight"`
	Status         string  `json:"status"`
	ShippingCost   float64 `json:"shipping_cost"`
	SenderID       uint64  `json:"sender_id"`
	RecipientID    uint64  `json:"recipient_id"`
	LocationID     uint64  `json:"location_id"`
	VehicleID      *uint64 `json:"vehicle_id"`
	CreatedAt      string  `json:"created_at"`
}

func toParcelResp(p model.Parcel) parcelResp {
	out := parcelResp{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		TrackingNumber: p.TrackingNumber,
		Weight:         p.Weight,
		Status:         p.Status,
		ShippingCost:   p.ShippingCost,
		SenderID:       p.SenderID,
		RecipientID:    p.RecipientID,
		LocationID:     p.LocationID,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.VehicleID.Valid {
		v := uint64(p.VehicleID.Int64)
		out.VehicleID = &v
	}
	return out
}

// List handles GET /v1/parcels (any authenticated role).
func (h *ParcelHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	parcels, err := h.Parcels.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]parcelResp, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, toParcelResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

type parcelCreateReq struct {
	UserID         uint64  `json:"user_id"` // staff member responsible for the parcel
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	TrackingNumber string  `json:"tracking_number"`
	Weight         float64 `json:"weight"`
	Status         string  `json:"status"`
	SenderID       uint64  `json:"sender_id"`
	RecipientID    uint64  `json:"recipient_id"`
	LocationID     uint64  `json:"location_id"`
	VehicleID      *uint64 `json:"vehicle_id"`
}

// Create handles POST /v1/parcels (staff only).  The shipping cost is
// derived from the rate card (location.cost_per_kg * weight) and the staff
// assignment is written in the same transaction as the parcel.  A tracking
// number is generated when the client does not supply one.
func (h *ParcelHandler) Create(c echo.Context) error {
	var req parcelCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Description == "" || req.Weight <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter all parcel information"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// The assignee must exist and hold a staff role; assignments may only
	// belong to admin or customer_service users.
	assignee, err := h.Users.GetByID(ctx, req.UserID)
	if err != nil || !model.StaffRole(assignee.Role) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Invalid user id or insufficient permission"})
	}

	if _, err := h.Users.GetByID(ctx, req.SenderID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid sender details"})
	}
	if _, err := h.Users.GetByID(ctx, req.RecipientID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid recipient details"})
	}
	loc, err := h.Locations.GetByID(ctx, req.LocationID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid location details"})
	}

	p := model.Parcel{
		Name:           req.Name,
		Description:    req.Description,
		TrackingNumber: req.TrackingNumber,
		Weight:         req.Weight,
		Status:         req.Status,
		ShippingCost:   model.ShippingCost(loc.CostPerKg, req.Weight),
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		LocationID:     req.LocationID,
	}
	if p.TrackingNumber == "" {
		p.TrackingNumber = "MTW-" + uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.StatusPending
	}
	if req.VehicleID != nil {
		if _, err := h.Vehicles.GetByID(ctx, *req.VehicleID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid vehicle details"})
		}
		p.VehicleID = sql.NullInt64{Int64: int64(*req.VehicleID), Valid: true}
	}

	if err := h.Parcels.Create(ctx, &p, req.UserID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "tracking number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create parcel failed"})
	}

	// Advisory event; a broker outage never fails the request.
	pubCtx, pubCancel := context.WithTimeout(context.Background(), dbTimeout)
	defer pubCancel()
	_ = service.PublishParcelCreated(pubCtx, queue.ParcelCreatedEvent{
		ParcelID:       p.ID,
		TrackingNumber: p.TrackingNumber,
		SenderID:       p.SenderID,
		RecipientID:    p.RecipientID,
		LocationID:     p.LocationID,
		AssignedUserID: req.UserID,
		Weight:         p.Weight,
		ShippingCost:   p.ShippingCost,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toParcelResp(p))
}

// Get handles GET /v1/parcels/:id.
func (h *ParcelHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Parcels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Parcel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toParcelResp(p))
}

type parcelUpdateReq struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	TrackingNumber *string  `json:"tracking_number"`
	Weight         *float64 `json:"weight"`
	Status         *string  `json:"status"`
	SenderID       *uint64  `json:"sender_id"`
	RecipientID    *uint64  `json:"recipient_id"`
	LocationID     *uint64  `json:"location_id"`
	VehicleID      *uint64  `json:"vehicle_id"`
}

// Update handles PUT /v1/parcels/:id (staff only).  Fields outside the
// allow-list (id, shipping_cost, created_at) cannot be set by clients.  When
// the update changes the weight or the location, the shipping cost is
// recomputed against the rate card so the stored cost never drifts from the
// rate that produced it.
func (h *ParcelHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req parcelUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Weight != nil && *req.Weight <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weight must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	existing, err := h.Parcels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Parcel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if req.SenderID != nil {
		if _, err := h.Users.GetByID(ctx, *req.SenderID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid sender details"})
		}
	}
	if req.RecipientID != nil {
		if _, err := h.Users.GetByID(ctx, *req.RecipientID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid recipient details"})
		}
	}
	if req.VehicleID != nil {
		if _, err := h.Vehicles.GetByID(ctx, *req.VehicleID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid vehicle details"})
		}
	}

	upd := repository.ParcelUpdate{
		Name:           req.Name,
		Description:    req.Description,
		TrackingNumber: req.TrackingNumber,
		Weight:         req.Weight,
		Status:         req.Status,
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		LocationID:     req.LocationID,
		VehicleID:      req.VehicleID,
	}

	if req.Weight != nil || req.LocationID != nil {
		locID := existing.LocationID
		if req.LocationID != nil {
			locID = *req.LocationID
		}
		loc, err := h.Locations.GetByID(ctx, locID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter valid location details"})
		}
		weight := existing.Weight
		if req.Weight != nil {
			weight = *req.Weight
		}
		cost := model.ShippingCost(loc.CostPerKg, weight)
		upd.ShippingCost = &cost
	}

	if err := h.Parcels.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrParcelNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Parcel not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "tracking number already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	p, err := h.Parcels.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toParcelResp(p))
}

// Delete handles DELETE /v1/parcels/:id.  The schema cascades the delete to
// the parcel's assignment rows.
func (h *ParcelHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Parcels.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Parcel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "parcel successfully deleted"})
}
