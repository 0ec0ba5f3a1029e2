package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/repository"
)

// VehicleHandler serves the vehicle CRUD endpoints.
type VehicleHandler struct {
	Vehicles  *repository.VehicleRepo
	Locations *repository.LocationRepo
}

func NewVehicleHandler(v *repository.VehicleRepo, l *repository.LocationRepo) *VehicleHandler {
	return &VehicleHandler{Vehicles: v, Locations: l}
}

type vehicleResp struct {
	ID                  uint64  `json:"id"`
	NumberPlate         string  `json:"number_plate"`
	Capacity            float64 `json:"capacity"`
	DriverName          string  `json:"driver_name"`
	DriverPhone         string  `json:"driver_phone"`
	DepartureTime       string  `json:"departure_time"`
	ExpectedArrivalTime string  `json:"expected_arrival_time"`
	Status              string  `json:"status"`
	LocationID          uint64  `json:"location_id"`
}

func toVehicleResp(v model.Vehicle) vehicleResp {
	return vehicleResp{
		ID:                  v.ID,
		NumberPlate:         v.NumberPlate,
		Capacity:            v.Capacity,
		DriverName:          v.DriverName,
		DriverPhone:         v.DriverPhone,
		DepartureTime:       v.DepartureTime,
		ExpectedArrivalTime: v.ExpectedArrivalTime,
		Status:              v.Status,
		LocationID:          v.LocationID,
	}
}

// List handles GET /v1/vehicles (public).
func (h *VehicleHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	vehicles, err := h.Vehicles.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]vehicleResp, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResp(v))
	}
	return c.JSON(http.StatusOK, out)
}

type vehicleCreateReq struct {
	NumberPlate         string  `json:"number_plate"`
	Capacity            float64 `json:"capacity"`
	DriverName          string  `json:"driver_name"`
	DriverPhone         string  `json:"driver_phone"`
	DepartureTime       string  `json:"departure_time"`
	ExpectedArrivalTime string  `json:"expected_arrival_time"`
	Status              string  `json:"status"`
	LocationID          uint64  `json:"location_id"`
}

// Create handles POST /v1/vehicles (staff only).
func (h *VehicleHandler) Create(c echo.Context) error {
	var req vehicleCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.NumberPlate == "" || req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter the number plate and capacity of the vehicle"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Locations.GetByID(ctx, req.LocationID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter a valid location"})
	}

	v := model.Vehicle{
		NumberPlate:         req.NumberPlate,
		Capacity:            req.Capacity,
		DriverName:          req.DriverName,
		DriverPhone:         req.DriverPhone,
		DepartureTime:       req.DepartureTime,
		ExpectedArrivalTime: req.ExpectedArrivalTime,
		Status:              req.Status,
		LocationID:          req.LocationID,
	}
	if v.Status == "" {
		v.Status = "empty"
	}
	if err := h.Vehicles.Create(ctx, &v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "number plate already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vehicle failed"})
	}
	return c.JSON(http.StatusCreated, toVehicleResp(v))
}

// Get handles GET /v1/vehicles/:id (staff only).
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No vehicle found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}

type vehicleUpdateReq struct {
	NumberPlate         *string  `json:"number_plate"`
	Capacity            *float64 `json:"capacity"`
	DriverName          *string  `json:"driver_name"`
	DriverPhone         *string  `json:"driver_phone"`
	DepartureTime       *string  `json:"departure_time"`
	ExpectedArrivalTime *string  `json:"expected_arrival_time"`
	Status              *string  `json:"status"`
	LocationID          *uint64  `json:"location_id"`
}

// Update handles PUT /v1/vehicles/:id (staff only).
func (h *VehicleHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req vehicleUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.LocationID != nil {
		if _, err := h.Locations.GetByID(ctx, *req.LocationID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please enter a valid location"})
		}
	}

	upd := repository.VehicleUpdate{
		NumberPlate:         req.NumberPlate,
		Capacity:            req.Capacity,
		DriverName:          req.DriverName,
		DriverPhone:         req.DriverPhone,
		DepartureTime:       req.DepartureTime,
		ExpectedArrivalTime: req.ExpectedArrivalTime,
		Status:              req.Status,
		LocationID:          req.LocationID,
	}
	if err := h.Vehicles.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrVehicleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No vehicle found"})
		case errors.Is(err, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "number plate already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}

// Delete handles DELETE /v1/vehicles/:id (staff only).
func (h *VehicleHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No vehicle found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle deleted"})
}
