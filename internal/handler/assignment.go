package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/matwana/logistics/internal/model"
	"github.com/matwana/logistics/internal/repository"
)

// AssignmentHandler serves the staff workload endpoints.  The :id parameter
// on these routes is a staff user id, and both operations verify that it
// names an admin or customer_service account before touching assignment
// rows.
type AssignmentHandler struct {
	Assignments *repository.AssignmentRepo
	Users       *repository.UserRepo
}

func NewAssignmentHandler(a *repository.AssignmentRepo, u *repository.UserRepo) *AssignmentHandler {
	return &AssignmentHandler{Assignments: a, Users: u}
}

// ListParcels handles GET /v1/assignments/:id: the parcels the staff member
// is responsible for.
func (h *AssignmentHandler) ListParcels(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !model.StaffRole(u.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID or insufficient user role"})
	}

	parcels, err := h.Assignments.ParcelsForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]parcelResp, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, toParcelResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/assignments/:id: removes the staff member's
// assignments.  A user with no assignments yields a 404 rather than a silent
// success.
func (h *AssignmentHandler) Delete(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !model.StaffRole(u.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID or insufficient user role"})
	}

	if err := h.Assignments.DeleteByUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No assignment found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Assignment is deleted"})
}
