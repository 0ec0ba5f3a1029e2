package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matwana/logistics/internal/model"
)

// ErrAssignmentNotFound is returned when no assignment rows exist for the
// requested user.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepo encapsulates queries against user_parcel_assignments, the
// join table recording which staff member is responsible for which parcel.
// Rows are created inside ParcelRepo.Create; this repository reads and
// removes them.
type AssignmentRepo struct{ db *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// ListByUser returns the assignment rows owned by a staff user.
func (r *AssignmentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, parcel_id FROM user_parcel_assignments WHERE user_id=? ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ParcelID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ParcelsForUser returns the parcels a staff member is responsible for, via
// a join on the assignment table.
func (r *AssignmentRepo) ParcelsForUser(ctx context.Context, userID uint64) ([]model.Parcel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.description, p.tracking_number, p.weight, p.status,
			p.shipping_cost, COALESCE(p.sender_id,0), COALESCE(p.recipient_id,0),
			COALESCE(p.location_id,0), p.vehicle_id, p.created_at
		 FROM parcels p
		 JOIN user_parcel_assignments a ON a.parcel_id = p.id
		 WHERE a.user_id=?
		 ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Parcel
	for rows.Next() {
		p, err := scanParcel(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteByUser removes every assignment owned by the user.  It returns
// ErrAssignmentNotFound when the user has none, so callers can report a
// missing assignment instead of silently succeeding.
func (r *AssignmentRepo) DeleteByUser(ctx context.Context, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_parcel_assignments WHERE user_id=?", userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
