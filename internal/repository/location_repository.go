package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/matwana/logistics/internal/model"
)

// ErrLocationNotFound is returned when a location lookup matches no row.
var ErrLocationNotFound = errors.New("location not found")

// LocationRepo encapsulates all database queries against the locations
// table, the system's rate card.
type LocationRepo struct{ db *sql.DB }

func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a rate row and populates its ID.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO locations (origin, destination, cost_per_kg) VALUES (?,?,?)",
		l.Origin, l.Destination, l.CostPerKg)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByID fetches a rate row by primary key.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (model.Location, error) {
	var l model.Location
	err := r.db.QueryRowContext(ctx,
		"SELECT id, origin, destination, cost_per_kg FROM locations WHERE id=? LIMIT 1",
		id).Scan(&l.ID, &l.Origin, &l.Destination, &l.CostPerKg)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Location{}, ErrLocationNotFound
	}
	return l, err
}

// List returns the full rate card ordered by id.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, origin, destination, cost_per_kg FROM locations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Origin, &l.Destination, &l.CostPerKg); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LocationUpdate carries the allow-listed set of updatable rate fields.
type LocationUpdate struct {
	Origin      *string
	Destination *string
	CostPerKg   *float64
}

// Update applies the non-nil fields of upd to the rate row.
func (r *LocationRepo) Update(ctx context.Context, id uint64, upd LocationUpdate) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Origin != nil {
		set = append(set, "origin=?")
		args = append(args, *upd.Origin)
	}
	if upd.Destination != nil {
		set = append(set, "destination=?")
		args = append(args, *upd.Destination)
	}
	if upd.CostPerKg != nil {
		set = append(set, "cost_per_kg=?")
		args = append(args, *upd.CostPerKg)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE locations SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one rate row.  Parcels and vehicles referencing it keep
// existing with a nulled location_id.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// DeleteAll clears the entire rate card (admin bulk reset).  It returns the
// number of removed rows; zero means there was nothing to delete.
func (r *LocationRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM locations")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
