package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/matwana/logistics/internal/model"
)

// ErrParcelNotFound is returned when a parcel lookup matches no row.
var ErrParcelNotFound = errors.New("parcel not found")

// ParcelRepo encapsulates all database queries against the parcels table and
// the assignment rows created alongside parcels.
type ParcelRepo struct{ db *sql.DB }

func NewParcelRepo(db *sql.DB) *ParcelRepo { return &ParcelRepo{db: db} }

// COALESCE keeps scanning simple after a referenced user is deleted and the
// schema nulls out the foreign key; zero means "no longer referenced".
const parcelColumns = `id, name, description, tracking_number, weight, status, shipping_cost,
	COALESCE(sender_id,0), COALESCE(recipient_id,0), COALESCE(location_id,0), vehicle_id, created_at`

func scanParcel(scan func(dest ...any) error) (model.Parcel, error) {
	var p model.Parcel
	err := scan(&p.ID, &p.Name, &p.Description, &p.TrackingNumber, &p.Weight,
		&p.Status, &p.ShippingCost, &p.SenderID, &p.RecipientID, &p.LocationID,
		&p.VehicleID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Parcel{}, ErrParcelNotFound
	}
	return p, err
}

// Create inserts a parcel and, in the same transaction, the assignment row
// binding the responsible staff member to it.  The caller has already
// verified that assigneeID names a staff user and has computed the shipping
// cost.  On success the parcel's ID and CreatedAt are populated.
func (r *ParcelRepo) Create(ctx context.Context, p *model.Parcel, assigneeID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO parcels
			(name, description, tracking_number, weight, status, shipping_cost,
			 sender_id, recipient_id, location_id, vehicle_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.TrackingNumber, p.Weight, p.Status, p.ShippingCost,
		p.SenderID, p.RecipientID, p.LocationID, p.VehicleID)
	if err != nil {
		return asRepoError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_parcel_assignments (user_id, parcel_id) VALUES (?,?)",
		assigneeID, p.ID); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM parcels WHERE id=?", p.ID).Scan(&p.CreatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID fetches a parcel by primary key.
func (r *ParcelRepo) GetByID(ctx context.Context, id uint64) (model.Parcel, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+parcelColumns+" FROM parcels WHERE id=? LIMIT 1", id)
	return scanParcel(row.Scan)
}

// List returns every parcel ordered by id.
func (r *ParcelRepo) List(ctx context.Context) ([]model.Parcel, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+parcelColumns+" FROM parcels ORDER BY id")
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

// ParcelUpdate carries the allow-listed set of updatable parcel fields.
// ShippingCost is settable only by the handler's recompute logic, never bound
// from client JSON directly.
type ParcelUpdate struct {
	Name           *string
	Description    *string
	TrackingNumber *string
	Weight         *float64
	Status         *string
	SenderID       *uint64
	RecipientID    *uint64
	LocationID     *uint64
	VehicleID      *uint64
	ShippingCost   *float64
}

// Update applies the non-nil fields of upd to the parcel row.
func (r *ParcelRepo) Update(ctx context.Context, id uint64, upd ParcelUpdate) error {
	set := make([]string, 0, 10)
	args := make([]any, 0, 11)
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.TrackingNumber != nil {
		add("tracking_number", *upd.TrackingNumber)
	}
	if upd.Weight != nil {
		add("weight", *upd.Weight)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.SenderID != nil {
		add("sender_id", *upd.SenderID)
	}
	if upd.RecipientID != nil {
		add("recipient_id", *upd.RecipientID)
	}
	if upd.LocationID != nil {
		add("location_id", *upd.LocationID)
	}
	if upd.VehicleID != nil {
		add("vehicle_id", *upd.VehicleID)
	}
	if upd.ShippingCost != nil {
		add("shipping_cost", *upd.ShippingCost)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE parcels SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return asRepoError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a parcel; the schema cascades the delete to its assignment
// rows.
func (r *ParcelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM parcels WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrParcelNotFound
	}
	return nil
}
