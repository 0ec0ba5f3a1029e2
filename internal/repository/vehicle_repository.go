package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/matwana/logistics/internal/model"
)

// ErrVehicleNotFound is returned when a vehicle lookup matches no row.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepo encapsulates all database queries against the vehicles table.
type VehicleRepo struct{ db *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = `id, number_plate, capacity, driver_name, driver_phone,
	departure_time, expected_arrival_time, status, COALESCE(location_id,0)`

func scanVehicle(scan func(dest ...any) error) (model.Vehicle, error) {
	var v model.Vehicle
	err := scan(&v.ID, &v.NumberPlate, &v.Capacity, &v.DriverName, &v.DriverPhone,
		&v.DepartureTime, &v.ExpectedArrivalTime, &v.Status, &v.LocationID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vehicle{}, ErrVehicleNotFound
	}
	return v, err
}

// Create inserts a vehicle and populates its ID.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles
			(number_plate, capacity, driver_name, driver_phone,
			 departure_time, expected_arrival_time, status, location_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		v.NumberPlate, v.Capacity, v.DriverName, v.DriverPhone,
		v.DepartureTime, v.ExpectedArrivalTime, v.Status, v.LocationID)
	if err != nil {
		return asRepoError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a vehicle by primary key.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles WHERE id=? LIMIT 1", id)
	return scanVehicle(row.Scan)
}

// List returns every vehicle ordered by id.
func (r *VehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// VehicleUpdate carries the allow-listed set of updatable vehicle fields.
type VehicleUpdate struct {
	NumberPlate         *string
	Capacity            *float64
	DriverName          *string
	DriverPhone         *string
	DepartureTime       *string
	ExpectedArrivalTime *string
	Status              *string
	LocationID          *uint64
}

// Update applies the non-nil fields of upd to the vehicle row.
func (r *VehicleRepo) Update(ctx context.Context, id uint64, upd VehicleUpdate) error {
	set := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.NumberPlate != nil {
		add("number_plate", *upd.NumberPlate)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.DriverName != nil {
		add("driver_name", *upd.DriverName)
	}
	if upd.DriverPhone != nil {
		add("driver_phone", *upd.DriverPhone)
	}
	if upd.DepartureTime != nil {
		add("departure_time", *upd.DepartureTime)
	}
	if upd.ExpectedArrivalTime != nil {
		add("expected_arrival_time", *upd.ExpectedArrivalTime)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.LocationID != nil {
		add("location_id", *upd.LocationID)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE vehicles SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
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

// Delete removes a vehicle.  Parcels referencing it keep existing with a
// nulled vehicle_id.
func (r *VehicleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
