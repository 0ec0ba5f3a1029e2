package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/matwana/logistics/internal/model"
)

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates all database queries against the users table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, name, phone_number, email, password_hash, role, created_at, updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.Email, &u.PasswordHash,
		&u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Create inserts a user with an already-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (name, phone_number, email, password_hash, role) VALUES (?,?,?,?,?)",
		strings.TrimSpace(u.Name), u.PhoneNumber, strings.ToLower(strings.TrimSpace(u.Email)),
		u.PasswordHash, u.Role)
	if err != nil {
		return 0, asRepoError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByName fetches a user by exact name.  Names are unique by business
// rule, not by schema, so the query still limits to one row.
func (r *UserRepo) GetByName(ctx context.Context, name string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE name=? LIMIT 1", strings.TrimSpace(name)))
}

// GetByPhone fetches a user by the unique phone number used as the login
// identifier.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone_number=? LIMIT 1", phone))
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.Email, &u.PasswordHash,
			&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UserUpdate carries the allow-listed set of client-updatable user fields.
// A nil pointer leaves the column untouched.  The password hash and the id
// are deliberately absent: they can never be set through a generic update.
type UserUpdate struct {
	Name        *string
	PhoneNumber *string
	Email       *string
	Role        *string
}

// Update applies the non-nil fields of upd to the user row.  It returns
// ErrUserNotFound when the id matches nothing and ErrDuplicate on unique
// column conflicts.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate) error {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if upd.Name != nil {
		set = append(set, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.PhoneNumber != nil {
		set = append(set, "phone_number=?")
		args = append(args, *upd.PhoneNumber)
	}
	if upd.Email != nil {
		set = append(set, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.Role != nil {
		set = append(set, "role=?")
		args = append(args, *upd.Role)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return asRepoError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows is ambiguous (no row vs no change); confirm
		// existence so callers get a reliable not-found signal.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a user.  The schema cascades the delete to the user's
// parcel assignments and nulls out sender/recipient references on parcels.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
