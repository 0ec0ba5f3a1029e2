// Package repository contains data access logic separated from HTTP
// handlers.  Each entity gets its own repository over a shared *sql.DB.
// Sentinel errors defined here and alongside each repository let handlers
// map failure modes onto HTTP statuses without string matching.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (phone_number, email, tracking_number, number_plate).  Handlers
// translate this into a 409.
var ErrDuplicate = errors.New("duplicate value")

// asRepoError converts a MySQL duplicate-key violation (error 1062) into
// ErrDuplicate and passes every other error through unchanged.
func asRepoError(err error) error {
	if err != nil && strings.Contains(err.Error(), "1062") {
		return ErrDuplicate
	}
	return err
}
