package model

import "time"

// Role values stored in users.role.  The role string is embedded in access
// tokens at login and drives every authorization decision.
const (
	RoleAdmin           = "admin"
	RoleCustomerService = "customer_service"
	RoleCustomer        = "customer"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleCustomerService || s == RoleCustomer
}

// StaffRole reports whether s names a role allowed to own parcel
// assignments.
func StaffRole(s string) bool {
	return s == RoleAdmin || s == RoleCustomerService
}

// User represents a row in the `users` table.  The password is stored only
// as a bcrypt hash; handlers define separate response types so the hash is
// never serialized.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name, unique by business rule (not by schema).
//  PhoneNumber  – unique ten-digit phone number, the login identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of admin, customer_service, customer.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	PhoneNumber  string    // users.phone_number
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
