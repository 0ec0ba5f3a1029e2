package model

// Assignment represents a row in the `user_parcel_assignments` table: the
// staff member (admin or customer_service user) responsible for a parcel.
// Rows are created alongside parcel creation and removed when either parent
// is deleted (ON DELETE CASCADE in the schema).  The staff-role requirement
// on UserID is enforced by handlers, not by the schema.
type Assignment struct {
	ID       uint64 // user_parcel_assignments.id
	UserID   uint64 // user_parcel_assignments.user_id (staff user)
	ParcelID uint64 // user_parcel_assignments.parcel_id
}
