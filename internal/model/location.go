package model

// Location represents a row in the `locations` table.  The table doubles as
// the rate card: CostPerKg is the shipping rate applied to every parcel
// created on this origin/destination pair.  Only admins may create or delete
// rate rows.
type Location struct {
	ID          uint64  // locations.id
	Origin      string  // locations.origin
	Destination string  // locations.destination
	CostPerKg   float64 // locations.cost_per_kg
}
