package model

import (
	"database/sql"
	"time"
)

// StatusPending is the status a parcel starts in when the client does not
// supply one.  Status is otherwise free text ("in_transit", "delivered", ...).
const StatusPending = "Pending"

// Parcel represents a row in the `parcels` table.  ShippingCost is derived
// from the rate table at creation time (location.cost_per_kg * weight) and
// recomputed only when an update changes the weight or the location.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – short human-readable parcel name.
//  Description    – contents description.
//  TrackingNumber – unique tracking identifier handed to the customer.
//  Weight         – weight in kilograms.
//  Status         – lifecycle status, free text.
//  ShippingCost   – derived cost, rate * weight.
//  SenderID       – users.id of the sending customer.
//  RecipientID    – users.id of the receiving customer.
//  LocationID     – locations.id of the route/rate row.
//  VehicleID      – vehicles.id of the carrying vehicle (nullable).
//  CreatedAt      – timestamp of creation.
type Parcel struct {
	ID             uint64        // parcels.id
	Name           string        // parcels.name
	Description    string        // parcels.description
	TrackingNumber string        // parcels.tracking_number
	Weight         float64       // parcels.weight
	Status         string        // parcels.status
	ShippingCost   float64       // parcels.shipping_cost
	SenderID       uint64        // parcels.sender_id
	RecipientID    uint64        // parcels.recipient_id
	LocationID     uint64        // parcels.location_id
	VehicleID      sql.NullInt64 // parcels.vehicle_id (nullable)
	CreatedAt      time.Time     // parcels.created_at
}

// ShippingCost computes the derived cost for a parcel: the route's rate per
// kilogram multiplied by the parcel weight.
func ShippingCost(costPerKg, weight float64) float64 {
	return costPerKg * weight
}
