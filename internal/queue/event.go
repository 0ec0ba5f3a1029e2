// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ParcelCreatedEvent is published after a parcel (and its staff assignment)
// has been committed.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the primary
// database.
type ParcelCreatedEvent struct {
	ParcelID       uint64  `json:"parcel_id"`
	TrackingNumber string  `json:"tracking_number"`
	SenderID       uint64  `json:"sender_id"`
	RecipientID    uint64  `json:"recipient_id"`
	LocationID     uint64  `json:"location_id"`
	AssignedUserID uint64  `json:"assigned_user_id"`
	Weight         float64 `json:"weight"`
	ShippingCost   float64 `json:"shipping_cost"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}
