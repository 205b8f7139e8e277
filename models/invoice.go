package models

import "time"

// Invoice represents a placement-fee invoice generated for a long-term booking.
type Invoice struct {
	InvoiceID    string    `bson:"invoice_id" json:"invoice_id"`         // Unique invoice identifier.
	BookingID    string    `bson:"booking_id" json:"booking_id"`         // Associated booking ID.
	PlacementFee float64   `bson:"placement_fee" json:"placement_fee"`   // One-time placement fee charged.
	BaseRate     float64   `bson:"base_rate" json:"base_rate"`           // Booking base rate the fee was derived from.
	HomeSizeTier string    `bson:"home_size_tier" json:"home_size_tier"` // Tier used for fee selection.
	Status       string    `bson:"status" json:"status"`                 // e.g., "issued"
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`         // Timestamp of invoice creation.
}
