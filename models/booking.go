package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// bookingTransitions is the legal booking status graph.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionBooking reports whether a booking may move from one status to another.
func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking represents a confirmed booking record. It is referenced by exactly one
// client and one nanny, and is mutated only by initial confirmation and by
// accepted modification requests.
type Booking struct {
	ID            string   `bson:"id" json:"id"`                 // Unique booking identifier (UUID)
	ClientID      string   `bson:"client_id" json:"client_id"`   // Client who made the booking
	NannyID       string   `bson:"nanny_id" json:"nanny_id"`     // Nanny assigned to the booking
	Category      Category `bson:"category" json:"category"`     // Billing class, e.g. "date_day" or "long_term"
	Status        string   `bson:"status" json:"status"`         // pending / confirmed / active / completed / cancelled
	BaseRate      float64  `bson:"base_rate" json:"base_rate"`   // Per-unit base rate at confirmation time
	TotalCost     float64  `bson:"total_cost" json:"total_cost"` // Recurring monthly cost for long-term, grand total for short-term
	TotalHours    float64  `bson:"total_hours,omitempty" json:"total_hours,omitempty"`
	SelectedDates []string `bson:"selected_dates,omitempty" json:"selected_dates,omitempty"` // YYYY-MM-DD
	HomeSizeTier  string   `bson:"home_size_tier,omitempty" json:"home_size_tier,omitempty"`
	// ServicesSnapshot mirrors the requested services at confirmation time and is
	// only replaced by an accepted modification request.
	ServicesSnapshot ServiceSelection `bson:"services_snapshot" json:"services_snapshot"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `bson:"updated_at" json:"updated_at"`
}
