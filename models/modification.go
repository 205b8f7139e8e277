package models

import "time"

// Modification request types.
const (
	ModificationServiceAddition = "service_addition"
	ModificationServiceRemoval  = "service_removal"
	ModificationCancellation    = "cancellation"
)

// Modification request statuses. A request starts in pending_admin_review; the
// admin hop moves it to pending_nanny_response (approval) or admin_rejected, and
// the nanny hop closes it as nanny_accepted or nanny_declined.
const (
	ModStatusPendingAdminReview   = "pending_admin_review"
	ModStatusAdminApproved        = "admin_approved"
	ModStatusPendingNannyResponse = "pending_nanny_response"
	ModStatusAdminRejected        = "admin_rejected"
	ModStatusNannyAccepted        = "nanny_accepted"
	ModStatusNannyDeclined        = "nanny_declined"
)

// modificationTransitions is the legal state graph. Admin approval collapses the
// admin_approved hop into pending_nanny_response in a single atomic update, so
// the direct edge is listed as well.
var modificationTransitions = map[string][]string{
	ModStatusPendingAdminReview:   {ModStatusAdminApproved, ModStatusPendingNannyResponse, ModStatusAdminRejected},
	ModStatusAdminApproved:        {ModStatusPendingNannyResponse},
	ModStatusPendingNannyResponse: {ModStatusNannyAccepted, ModStatusNannyDeclined},
}

// IsTerminalModStatus reports whether a status admits no further transitions.
func IsTerminalModStatus(status string) bool {
	switch status {
	case ModStatusAdminRejected, ModStatusNannyAccepted, ModStatusNannyDeclined:
		return true
	}
	return false
}

// CanTransitionModification reports whether a modification request may legally
// move from one status to another.
func CanTransitionModification(from, to string) bool {
	for _, next := range modificationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ModificationRequest is a proposed change to an active booking's services (or a
// cancellation), requiring admin then nanny sign-off. At most one non-terminal
// request may exist per booking; the repository's unique active index enforces
// that, not this entity.
type ModificationRequest struct {
	ID               string           `bson:"id" json:"id"`
	BookingID        string           `bson:"booking_id" json:"booking_id"`
	ClientID         string           `bson:"client_id" json:"client_id"`
	ModificationType string           `bson:"modification_type" json:"modification_type"`
	OldValues        ServiceSelection `bson:"old_values" json:"old_values"`             // snapshot before the change (addition/removal only)
	NewValues        ServiceSelection `bson:"new_values" json:"new_values"`             // snapshot after the change (addition/removal only)
	PriceAdjustment  float64          `bson:"price_adjustment" json:"price_adjustment"` // signed delta applied to the booking's recurring cost on acceptance
	Status           string           `bson:"status" json:"status"`
	// Active marks a non-terminal request. It backs the partial unique index
	// that admits one in-flight request per booking even under concurrent
	// inserts; UpdateStatus clears it on terminal transitions.
	Active      bool      `bson:"active" json:"-"`
	ClientNotes string    `bson:"client_notes,omitempty" json:"client_notes,omitempty"`
	AdminNotes  string    `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	NannyNotes  string    `bson:"nanny_notes,omitempty" json:"nanny_notes,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the request has been finally resolved.
func (m *ModificationRequest) IsTerminal() bool {
	return IsTerminalModStatus(m.Status)
}
