package modification

import (
	"context"

	bookingRepo "carenest/database/repository/booking"
	modificationRepo "carenest/database/repository/modification"
	"carenest/models"
	"carenest/services/notification"
)

// CreateRequestInput is the client-supplied payload for a new modification request.
type CreateRequestInput struct {
	BookingID        string                  `json:"booking_id"`
	ClientID         string                  `json:"client_id"`
	ModificationType string                  `json:"modification_type"`
	NewServices      models.ServiceSelection `json:"new_services"`
	ClientNotes      string                  `json:"client_notes,omitempty"`
}

// ApprovalCoordinator orchestrates the modification workflow: request creation
// with delta pricing, the admin review hop, the nanny response hop, and the
// booking mutation on terminal acceptance.
type ApprovalCoordinator interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ModificationRequest, error)
	ReviewByAdmin(ctx context.Context, requestID string, approve bool, adminNotes string) (*models.ModificationRequest, error)
	RespondByNanny(ctx context.Context, requestID string, accept bool, nannyNotes string) (*models.ModificationRequest, error)
	GetRequest(requestID string) (*models.ModificationRequest, error)
	ListForBooking(bookingID string) ([]models.ModificationRequest, error)
}

// DefaultApprovalCoordinator is the production implementation.
type DefaultApprovalCoordinator struct {
	BookingRepo bookingRepo.BookingRepository
	ModRepo     modificationRepo.ModificationRepository
	Notifier    notification.NotificationService
}
