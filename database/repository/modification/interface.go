package modificationRepo

import (
	"errors"

	"carenest/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no modification request matches the identifier.
var ErrNotFound = errors.New("modification request not found")

// ErrActiveExists is returned when an insert would create a second non-terminal
// request for the same booking. The partial unique index on booking_id raises
// this even when two creations race past the read-side check.
var ErrActiveExists = errors.New("an active modification request already exists for this booking")

// ErrStatusMismatch is returned when a conditional status update matched no
// document because the request's current status differs from the expected
// pre-state. Callers treat it as "already processed by another actor".
var ErrStatusMismatch = errors.New("modification request status mismatch")

// ModificationRepository defines the interface for modification request data access.
type ModificationRepository interface {
	Create(req *models.ModificationRequest) error
	GetByID(id string) (*models.ModificationRequest, error)

	// GetActiveByBookingID returns the booking's single non-terminal request,
	// or ErrNotFound when none exists.
	GetActiveByBookingID(bookingID string) (*models.ModificationRequest, error)
	ListByBookingID(bookingID string) ([]models.ModificationRequest, error)

	// UpdateStatus moves a request from an expected status to a new one as a
	// single conditional update, optionally setting extra fields (notes).
	UpdateStatus(id, from, to string, extra bson.M) error
}
