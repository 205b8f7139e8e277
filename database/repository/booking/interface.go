package bookingRepo

import (
	"errors"

	"carenest/models"
)

// ErrNotFound is returned when no booking matches the given identifier.
var ErrNotFound = errors.New("booking not found")

// ErrStatusMismatch is returned when a conditional status update matched no
// document because the booking's current status differs from the expected one.
var ErrStatusMismatch = errors.New("booking status mismatch")

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByClientID(clientID string) ([]models.Booking, error)
	GetByNannyID(nannyID string) ([]models.Booking, error)

	// UpdateStatus moves a booking from an expected status to a new one as a
	// single conditional update.
	UpdateStatus(id, from, to string) error

	// ApplyModification atomically replaces the services snapshot and adjusts
	// the recurring cost by the signed delta.
	ApplyModification(id string, services models.ServiceSelection, costDelta float64) error
}
