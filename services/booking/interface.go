package booking

import (
	"context"
	"time"

	bookingRepo "carenest/database/repository/booking"
	"carenest/models"
	"carenest/services/notification"
	"carenest/services/tasks"
)

// ConfirmBookingInput carries everything needed to turn a priced draft into a
// persisted booking. Long-term placements bypass the hourly engine, so their
// negotiated rate and monthly cost are supplied directly.
type ConfirmBookingInput struct {
	ClientID    string              `json:"client_id"`
	NannyID     string              `json:"nanny_id"`
	Draft       models.BookingDraft `json:"draft"`
	StartAt     time.Time           `json:"start_at"`
	BaseRate    float64             `json:"base_rate,omitempty"`    // long_term only
	MonthlyCost float64             `json:"monthly_cost,omitempty"` // long_term only
}

// BookingService defines the booking lifecycle operations.
type BookingService interface {
	Quote(draft models.BookingDraft) (*models.PriceBreakdown, error)
	ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (*models.Booking, error)
	GetBooking(id string) (*models.Booking, error)
	ListByClient(clientID string) ([]models.Booking, error)
	ListByNanny(nannyID string) ([]models.Booking, error)
	ActivateBooking(id string) error
	CompleteBooking(id string) error
	GeneratePlacementInvoice(bookingID string) (*models.Invoice, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Notifier  notification.NotificationService
	Reminders tasks.ReminderScheduler
}
