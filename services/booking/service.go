package booking

import (
	"context"
	"fmt"
	"time"

	"carenest/models"
	"carenest/services/pricing"
	"carenest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderLead is how far ahead of the booking start the nanny reminder fires.
const reminderLead = 24 * time.Hour

// Quote prices a booking draft without persisting anything.
func (s *DefaultBookingService) Quote(draft models.BookingDraft) (*models.PriceBreakdown, error) {
	return pricing.Price(draft)
}

// ConfirmBooking persists a booking from a draft. Short-term drafts are priced
// by the rules engine; long-term placements carry their negotiated rate. The
// services snapshot taken here is only ever replaced by an accepted
// modification request.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, input ConfirmBookingInput) (*models.Booking, error) {
	booking := &models.Booking{
		ID:               uuid.New().String(),
		ClientID:         input.ClientID,
		NannyID:          input.NannyID,
		Category:         input.Draft.Category,
		Status:           models.BookingStatusConfirmed,
		TotalHours:       input.Draft.TotalHours,
		HomeSizeTier:     input.Draft.HomeSizeTier,
		ServicesSnapshot: input.Draft.Services,
	}
	for _, d := range input.Draft.SelectedDates {
		booking.SelectedDates = append(booking.SelectedDates, pricing.DateLabel(d))
	}

	if input.Draft.Category == models.CategoryLongTerm {
		if input.MonthlyCost <= 0 {
			return nil, fmt.Errorf("long-term bookings require a negotiated monthly cost")
		}
		booking.BaseRate = input.BaseRate
		booking.TotalCost = input.MonthlyCost
	} else {
		breakdown, err := pricing.Price(input.Draft)
		if err != nil {
			return nil, err
		}
		booking.BaseRate = breakdown.BaseUnitRate
		booking.TotalCost = breakdown.Total
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}

	if err := s.Notifier.NotifyClientBookingConfirmed(ctx, booking); err != nil {
		utils.GetLogger().Warn("failed to send booking confirmation push",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	s.scheduleReminder(booking, input.StartAt)

	return booking, nil
}

// scheduleReminder queues a nanny reminder ahead of the booking start.
func (s *DefaultBookingService) scheduleReminder(booking *models.Booking, startAt time.Time) {
	fireAt := startAt.Add(-reminderLead)
	if startAt.IsZero() || fireAt.Before(time.Now()) {
		return
	}
	err := s.Reminders.ScheduleBookingReminder(models.ReminderPayload{
		BookingID: booking.ID,
		NannyID:   booking.NannyID,
	}, fireAt)
	if err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// GetBooking returns a booking by ID.
func (s *DefaultBookingService) GetBooking(id string) (*models.Booking, error) {
	return s.Repo.GetByID(id)
}

// ListByClient returns all bookings made by a client.
func (s *DefaultBookingService) ListByClient(clientID string) ([]models.Booking, error) {
	return s.Repo.GetByClientID(clientID)
}

// ListByNanny returns all bookings assigned to a nanny.
func (s *DefaultBookingService) ListByNanny(nannyID string) ([]models.Booking, error) {
	return s.Repo.GetByNannyID(nannyID)
}

// ActivateBooking moves a confirmed booking into active service.
func (s *DefaultBookingService) ActivateBooking(id string) error {
	return s.transition(id, models.BookingStatusActive)
}

// CompleteBooking closes out an active booking.
func (s *DefaultBookingService) CompleteBooking(id string) error {
	return s.transition(id, models.BookingStatusCompleted)
}

func (s *DefaultBookingService) transition(id, target string) error {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if !models.CanTransitionBooking(booking.Status, target) {
		return &StatusError{Current: booking.Status, Attempted: target}
	}
	return s.Repo.UpdateStatus(id, booking.Status, target)
}
