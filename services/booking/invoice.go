package booking

import (
	"errors"
	"time"

	"carenest/models"
	"carenest/services/pricing"

	"github.com/google/uuid"
)

// ErrNotLongTerm is returned when a placement invoice is requested for a
// booking that is not a long-term placement.
var ErrNotLongTerm = errors.New("placement invoices apply to long-term bookings only")

// PlacementFee computes the one-time long-term placement fee: 50% of the base
// rate for the two largest home size tiers, a flat R2500 for all others. This
// rule is load-bearing for revenue reporting and must not drift.
func PlacementFee(baseRate float64, homeSizeTier string) float64 {
	switch homeSizeTier {
	case models.HomeFourBedroom, models.HomeFivePlus:
		return baseRate * pricing.PlacementFeeRateShare
	default:
		return pricing.PlacementFeeFlat
	}
}

// GeneratePlacementInvoice issues the placement-fee invoice for a long-term
// booking.
func (s *DefaultBookingService) GeneratePlacementInvoice(bookingID string) (*models.Invoice, error) {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Category != models.CategoryLongTerm {
		return nil, ErrNotLongTerm
	}

	return &models.Invoice{
		InvoiceID:    uuid.New().String(),
		BookingID:    booking.ID,
		PlacementFee: PlacementFee(booking.BaseRate, booking.HomeSizeTier),
		BaseRate:     booking.BaseRate,
		HomeSizeTier: booking.HomeSizeTier,
		Status:       "issued",
		CreatedAt:    time.Now(),
	}, nil
}
