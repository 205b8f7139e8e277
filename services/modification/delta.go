package modification

import (
	"math"

	"carenest/models"
	"carenest/services/pricing"
)

// priceAdjustment computes the signed delta to apply to a booking's recurring
// cost if the modification is accepted. Service changes reprice only the add-on
// set: the base rate and service fee are unchanged by a service modification,
// so new set cost minus old set cost equals the full-quote difference.
// Cancellations refund the booking's whole recurring cost.
func priceAdjustment(booking *models.Booking, modType string, newServices models.ServiceSelection) (float64, error) {
	switch modType {
	case models.ModificationCancellation:
		return -booking.TotalCost, nil
	case models.ModificationServiceAddition, models.ModificationServiceRemoval:
		days := len(booking.SelectedDates)
		oldCost := pricing.ServiceSetCost(booking.ServicesSnapshot, booking.HomeSizeTier, days)
		newCost := pricing.ServiceSetCost(newServices, booking.HomeSizeTier, days)
		return math.Round((newCost-oldCost)*100) / 100, nil
	default:
		return 0, ErrUnknownModificationType
	}
}
