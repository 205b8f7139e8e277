package pricing

import (
	"fmt"
	"math"
	"time"

	"carenest/models"
)

// saTime is the fixed UTC+2 offset used for all day-of-week decisions. Reading
// the weekday in UTC instead misprices bookings that straddle midnight at the
// day boundary.
var saTime = time.FixedZone("SAST", 2*60*60)

// DateLabel formats a date in the same UTC+2 offset rates are chosen from, so
// a timestamp that straddles midnight is labeled with the day it was billed as.
func DateLabel(d time.Time) string {
	return d.In(saTime).Format("2006-01-02")
}

// isWeekendDate reports whether a date falls on Friday, Saturday or Sunday once
// shifted to the UTC+2 offset.
func isWeekendDate(d time.Time) bool {
	switch d.In(saTime).Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Price computes an itemized quote for a short-term booking draft. It is pure
// and deterministic: identical inputs always produce an identical breakdown.
// Validation failures return a ValidationError before any computation.
func Price(draft models.BookingDraft) (*models.PriceBreakdown, error) {
	switch draft.Category {
	case models.CategoryGapCoverage:
		return priceGapCoverage(draft)
	case models.CategoryEmergency, models.CategoryDateNight, models.CategoryDateDay:
		return priceHourly(draft)
	default:
		return nil, NewValidationError(fmt.Sprintf("unknown booking category %q", draft.Category))
	}
}

// dayMultiplier resolves the day count used for daily-rate add-ons. Selected
// dates win; otherwise the explicit day count; otherwise a single day.
func dayMultiplier(draft models.BookingDraft) int {
	if n := len(draft.SelectedDates); n > 0 {
		return n
	}
	if draft.DayCount > 0 {
		return draft.DayCount
	}
	return 1
}

// serviceLineItems prices the requested add-on services. Cooking and
// housekeeping bill per day (never per hour); special needs and pet care are
// recorded as zero-cost items for transparency rather than omitted.
func serviceLineItems(draft models.BookingDraft, days int) []models.LineItem {
	var items []models.LineItem
	if draft.Services.Cooking {
		items = append(items, models.LineItem{
			Label:       "Cooking",
			Unit:        models.UnitDay,
			UnitRate:    DailyRateCooking,
			TotalAmount: round2(DailyRateCooking * float64(days)),
		})
	}
	if draft.Services.SpecialNeeds {
		items = append(items, models.LineItem{
			Label: "Special needs care",
			Unit:  models.UnitFlat,
		})
	}
	if draft.Services.PetCare {
		items = append(items, models.LineItem{
			Label: "Pet care (Free)",
			Unit:  models.UnitFlat,
		})
	}
	if draft.Services.LightHousekeeping {
		rate := HousekeepingDayRate(draft.HomeSizeTier)
		items = append(items, models.LineItem{
			Label:       "Light housekeeping",
			Unit:        models.UnitDay,
			UnitRate:    rate,
			TotalAmount: round2(rate * float64(days)),
		})
	}
	return items
}

// ServiceSetCost prices an add-on service set in isolation, using the same
// rules as a full quote. Modification delta pricing subtracts the old set's
// cost from the new one; the base rate and service fee cancel out, so only the
// add-ons matter.
func ServiceSetCost(services models.ServiceSelection, homeSizeTier string, days int) float64 {
	if days < 1 {
		days = 1
	}
	items := serviceLineItems(models.BookingDraft{
		Services:     services,
		HomeSizeTier: homeSizeTier,
	}, days)

	var total float64
	for _, item := range items {
		total += item.TotalAmount
	}
	return round2(total)
}

// priceHourly handles emergency, date_night and date_day bookings.
func priceHourly(draft models.BookingDraft) (*models.PriceBreakdown, error) {
	hours := draft.TotalHours
	if hours <= 0 {
		return nil, NewValidationError(fmt.Sprintf("total hours must be greater than zero for %s bookings", draft.Category))
	}
	// Documented quirk: out-of-range hours are clamped, not rejected.
	if hours > MaxBillableHours {
		hours = MaxBillableHours
	}

	switch draft.Category {
	case models.CategoryEmergency:
		if hours < MinHoursEmergency {
			return nil, NewValidationError(fmt.Sprintf("emergency bookings require a minimum of %.0f hours", MinHoursEmergency))
		}
	case models.CategoryDateNight:
		if hours < MinHoursDateNight {
			return nil, NewValidationError(fmt.Sprintf("date night bookings require a minimum of %.0f hours", MinHoursDateNight))
		}
	}

	var baseRate float64
	var baseLabel string
	switch draft.Category {
	case models.CategoryEmergency:
		baseRate, baseLabel = HourlyRateEmergency, "Emergency care"
	case models.CategoryDateNight:
		baseRate, baseLabel = HourlyRateDateNight, "Date night care"
	case models.CategoryDateDay:
		baseRate, baseLabel = HourlyRateDateDay, "Day care"
		for _, d := range draft.SelectedDates {
			if isWeekendDate(d) {
				baseRate = HourlyRateDateDayWeekend
				break
			}
		}
	}

	items := []models.LineItem{{
		Label:       baseLabel,
		Unit:        models.UnitHour,
		UnitRate:    baseRate,
		TotalAmount: round2(baseRate * hours),
	}}
	items = append(items, serviceLineItems(draft, dayMultiplier(draft))...)

	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalAmount
	}
	subtotal = round2(subtotal)

	// Weekend pricing is already embedded in the base rate, so the surcharge
	// stays zero; applying it here would double-charge.
	surcharge := 0.0
	total := round2(subtotal + ServiceFeeHourly + surcharge)

	return &models.PriceBreakdown{
		Category:          draft.Category,
		BaseUnitRate:      baseRate,
		LineItems:         items,
		Subtotal:          subtotal,
		ServiceFee:        ServiceFeeHourly,
		Surcharge:         surcharge,
		Total:             total,
		EffectiveUnitRate: round2(total / hours),
		BillableHours:     hours,
	}, nil
}

// priceGapCoverage handles multi-day gap coverage bookings, priced per calendar
// day with a weekend day rate and no service fee.
func priceGapCoverage(draft models.BookingDraft) (*models.PriceBreakdown, error) {
	if len(draft.SelectedDates) < MinGapCoverageDays {
		return nil, NewValidationError(fmt.Sprintf("gap coverage requires a minimum of %d consecutive days", MinGapCoverageDays))
	}

	var daily []models.DailyRate
	var weekdayDays, weekendDays int
	for _, d := range draft.SelectedDates {
		rate := DailyRateGapWeekday
		if isWeekendDate(d) {
			rate = DailyRateGapWeekend
			weekendDays++
		} else {
			weekdayDays++
		}
		daily = append(daily, models.DailyRate{
			Date: DateLabel(d),
			Rate: rate,
		})
	}

	var items []models.LineItem
	if weekdayDays > 0 {
		items = append(items, models.LineItem{
			Label:       "Gap coverage (weekday)",
			Unit:        models.UnitDay,
			UnitRate:    DailyRateGapWeekday,
			TotalAmount: round2(DailyRateGapWeekday * float64(weekdayDays)),
		})
	}
	if weekendDays > 0 {
		items = append(items, models.LineItem{
			Label:       "Gap coverage (weekend)",
			Unit:        models.UnitDay,
			UnitRate:    DailyRateGapWeekend,
			TotalAmount: round2(DailyRateGapWeekend * float64(weekendDays)),
		})
	}
	items = append(items, serviceLineItems(draft, len(draft.SelectedDates))...)

	var subtotal float64
	for _, item := range items {
		subtotal += item.TotalAmount
	}
	subtotal = round2(subtotal)

	// Service fee is explicitly waived for gap coverage.
	return &models.PriceBreakdown{
		Category:       draft.Category,
		BaseUnitRate:   0,
		LineItems:      items,
		Subtotal:       subtotal,
		ServiceFee:     0,
		Surcharge:      0,
		Total:          subtotal,
		DailyBreakdown: daily,
	}, nil
}
