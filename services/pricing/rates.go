package pricing

import (
	"carenest/models"
	"carenest/utils"

	"go.uber.org/zap"
)

// Rate table for short-term childcare. All amounts are in Rand.
const (
	HourlyRateEmergency      = 80.0
	HourlyRateDateNight      = 120.0
	HourlyRateDateDay        = 40.0
	HourlyRateDateDayWeekend = 55.0

	DailyRateGapWeekday = 280.0
	DailyRateGapWeekend = 350.0

	DailyRateCooking = 100.0

	// ServiceFeeHourly is charged on every hourly category and waived for
	// gap coverage.
	ServiceFeeHourly = 35.0

	// MaxBillableHours caps totalHours at 30 days x 24h. Values above are
	// clamped, not rejected.
	MaxBillableHours = 720.0

	MinHoursEmergency  = 5.0
	MinHoursDateNight  = 3.0
	MinGapCoverageDays = 5

	// Long-term placement fee rule: 50% of base rate for the two largest home
	// tiers, flat R2500 for all others.
	PlacementFeeFlat      = 2500.0
	PlacementFeeRateShare = 0.5
)

// housekeepingDayRates maps home size tier to the light-housekeeping day rate.
var housekeepingDayRates = map[string]float64{
	models.HomeOneBedroom:   80,
	models.HomeTwoBedroom:   100,
	models.HomeThreeBedroom: 120,
	models.HomeFourBedroom:  140,
	models.HomeFivePlus:     300,
}

// fallbackHousekeepingRate is applied when the tier is unrecognized. Downstream
// expects a price, not a rejection, so this recovers instead of failing.
const fallbackHousekeepingRate = 100.0

// HousekeepingDayRate resolves the daily light-housekeeping rate for a home size
// tier, falling back to the mid-tier rate with a warning for unknown tiers.
func HousekeepingDayRate(tier string) float64 {
	if rate, ok := housekeepingDayRates[tier]; ok {
		return rate
	}
	utils.GetLogger().Warn("unrecognized home size tier, falling back to mid-tier housekeeping rate",
		zap.String("tier", tier),
		zap.Float64("rate", fallbackHousekeepingRate),
	)
	return fallbackHousekeepingRate
}
