package models

import "time"

// Category is a booking billing class. Short-term categories are priced by the
// hourly/daily rules engine; long_term placements are billed separately.
type Category string

const (
	CategoryEmergency   Category = "emergency"
	CategoryDateNight   Category = "date_night"
	CategoryDateDay     Category = "date_day"
	CategoryGapCoverage Category = "gap_coverage"
	CategoryLongTerm    Category = "long_term"

	// CategoryShortTerm is an indeterminate short-term classification: the caller
	// still has to supply a concrete sub-type before pricing.
	CategoryShortTerm Category = "short_term"
)

// IsShortTerm reports whether the category is one of the hourly/daily billed classes.
func (c Category) IsShortTerm() bool {
	switch c {
	case CategoryEmergency, CategoryDateNight, CategoryDateDay, CategoryGapCoverage:
		return true
	}
	return false
}

// Home size tiers, smallest to largest. Housekeeping day rates and long-term
// placement fees key off these.
const (
	HomeOneBedroom   = "one_bedroom"
	HomeTwoBedroom   = "two_bedroom"
	HomeThreeBedroom = "three_bedroom"
	HomeFourBedroom  = "four_bedroom"
	HomeFivePlus     = "five_plus_bedroom"
)

// ServiceSelection captures the add-on services requested alongside childcare.
type ServiceSelection struct {
	Cooking           bool `bson:"cooking" json:"cooking"`
	SpecialNeeds      bool `bson:"special_needs" json:"special_needs"`
	PetCare           bool `bson:"pet_care" json:"pet_care"`
	LightHousekeeping bool `bson:"light_housekeeping" json:"light_housekeeping"`
}

// BookingDraft is the transient, pre-confirmation input to the pricing engine.
type BookingDraft struct {
	Category      Category         `json:"category"`
	SelectedDates []time.Time      `json:"selected_dates,omitempty"` // required for gap_coverage, drives weekend detection for date_day
	TotalHours    float64          `json:"total_hours,omitempty"`    // required for all hourly categories
	DayCount      int              `json:"day_count,omitempty"`      // daily add-on multiplier when no dates are supplied
	Services      ServiceSelection `json:"services"`
	HomeSizeTier  string           `json:"home_size_tier,omitempty"` // required when light housekeeping is requested
}

// RateUnit tags whether a rate applies per hour, per day, or once.
type RateUnit string

const (
	UnitHour RateUnit = "hour"
	UnitDay  RateUnit = "day"
	UnitFlat RateUnit = "flat"
)

// LineItem is a single priced entry in a quote.
type LineItem struct {
	Label       string   `json:"label"`
	Unit        RateUnit `json:"unit"`
	UnitRate    float64  `json:"unit_rate"`
	TotalAmount float64  `json:"total_amount"`
}

// DailyRate is a per-date entry in a gap coverage breakdown.
type DailyRate struct {
	Date string  `json:"date"` // YYYY-MM-DD
	Rate float64 `json:"rate"`
}

// PriceBreakdown is the itemized output of the pricing engine. Values are in Rand.
// Invariant: Total == Subtotal + ServiceFee + Surcharge, and every line item's
// TotalAmount sums into Subtotal.
type PriceBreakdown struct {
	Category          Category    `json:"category"`
	BaseUnitRate      float64     `json:"base_unit_rate"` // R/hour, or R 0 for day-billed categories
	LineItems         []LineItem  `json:"line_items"`
	Subtotal          float64     `json:"subtotal"`
	ServiceFee        float64     `json:"service_fee"`
	Surcharge         float64     `json:"surcharge"`
	Total             float64     `json:"total"`
	EffectiveUnitRate float64     `json:"effective_unit_rate"` // Total / billable hours; 0 for gap_coverage
	BillableHours     float64     `json:"billable_hours,omitempty"`
	DailyBreakdown    []DailyRate `json:"daily_breakdown,omitempty"`
}
