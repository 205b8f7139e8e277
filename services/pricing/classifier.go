package pricing

import (
	"carenest/models"
	"carenest/utils"

	"go.uber.org/zap"
)

// ClassifierInput carries the (possibly partial) signals used to resolve a
// booking category. ContextHints replaces ambient flow state previously read
// from the caller's environment; callers pass it in explicitly.
type ClassifierInput struct {
	DurationType      string            // "long_term", "short_term", or empty
	BookingSubType    string            // e.g. "date_night", "temporary_support"
	LivingArrangement string            // set for live-in/live-out placements
	HomeSize          string            // home size tier, if captured
	ContextHints      map[string]string // out-of-band markers, e.g. "bookingFlow"
}

// shortTermSubTypes maps known sub-type tags to their billing category.
// temporary_support is the source term for gap coverage; school holiday cover
// is billed the same way (multi-day, per calendar day).
var shortTermSubTypes = map[string]models.Category{
	"date_night":        models.CategoryDateNight,
	"date_day":          models.CategoryDateDay,
	"emergency":         models.CategoryEmergency,
	"temporary_support": models.CategoryGapCoverage,
	"gap_coverage":      models.CategoryGapCoverage,
	"school_holiday":    models.CategoryGapCoverage,
}

// classifierRule is one (predicate, result) pair in the ordered decision table.
type classifierRule struct {
	name  string
	apply func(ClassifierInput) (models.Category, bool)
}

// classifierRules is evaluated top to bottom; the first match wins. Callers
// depend on this exact priority even with partial or corrupted input, so rules
// must not be reordered or skipped.
var classifierRules = []classifierRule{
	{
		name: "explicit long-term duration",
		apply: func(in ClassifierInput) (models.Category, bool) {
			if in.DurationType == "long_term" {
				return models.CategoryLongTerm, true
			}
			return "", false
		},
	},
	{
		name: "known short-term sub-type",
		apply: func(in ClassifierInput) (models.Category, bool) {
			if cat, ok := shortTermSubTypes[in.BookingSubType]; ok {
				return cat, true
			}
			return "", false
		},
	},
	{
		name: "explicit short-term duration",
		apply: func(in ClassifierInput) (models.Category, bool) {
			if in.DurationType == "short_term" {
				// Indeterminate: the caller must still supply a sub-type.
				return models.CategoryShortTerm, true
			}
			return "", false
		},
	},
	{
		name: "structural long-term inference",
		apply: func(in ClassifierInput) (models.Category, bool) {
			if in.LivingArrangement != "" && in.HomeSize != "" {
				return models.CategoryLongTerm, true
			}
			return "", false
		},
	},
	{
		name: "long-term flow marker",
		apply: func(in ClassifierInput) (models.Category, bool) {
			if in.ContextHints["bookingFlow"] == "long-term" {
				return models.CategoryLongTerm, true
			}
			return "", false
		},
	},
	{
		name: "short-term default",
		apply: func(in ClassifierInput) (models.Category, bool) {
			utils.GetLogger().Warn("booking classification uncertain, defaulting to short-term",
				zap.String("durationType", in.DurationType),
				zap.String("bookingSubType", in.BookingSubType),
			)
			return models.CategoryShortTerm, true
		},
	},
}

// Classify resolves ambiguous or partial booking input into one canonical
// category using the ordered fallback rules above.
func Classify(in ClassifierInput) models.Category {
	for _, rule := range classifierRules {
		if cat, ok := rule.apply(in); ok {
			return cat
		}
	}
	// The default rule always matches.
	return models.CategoryShortTerm
}
