package itinerary

import (
	"strings"
	"time"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// MealAllowancePerStop is the fallback meal estimate applied per stop when
// no activity in the trip carries a meal category. A summed meal cost of
// exactly zero is treated as "meals unknown", not as a free trip; the two
// cases are indistinguishable in the data model, so a recorded all-zero
// meal plan also triggers the estimate.
const MealAllowancePerStop = 1500

// Pace thresholds in activities per day. Fixed design constants.
const (
	relaxedMaxPerDay  = 2.0
	balancedMaxPerDay = 4.0
)

// Pace labels summarizing activity density.
const (
	PacePlanning = "Planning"
	PaceRelaxed  = "Relaxed"
	PaceBalanced = "Balanced"
	PacePacked   = "Packed"
)

// CostBreakdown is the per-category cost view of a trip.
type CostBreakdown struct {
	Transport     float64 `json:"transport"`
	Accommodation float64 `json:"accommodation"`
	Activities    float64 `json:"activities"`
	Meals         float64 `json:"meals"`
}

// isMealCategory reports whether an activity category counts toward meals.
func isMealCategory(category string) bool {
	c := strings.ToLower(category)
	return strings.Contains(c, "food") || strings.Contains(c, "dining")
}

// ComputeCostBreakdown sums stop and activity costs into four categories.
// Stops must have their activities loaded; ordering does not matter.
func ComputeCostBreakdown(trip models.Trip, stops []models.TripStop) CostBreakdown {
	var b CostBreakdown

	for _, stop := range stops {
		b.Transport += stop.TransportCost
		b.Accommodation += stop.AccommodationCost

		for _, activity := range stop.Activities {
			if isMealCategory(activity.Category) {
				b.Meals += activity.EstimatedCost
			} else {
				b.Activities += activity.EstimatedCost
			}
		}
	}

	if b.Meals == 0 {
		b.Meals = float64(len(stops)) * MealAllowancePerStop
	}

	return b
}

// TotalEstimated is the sum of the four breakdown categories.
func TotalEstimated(b CostBreakdown) float64 {
	return b.Transport + b.Accommodation + b.Activities + b.Meals
}

// DurationDays returns the trip length in days, inclusive of both the
// start and end date, or 0 when either date is missing.
func DurationDays(trip models.Trip) int {
	return daysInclusive(trip.StartDate, trip.EndDate)
}

// AverageDailyCost divides the total estimate over the trip duration,
// flooring the denominator at one day.
func AverageDailyCost(trip models.Trip, stops []models.TripStop) float64 {
	days := DurationDays(trip)
	if days < 1 {
		days = 1
	}
	return TotalEstimated(ComputeCostBreakdown(trip, stops)) / float64(days)
}

// ComputePace classifies activity density. A trip without dates or stops
// is still in planning.
func ComputePace(trip models.Trip, stops []models.TripStop) string {
	days := DurationDays(trip)
	if days == 0 || len(stops) == 0 {
		return PacePlanning
	}

	total := 0
	for _, stop := range stops {
		total += len(stop.Activities)
	}

	perDay := float64(total) / float64(days)
	switch {
	case perDay < relaxedMaxPerDay:
		return PaceRelaxed
	case perDay <= balancedMaxPerDay:
		return PaceBalanced
	default:
		return PacePacked
	}
}

// RemainingBudget returns the declared budget minus the total estimate.
// Negative means over budget; that is a state to surface, not an error.
func RemainingBudget(trip models.Trip, b CostBreakdown) float64 {
	return trip.TotalBudget - TotalEstimated(b)
}

// dateOnly strips the time component, normalizing to UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInclusive counts whole days between two calendar dates, counting
// both endpoints. Returns 0 when either date is nil or the range is
// inverted.
func daysInclusive(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	d := int(dateOnly(*end).Sub(dateOnly(*start)).Hours()/24) + 1
	if d < 1 {
		return 0
	}
	return d
}
