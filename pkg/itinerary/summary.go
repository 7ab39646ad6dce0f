package itinerary

import (
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// Summary bundles every derived metric the trip builder screen needs in
// one pass over the loaded graph.
type Summary struct {
	DurationDays     int           `json:"duration_days"`
	Breakdown        CostBreakdown `json:"breakdown"`
	TotalEstimated   float64       `json:"total_estimated"`
	AverageDailyCost float64       `json:"average_daily_cost"`
	Pace             string        `json:"pace"`
	RemainingBudget  float64       `json:"remaining_budget"`
	Alerts           []Alert       `json:"alerts"`
}

// Summarize computes the full derived view of a trip. Pure; recomputing
// on unchanged input yields identical output.
func Summarize(trip models.Trip, stops []models.TripStop) Summary {
	breakdown := ComputeCostBreakdown(trip, stops)
	total := TotalEstimated(breakdown)

	days := DurationDays(trip)
	divisor := days
	if divisor < 1 {
		divisor = 1
	}

	return Summary{
		DurationDays:     days,
		Breakdown:        breakdown,
		TotalEstimated:   total,
		AverageDailyCost: total / float64(divisor),
		Pace:             ComputePace(trip, stops),
		RemainingBudget:  trip.TotalBudget - total,
		Alerts:           DetectConflicts(trip, stops),
	}
}
