package itinerary

import (
	"fmt"
	"math"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// Alert types.
const (
	AlertTypeBudget     = "budget"
	AlertTypeActivities = "activities"
	AlertTypeDate       = "date"
)

// Alert severities. An error marks a structural inconsistency (an
// activity scheduled outside its stop's visit window); a warning is a
// soft cost or pacing heuristic.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Detection constants.
const (
	// budgetTolerance is the band above the trip's daily budget a stop's
	// daily spend may occupy before a budget alert fires.
	budgetTolerance = 1.2

	// maxActivitiesPerDay is the density above which a stop is flagged
	// as overcrowded.
	maxActivitiesPerDay = 5.0
)

// Alert is an advisory raised by conflict detection. Alerts never block
// a workflow and are never persisted; detection re-runs on every change.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// DetectConflicts scans a trip's fully loaded stops and returns advisory
// alerts from three passes, concatenated in a fixed order: per-stop daily
// budget overruns, activity overcrowding, and activities scheduled
// outside their stop's date range. It is idempotent and never fails.
func DetectConflicts(trip models.Trip, stops []models.TripStop) []Alert {
	alerts := []Alert{}
	alerts = append(alerts, budgetAlerts(trip, stops)...)
	alerts = append(alerts, densityAlerts(stops)...)
	alerts = append(alerts, dateRangeAlerts(stops)...)
	return alerts
}

// budgetAlerts flags stops whose daily spend exceeds the trip's daily
// budget by more than the tolerance band. Runs only when the trip has
// both dates and a positive budget.
func budgetAlerts(trip models.Trip, stops []models.TripStop) []Alert {
	var alerts []Alert

	tripDays := DurationDays(trip)
	if tripDays == 0 || trip.TotalBudget <= 0 {
		return alerts
	}
	dailyBudget := trip.TotalBudget / float64(tripDays)

	for _, stop := range stops {
		stopDays := daysInclusive(stop.StartDate, stop.EndDate)
		if stopDays == 0 {
			continue
		}

		stopCost := stop.TransportCost + stop.AccommodationCost
		for _, activity := range stop.Activities {
			stopCost += activity.EstimatedCost
		}

		stopDailyCost := stopCost / float64(stopDays)
		if stopDailyCost > dailyBudget*budgetTolerance {
			overrun := math.Round(stopDailyCost - dailyBudget)
			alerts = append(alerts, Alert{
				Type:     AlertTypeBudget,
				Message:  fmt.Sprintf("Daily spend in %s is %.0f over your daily budget", stop.CityName, overrun),
				Severity: SeverityWarning,
			})
		}
	}

	return alerts
}

// densityAlerts flags stops packing more activities per day than anyone
// can realistically do.
func densityAlerts(stops []models.TripStop) []Alert {
	var alerts []Alert

	for _, stop := range stops {
		stopDays := daysInclusive(stop.StartDate, stop.EndDate)
		if stopDays == 0 || len(stop.Activities) == 0 {
			continue
		}

		perDay := float64(len(stop.Activities)) / float64(stopDays)
		if perDay > maxActivitiesPerDay {
			alerts = append(alerts, Alert{
				Type:     AlertTypeActivities,
				Message:  fmt.Sprintf("%s has around %.0f activities per day planned", stop.CityName, math.Round(perDay)),
				Severity: SeverityWarning,
			})
		}
	}

	return alerts
}

// dateRangeAlerts flags activities scheduled outside their stop's
// inclusive date range.
func dateRangeAlerts(stops []models.TripStop) []Alert {
	var alerts []Alert

	for _, stop := range stops {
		if stop.StartDate == nil || stop.EndDate == nil {
			continue
		}
		start := dateOnly(*stop.StartDate)
		end := dateOnly(*stop.EndDate)

		for _, activity := range stop.Activities {
			if activity.ScheduledAt == nil {
				continue
			}
			day := dateOnly(*activity.ScheduledAt)
			if day.Before(start) || day.After(end) {
				alerts = append(alerts, Alert{
					Type:     AlertTypeDate,
					Message:  fmt.Sprintf("%q is scheduled outside your dates for %s", activity.Name, stop.CityName),
					Severity: SeverityError,
				})
			}
		}
	}

	return alerts
}
