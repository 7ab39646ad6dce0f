package itinerary

import (
	"reflect"
	"strings"
	"testing"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

func TestDetectConflictsOutOfRangeActivity(t *testing.T) {
	stop := models.TripStop{
		CityName:  "Paris",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 2),
		Activities: []models.TripActivity{
			{Name: "Louvre Museum", ScheduledAt: date(2024, 1, 5)},
		},
	}

	alerts := DetectConflicts(models.Trip{}, []models.TripStop{stop})
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.Type != AlertTypeDate || a.Severity != SeverityError {
		t.Errorf("alert = %+v, want type=date severity=error", a)
	}
	if !strings.Contains(a.Message, "Louvre Museum") || !strings.Contains(a.Message, "Paris") {
		t.Errorf("message %q should name the activity and the stop", a.Message)
	}
}

func TestDetectConflictsInRangeActivity(t *testing.T) {
	stop := models.TripStop{
		CityName:  "Paris",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 2),
		Activities: []models.TripActivity{
			{Name: "Louvre Museum", ScheduledAt: date(2024, 1, 1)},
		},
	}

	alerts := DetectConflicts(models.Trip{}, []models.TripStop{stop})
	if len(alerts) != 0 {
		t.Fatalf("got %d alerts, want 0: %+v", len(alerts), alerts)
	}
}

func TestDetectConflictsBudgetOverrun(t *testing.T) {
	trip := models.Trip{
		TotalBudget: 700,
		StartDate:   date(2024, 4, 1),
		EndDate:     date(2024, 4, 7), // 7 days, 100/day budget
	}
	stop := models.TripStop{
		CityName:          "Reykjavik",
		StartDate:         date(2024, 4, 1),
		EndDate:           date(2024, 4, 2), // 2 days
		TransportCost:     200,
		AccommodationCost: 400, // 300/day, well past the 20% band
	}

	alerts := DetectConflicts(trip, []models.TripStop{stop})
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.Type != AlertTypeBudget || a.Severity != SeverityWarning {
		t.Errorf("alert = %+v, want type=budget severity=warning", a)
	}
	// Overrun is 300 - 100, rounded to the whole unit.
	if !strings.Contains(a.Message, "200") || !strings.Contains(a.Message, "Reykjavik") {
		t.Errorf("message %q should carry the overrun and the stop", a.Message)
	}
}

func TestDetectConflictsBudgetWithinTolerance(t *testing.T) {
	trip := models.Trip{
		TotalBudget: 700,
		StartDate:   date(2024, 4, 1),
		EndDate:     date(2024, 4, 7),
	}
	// 115/day against a 100/day budget: inside the 1.2 band.
	stop := models.TripStop{
		CityName:          "Lisbon",
		StartDate:         date(2024, 4, 1),
		EndDate:           date(2024, 4, 2),
		AccommodationCost: 230,
	}

	if alerts := DetectConflicts(trip, []models.TripStop{stop}); len(alerts) != 0 {
		t.Fatalf("got %d alerts, want 0: %+v", len(alerts), alerts)
	}
}

func TestDetectConflictsBudgetPassSkipped(t *testing.T) {
	overloaded := models.TripStop{
		CityName:          "Oslo",
		StartDate:         date(2024, 4, 1),
		EndDate:           date(2024, 4, 1),
		AccommodationCost: 100000,
	}

	// No budget: pass does not run.
	zeroBudget := models.Trip{StartDate: date(2024, 4, 1), EndDate: date(2024, 4, 7)}
	if alerts := DetectConflicts(zeroBudget, []models.TripStop{overloaded}); len(alerts) != 0 {
		t.Errorf("zero-budget trip produced alerts: %+v", alerts)
	}

	// No trip dates: pass does not run either.
	noDates := models.Trip{TotalBudget: 700}
	if alerts := DetectConflicts(noDates, []models.TripStop{overloaded}); len(alerts) != 0 {
		t.Errorf("undated trip produced budget alerts: %+v", alerts)
	}
}

func TestDetectConflictsActivityDensity(t *testing.T) {
	stop := models.TripStop{
		CityName:  "Bangkok",
		StartDate: date(2024, 2, 1),
		EndDate:   date(2024, 2, 2), // 2 days
	}
	for i := 0; i < 12; i++ { // 6 per day
		stop.Activities = append(stop.Activities, models.TripActivity{Name: "temple"})
	}

	alerts := DetectConflicts(models.Trip{}, []models.TripStop{stop})
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	if alerts[0].Type != AlertTypeActivities || alerts[0].Severity != SeverityWarning {
		t.Errorf("alert = %+v, want type=activities severity=warning", alerts[0])
	}
	if !strings.Contains(alerts[0].Message, "6") {
		t.Errorf("message %q should carry the rounded per-day count", alerts[0].Message)
	}
}

func TestDetectConflictsPassOrder(t *testing.T) {
	trip := models.Trip{
		TotalBudget: 100,
		StartDate:   date(2024, 3, 1),
		EndDate:     date(2024, 3, 2),
	}
	stop := models.TripStop{
		CityName:          "Rome",
		StartDate:         date(2024, 3, 1),
		EndDate:           date(2024, 3, 1),
		AccommodationCost: 1000,
	}
	for i := 0; i < 7; i++ {
		stop.Activities = append(stop.Activities, models.TripActivity{
			Name:        "walk",
			ScheduledAt: date(2024, 3, 9),
		})
	}

	alerts := DetectConflicts(trip, []models.TripStop{stop})
	var types []string
	for _, a := range alerts {
		types = append(types, a.Type)
	}
	want := []string{
		AlertTypeBudget,
		AlertTypeActivities,
		AlertTypeDate, AlertTypeDate, AlertTypeDate, AlertTypeDate, AlertTypeDate, AlertTypeDate, AlertTypeDate,
	}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("alert order = %v, want %v", types, want)
	}
}

func TestDetectConflictsIdempotent(t *testing.T) {
	trip := models.Trip{
		TotalBudget: 500,
		StartDate:   date(2024, 3, 1),
		EndDate:     date(2024, 3, 5),
	}
	stops := []models.TripStop{
		{
			CityName:          "Rome",
			StartDate:         date(2024, 3, 1),
			EndDate:           date(2024, 3, 2),
			AccommodationCost: 900,
			Activities: []models.TripActivity{
				{Name: "ruins", ScheduledAt: date(2024, 3, 10)},
			},
		},
	}

	first := DetectConflicts(trip, stops)
	second := DetectConflicts(trip, stops)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("DetectConflicts not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
