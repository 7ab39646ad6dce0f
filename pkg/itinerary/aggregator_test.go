package itinerary

import (
	"reflect"
	"testing"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

func TestComputeCostBreakdownMealsFallback(t *testing.T) {
	trip := models.Trip{
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 2),
	}
	stops := []models.TripStop{
		{
			CityName:          "Rome",
			TransportCost:     1000,
			AccommodationCost: 2000,
			Activities: []models.TripActivity{
				{Name: "Colosseum", Category: "Sightseeing", EstimatedCost: 500},
			},
		},
	}

	b := ComputeCostBreakdown(trip, stops)
	want := CostBreakdown{Transport: 1000, Accommodation: 2000, Activities: 500, Meals: 1500}
	if b != want {
		t.Fatalf("breakdown = %+v, want %+v", b, want)
	}
	if got := TotalEstimated(b); got != 5000 {
		t.Errorf("TotalEstimated = %v, want 5000", got)
	}
}

func TestComputeCostBreakdownMealCategories(t *testing.T) {
	stops := []models.TripStop{
		{
			CityName: "Tokyo",
			Activities: []models.TripActivity{
				{Name: "Market walk", Category: "Food", EstimatedCost: 60},
				{Name: "Omakase", Category: "Fine Dining", EstimatedCost: 200},
				{Name: "Museum", Category: "Culture", EstimatedCost: 20},
			},
		},
	}

	b := ComputeCostBreakdown(models.Trip{}, stops)
	if b.Meals != 260 {
		t.Errorf("Meals = %v, want 260", b.Meals)
	}
	if b.Activities != 20 {
		t.Errorf("Activities = %v, want 20", b.Activities)
	}
}

func TestComputeCostBreakdownNoStops(t *testing.T) {
	b := ComputeCostBreakdown(models.Trip{}, nil)
	// Zero stops means a zero meal estimate as well.
	if b.Meals != 0 {
		t.Errorf("Meals = %v, want 0", b.Meals)
	}
	if TotalEstimated(b) != 0 {
		t.Errorf("TotalEstimated = %v, want 0", TotalEstimated(b))
	}
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name string
		trip models.Trip
		want int
	}{
		{"no dates", models.Trip{}, 0},
		{"start only", models.Trip{StartDate: date(2024, 3, 1)}, 0},
		{"single day", models.Trip{StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1)}, 1},
		{"one week", models.Trip{StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 7)}, 7},
		{"inverted", models.Trip{StartDate: date(2024, 3, 7), EndDate: date(2024, 3, 1)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationDays(tt.trip); got != tt.want {
				t.Errorf("DurationDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAverageDailyCostFloorsDenominator(t *testing.T) {
	// No dates: duration 0 but the divisor floors at 1.
	stops := []models.TripStop{{TransportCost: 400, AccommodationCost: 100}}
	got := AverageDailyCost(models.Trip{}, stops)
	// 400 + 100 + meal fallback 1500
	if got != 2000 {
		t.Errorf("AverageDailyCost = %v, want 2000", got)
	}
}

func TestComputePace(t *testing.T) {
	dated := models.Trip{StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 3)} // 3 days

	stopsWith := func(counts ...int) []models.TripStop {
		var stops []models.TripStop
		for _, n := range counts {
			stop := models.TripStop{CityName: "X"}
			for i := 0; i < n; i++ {
				stop.Activities = append(stop.Activities, models.TripActivity{Name: "a"})
			}
			stops = append(stops, stop)
		}
		return stops
	}

	tests := []struct {
		name  string
		trip  models.Trip
		stops []models.TripStop
		want  string
	}{
		{"no dates", models.Trip{}, stopsWith(3), PacePlanning},
		{"no stops", dated, nil, PacePlanning},
		{"relaxed", dated, stopsWith(2, 1), PaceRelaxed},    // 1/day
		{"balanced", dated, stopsWith(5, 4), PaceBalanced},  // 3/day
		{"balanced upper", dated, stopsWith(6, 6), PaceBalanced}, // 4/day inclusive
		{"packed", dated, stopsWith(12, 8), PacePacked},     // ~6.67/day
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputePace(tt.trip, tt.stops); got != tt.want {
				t.Errorf("ComputePace = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRemainingBudgetGoesNegative(t *testing.T) {
	trip := models.Trip{TotalBudget: 1000}
	b := CostBreakdown{Transport: 800, Accommodation: 700}
	if got := RemainingBudget(trip, b); got != -500 {
		t.Errorf("RemainingBudget = %v, want -500", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	trip := models.Trip{
		Name:        "Iberia",
		TotalBudget: 4000,
		StartDate:   date(2024, 9, 1),
		EndDate:     date(2024, 9, 5),
	}
	stops := []models.TripStop{
		{
			CityName:          "Lisbon",
			StartDate:         date(2024, 9, 1),
			EndDate:           date(2024, 9, 3),
			TransportCost:     300,
			AccommodationCost: 450,
			Activities: []models.TripActivity{
				{Name: "Fado Night", Category: "Entertainment", EstimatedCost: 55, ScheduledAt: date(2024, 9, 2)},
			},
		},
		{
			CityName:          "Barcelona",
			StartDate:         date(2024, 9, 3),
			EndDate:           date(2024, 9, 5),
			TransportCost:     120,
			AccommodationCost: 500,
		},
	}

	first := Summarize(trip, stops)
	second := Summarize(trip, stops)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Summarize not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
	if first.TotalEstimated != TotalEstimated(first.Breakdown) {
		t.Errorf("TotalEstimated %v does not equal breakdown sum %v",
			first.TotalEstimated, TotalEstimated(first.Breakdown))
	}
	if first.DurationDays != 5 {
		t.Errorf("DurationDays = %d, want 5", first.DurationDays)
	}
}
