package itinerary

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// buildTripGraph assembles a loaded source trip: two stops carrying three
// and two activities respectively.
func buildTripGraph() models.Trip {
	return models.Trip{
		ID:            42,
		UserID:        7,
		Name:          "Japan in spring",
		Description:   "Two weeks, two cities",
		StartDate:     date(2024, 4, 1),
		EndDate:       date(2024, 4, 14),
		CoverImageURL: "https://example.com/fuji.jpg",
		IsPublic:      true,
		ShareCode:     "aabbccddeeff00112233445566778899",
		TotalBudget:   6000,
		Stops: []models.TripStop{
			{
				ID:                100,
				TripID:            42,
				CityName:          "Tokyo",
				Country:           "Japan",
				StartDate:         date(2024, 4, 1),
				EndDate:           date(2024, 4, 8),
				OrderIndex:        0,
				TransportCost:     900,
				AccommodationCost: 1400,
				Notes:             "Shinjuku base",
				Activities: []models.TripActivity{
					{ID: 200, TripStopID: 100, Name: "Tsukiji Food Walk", Category: "Food", EstimatedCost: 60, OrderIndex: 0},
					{ID: 201, TripStopID: 100, Name: "TeamLab", Category: "Culture", EstimatedCost: 30, OrderIndex: 1},
					{ID: 202, TripStopID: 100, Name: "Day trip to Nikko", Category: "Adventure", EstimatedCost: 120, OrderIndex: 2},
				},
			},
			{
				ID:                101,
				TripID:            42,
				CityName:          "Kyoto",
				Country:           "Japan",
				StartDate:         date(2024, 4, 8),
				EndDate:           date(2024, 4, 14),
				OrderIndex:        1,
				TransportCost:     110,
				AccommodationCost: 1100,
				Activities: []models.TripActivity{
					{ID: 203, TripStopID: 101, Name: "Fushimi Inari", Category: "Sightseeing", EstimatedCost: 0, OrderIndex: 0},
					{ID: 204, TripStopID: 101, Name: "Kaiseki dinner", Category: "Dining", EstimatedCost: 150, OrderIndex: 1},
				},
			},
		},
	}
}

func TestExportFlattensGraph(t *testing.T) {
	trip, stops, activities := Flatten(buildTripGraph())
	doc := Export(trip, stops, activities, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	if doc.Version != "1.0" {
		t.Errorf("Version = %s, want 1.0", doc.Version)
	}
	if len(doc.Stops) != 2 || len(doc.Activities) != 5 {
		t.Fatalf("flattened to %d stops / %d activities, want 2 / 5", len(doc.Stops), len(doc.Activities))
	}
	if doc.Trip.Stops != nil {
		t.Error("exported trip should not nest stops")
	}
	for _, stop := range doc.Stops {
		if stop.Activities != nil {
			t.Error("exported stops should not nest activities")
		}
		if stop.TripID != 42 {
			t.Errorf("stop %d lost its trip foreign key", stop.ID)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	source := buildTripGraph()
	trip, stops, activities := Flatten(source)
	doc := Export(trip, stops, activities, time.Now().UTC())

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := ValidateExport(raw)
	if err != nil {
		t.Fatalf("ValidateExport: %v", err)
	}

	const newOwner = 99
	prepared := PrepareForInsert(*decoded, newOwner)

	store := newFakeStore()
	result, err := Import(store, prepared)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if result.StopsCreated != 2 {
		t.Errorf("StopsCreated = %d, want 2", result.StopsCreated)
	}
	if result.ActivitiesCreated != 5 {
		t.Errorf("ActivitiesCreated = %d, want 5", result.ActivitiesCreated)
	}
	if result.ActivitiesDropped != 0 {
		t.Errorf("ActivitiesDropped = %d, want 0", result.ActivitiesDropped)
	}

	// Intentionally altered fields.
	got := result.Trip
	if got.UserID != newOwner {
		t.Errorf("UserID = %d, want %d", got.UserID, newOwner)
	}
	if got.Name != "Japan in spring (Imported)" {
		t.Errorf("Name = %q, want imported suffix", got.Name)
	}
	if got.IsPublic {
		t.Error("imported trip must be private")
	}
	if got.ShareCode != "" {
		t.Error("imported trip must not inherit a share code")
	}
	if got.ID == source.ID {
		t.Error("imported trip must get a fresh identifier")
	}

	// Everything else carries over.
	if got.Description != source.Description || got.TotalBudget != source.TotalBudget ||
		!got.StartDate.Equal(*source.StartDate) || !got.EndDate.Equal(*source.EndDate) {
		t.Errorf("trip fields diverged: %+v", got)
	}

	// The graph shape is isomorphic: activity counts per stop survive.
	newStops := store.stopsForTrip(got.ID)
	if len(newStops) != 2 {
		t.Fatalf("reconstructed %d stops, want 2", len(newStops))
	}
	wantCounts := map[string]int{"Tokyo": 3, "Kyoto": 2}
	for _, stop := range newStops {
		acts, err := store.GetActivitiesByStopID(stop.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(acts) != wantCounts[stop.CityName] {
			t.Errorf("%s has %d activities, want %d", stop.CityName, len(acts), wantCounts[stop.CityName])
		}
		for _, a := range acts {
			if a.TripStopID != stop.ID {
				t.Errorf("activity %q points at stop %d, want %d", a.Name, a.TripStopID, stop.ID)
			}
		}
	}

	// Stop field values excluding identity also survive.
	for i, stop := range newStops {
		src := source.Stops[i]
		if stop.CityName != src.CityName || stop.TransportCost != src.TransportCost ||
			stop.AccommodationCost != src.AccommodationCost || stop.OrderIndex != src.OrderIndex {
			t.Errorf("stop %d fields diverged: got %+v want %+v", i, stop, src)
		}
	}
}

func TestValidateExportRejectsMissingStops(t *testing.T) {
	raw := []byte(`{"version":"1.0","trip":{"name":"X"},"activities":[]}`)
	if _, err := ValidateExport(raw); err == nil {
		t.Fatal("expected rejection when stops is not an array")
	}

	raw = []byte(`{"version":"1.0","trip":{"name":"X"},"stops":"nope","activities":[]}`)
	if _, err := ValidateExport(raw); err == nil {
		t.Fatal("expected rejection when stops is a string")
	}
}

func TestValidateExportRejectsBadTrip(t *testing.T) {
	cases := []string{
		`[]`,
		`{"stops":[],"activities":[]}`,
		`{"trip":"word","stops":[],"activities":[]}`,
		`{"trip":{"name":""},"stops":[],"activities":[]}`,
	}
	for _, raw := range cases {
		if _, err := ValidateExport([]byte(raw)); err == nil {
			t.Errorf("expected rejection for %s", raw)
		}
	}
}

func TestValidateExportAcceptsEmptyArrays(t *testing.T) {
	raw := []byte(`{"version":"1.0","trip":{"name":"Bare"},"stops":[],"activities":[]}`)
	doc, err := ValidateExport(raw)
	if err != nil {
		t.Fatalf("ValidateExport: %v", err)
	}
	if doc.Trip.Name != "Bare" {
		t.Errorf("Trip.Name = %q", doc.Trip.Name)
	}
}

func TestPrepareForInsertClearsDeletion(t *testing.T) {
	source := buildTripGraph()
	deleted := gorm.DeletedAt{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	source.DeletedAt = deleted
	source.Stops[0].DeletedAt = deleted
	source.Stops[0].Activities[0].DeletedAt = deleted

	trip, stops, activities := Flatten(source)
	prepared := PrepareForInsert(Export(trip, stops, activities, time.Now().UTC()), 1)

	if prepared.Trip.DeletedAt.Valid {
		t.Error("prepared trip inherited the source's deletion mark")
	}
	for i, ps := range prepared.Stops {
		if ps.Stop.DeletedAt.Valid {
			t.Errorf("prepared stop %d inherited the source's deletion mark", i)
		}
	}
	for i, pa := range prepared.Activities {
		if pa.Activity.DeletedAt.Valid {
			t.Errorf("prepared activity %d inherited the source's deletion mark", i)
		}
	}
}

func TestImportDropsOrphanActivities(t *testing.T) {
	source := buildTripGraph()
	trip, stops, activities := Flatten(source)

	// An activity pointing at a stop id that is not in the document.
	activities = append(activities, models.TripActivity{
		ID: 999, TripStopID: 12345, Name: "Ghost tour", EstimatedCost: 10,
	})

	doc := Export(trip, stops, activities, time.Now().UTC())
	prepared := PrepareForInsert(doc, 1)

	store := newFakeStore()
	result, err := Import(store, prepared)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.ActivitiesCreated != 5 {
		t.Errorf("ActivitiesCreated = %d, want 5", result.ActivitiesCreated)
	}
	if result.ActivitiesDropped != 1 {
		t.Errorf("ActivitiesDropped = %d, want 1", result.ActivitiesDropped)
	}
}

func TestDuplicateKeepsOwnerForcesPrivate(t *testing.T) {
	source := buildTripGraph()
	store := newFakeStore()

	result, err := Duplicate(store, source)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	if result.Trip.UserID != source.UserID {
		t.Errorf("UserID = %d, want same owner %d", result.Trip.UserID, source.UserID)
	}
	if !strings.HasSuffix(result.Trip.Name, " (Copy)") {
		t.Errorf("Name = %q, want (Copy) suffix", result.Trip.Name)
	}
	if result.Trip.IsPublic || result.Trip.ShareCode != "" {
		t.Error("copy must be private with no share code")
	}
	if result.StopsCreated != 2 || result.ActivitiesCreated != 5 {
		t.Errorf("copied %d stops / %d activities, want 2 / 5", result.StopsCreated, result.ActivitiesCreated)
	}
}
