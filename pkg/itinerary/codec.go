package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// ExportVersion is the document format version written by Export.
const ExportVersion = "1.0"

// Name suffixes applied when a trip graph is recreated.
const (
	importedSuffix = " (Imported)"
	copySuffix     = " (Copy)"
)

// ExportDocument is the portable, self-describing form of a trip graph.
// Stops and activities are flat arrays carrying their original foreign
// keys; reconstruction follows the keys, not array positions.
type ExportDocument struct {
	Version    string                `json:"version"`
	Trip       models.Trip           `json:"trip"`
	Stops      []models.TripStop     `json:"stops"`
	Activities []models.TripActivity `json:"activities"`
	ExportedAt time.Time             `json:"exportedAt"`
}

// Flatten splits a fully loaded trip into the trip record, its stops and
// all activities, with the nested slices cleared.
func Flatten(trip models.Trip) (models.Trip, []models.TripStop, []models.TripActivity) {
	stops := make([]models.TripStop, 0, len(trip.Stops))
	activities := []models.TripActivity{}

	for _, stop := range trip.Stops {
		for _, activity := range stop.Activities {
			activity.TripStop = models.TripStop{}
			activities = append(activities, activity)
		}
		stop.Activities = nil
		stop.Trip = models.Trip{}
		stops = append(stops, stop)
	}

	trip.Stops = nil
	return trip, stops, activities
}

// Export builds the portable document for a trip graph.
func Export(trip models.Trip, stops []models.TripStop, activities []models.TripActivity, now time.Time) ExportDocument {
	if stops == nil {
		stops = []models.TripStop{}
	}
	if activities == nil {
		activities = []models.TripActivity{}
	}
	return ExportDocument{
		Version:    ExportVersion,
		Trip:       trip,
		Stops:      stops,
		Activities: activities,
		ExportedAt: now,
	}
}

// ValidateExport structurally checks raw document bytes and decodes them.
// It verifies only shape: an object with a trip object carrying a
// non-empty name, and stops/activities present as arrays (possibly
// empty). Cross-references are not checked here; a dangling stop or
// activity reference surfaces during the two-phase insert instead.
func ValidateExport(data []byte) (*ExportDocument, error) {
	var shape struct {
		Trip       json.RawMessage `json:"trip"`
		Stops      json.RawMessage `json:"stops"`
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}

	if !isJSONObject(shape.Trip) {
		return nil, fmt.Errorf("document has no trip object")
	}
	if !isJSONArray(shape.Stops) {
		return nil, fmt.Errorf("document stops must be an array")
	}
	if !isJSONArray(shape.Activities) {
		return nil, fmt.Errorf("document activities must be an array")
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed export document: %w", err)
	}
	if doc.Trip.Name == "" {
		return nil, fmt.Errorf("document trip has no name")
	}
	return &doc, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// PreparedStop is a stop ready for fresh-identity insertion. OriginalID
// keeps the source stop's identifier so the caller can map old to new
// identifiers once the stop has actually been persisted.
type PreparedStop struct {
	Stop       models.TripStop
	OriginalID uint
}

// PreparedActivity is an activity ready for insertion, keeping the
// original stop foreign key for the same remapping.
type PreparedActivity struct {
	Activity       models.TripActivity
	OriginalStopID uint
}

// PreparedImport is the output of PrepareForInsert: a trip graph with all
// identities stripped, ready for the two-phase insert.
type PreparedImport struct {
	Trip       models.Trip
	Stops      []PreparedStop
	Activities []PreparedActivity
}

// PrepareForInsert strips identities from an export document and rebinds
// the trip to a new owner. The imported trip starts private with no share
// code; the caller assigns a fresh code if it is shared again.
func PrepareForInsert(doc ExportDocument, newOwnerID uint) PreparedImport {
	return prepare(doc.Trip, doc.Stops, doc.Activities, newOwnerID, importedSuffix)
}

func prepare(trip models.Trip, stops []models.TripStop, activities []models.TripActivity, ownerID uint, suffix string) PreparedImport {
	newTrip := trip
	newTrip.ID = 0
	newTrip.CreatedAt = time.Time{}
	newTrip.UpdatedAt = time.Time{}
	// A soft-deleted source must not produce a deleted import.
	newTrip.DeletedAt = gorm.DeletedAt{}
	newTrip.UserID = ownerID
	newTrip.User = models.User{}
	newTrip.Name = trip.Name + suffix
	newTrip.IsPublic = false
	newTrip.ShareCode = ""
	newTrip.Stops = nil

	prepared := PreparedImport{Trip: newTrip}

	for _, stop := range stops {
		newStop := stop
		originalID := stop.ID
		newStop.ID = 0
		newStop.CreatedAt = time.Time{}
		newStop.UpdatedAt = time.Time{}
		newStop.DeletedAt = gorm.DeletedAt{}
		newStop.TripID = 0
		newStop.Trip = models.Trip{}
		newStop.Activities = nil
		prepared.Stops = append(prepared.Stops, PreparedStop{Stop: newStop, OriginalID: originalID})
	}

	for _, activity := range activities {
		newActivity := activity
		originalStopID := activity.TripStopID
		newActivity.ID = 0
		newActivity.CreatedAt = time.Time{}
		newActivity.UpdatedAt = time.Time{}
		newActivity.DeletedAt = gorm.DeletedAt{}
		newActivity.TripStopID = 0
		newActivity.TripStop = models.TripStop{}
		prepared.Activities = append(prepared.Activities, PreparedActivity{Activity: newActivity, OriginalStopID: originalStopID})
	}

	return prepared
}

// ImportResult summarizes a completed two-phase insert.
type ImportResult struct {
	Trip              models.Trip
	StopsCreated      int
	ActivitiesCreated int
	ActivitiesDropped int
}

// Import runs the two-phase insert: the trip first, then every stop
// (building the old-to-new stop id map as identifiers are assigned), then
// every activity with its stop foreign key rewritten through that map.
// Activities whose original stop is missing from the map are dropped
// rather than inserted with a dangling reference.
func Import(store Store, prepared PreparedImport) (*ImportResult, error) {
	trip := prepared.Trip
	if err := store.CreateTrip(&trip); err != nil {
		return nil, fmt.Errorf("insert imported trip: %w", err)
	}

	result := &ImportResult{Trip: trip}
	stopIDs := make(map[uint]uint, len(prepared.Stops))

	for _, ps := range prepared.Stops {
		stop := ps.Stop
		stop.TripID = trip.ID
		if err := store.CreateStop(&stop); err != nil {
			return nil, fmt.Errorf("insert imported stop %q: %w", stop.CityName, err)
		}
		stopIDs[ps.OriginalID] = stop.ID
		result.StopsCreated++
	}

	for _, pa := range prepared.Activities {
		newStopID, ok := stopIDs[pa.OriginalStopID]
		if !ok {
			result.ActivitiesDropped++
			continue
		}
		activity := pa.Activity
		activity.TripStopID = newStopID
		if err := store.CreateActivity(&activity); err != nil {
			return nil, fmt.Errorf("insert imported activity %q: %w", activity.Name, err)
		}
		result.ActivitiesCreated++
	}

	return result, nil
}

// Duplicate recreates a fully loaded trip graph for the same owner, in
// memory, without the document boundary. The copy is always private and
// carries no share code.
func Duplicate(store Store, trip models.Trip) (*ImportResult, error) {
	flat, stops, activities := Flatten(trip)
	prepared := prepare(flat, stops, activities, trip.UserID, copySuffix)
	return Import(store, prepared)
}
