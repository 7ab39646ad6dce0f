package itinerary

import (
	"fmt"
	"sync"
	"time"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// fakeStore is an in-memory Store used across the package tests.
type fakeStore struct {
	mu         sync.Mutex
	nextID     uint
	trips      map[uint]models.Trip
	stops      map[uint]models.TripStop
	activities map[uint]models.TripActivity

	// failOrderUpdateFor makes UpdateStopOrder fail for one stop id.
	failOrderUpdateFor uint
	// failActivitiesFor makes GetActivitiesByStopID fail for one stop id.
	failActivitiesFor uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		trips:      map[uint]models.Trip{},
		stops:      map[uint]models.TripStop{},
		activities: map[uint]models.TripActivity{},
	}
}

func (f *fakeStore) allocID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateTrip(trip *models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	trip.ID = f.allocID()
	trip.CreatedAt = time.Now().UTC()
	trip.UpdatedAt = trip.CreatedAt
	f.trips[trip.ID] = *trip
	return nil
}

func (f *fakeStore) CreateStop(stop *models.TripStop) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stop.ID = f.allocID()
	stop.CreatedAt = time.Now().UTC()
	stop.UpdatedAt = stop.CreatedAt
	f.stops[stop.ID] = *stop
	return nil
}

func (f *fakeStore) CreateActivity(activity *models.TripActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	activity.ID = f.allocID()
	activity.CreatedAt = time.Now().UTC()
	activity.UpdatedAt = activity.CreatedAt
	f.activities[activity.ID] = *activity
	return nil
}

func (f *fakeStore) UpdateStopOrder(stopID uint, orderIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOrderUpdateFor == stopID {
		return fmt.Errorf("store unavailable")
	}
	stop, ok := f.stops[stopID]
	if !ok {
		return fmt.Errorf("stop %d not found", stopID)
	}
	stop.OrderIndex = orderIndex
	f.stops[stopID] = stop
	return nil
}

func (f *fakeStore) GetActivitiesByStopID(stopID uint) ([]models.TripActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failActivitiesFor == stopID {
		return nil, fmt.Errorf("store unavailable")
	}
	var out []models.TripActivity
	for _, activity := range f.activities {
		if activity.TripStopID == stopID {
			out = append(out, activity)
		}
	}
	return out, nil
}

// stopsForTrip returns the stored stops of a trip sorted by order_index.
func (f *fakeStore) stopsForTrip(tripID uint) []models.TripStop {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TripStop
	for _, stop := range f.stops {
		if stop.TripID == tripID {
			out = append(out, stop)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].OrderIndex < out[i].OrderIndex {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// date builds a UTC calendar date.
func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
