// Package itinerary contains the trip consistency engine: derived budget
// and pace metrics, conflict detection, stop reordering and the trip
// export/import codec. Everything here is deterministic and safe to
// re-run on every data change; persistence goes through the injected
// Store so tests can substitute an in-memory fake.
package itinerary

import (
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// Store is the minimal persistence surface the engine needs. db.Repository
// satisfies it in production.
type Store interface {
	CreateTrip(trip *models.Trip) error
	CreateStop(stop *models.TripStop) error
	CreateActivity(activity *models.TripActivity) error
	UpdateStopOrder(stopID uint, orderIndex int) error
	GetActivitiesByStopID(stopID uint) ([]models.TripActivity, error)
}
