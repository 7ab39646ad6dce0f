package itinerary

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// LoadActivities fills in the Activities slice of every stop by fetching
// them concurrently, one request per stop, and waiting for all of them.
// Any single failure fails the whole load; there are no silent partial
// results. The input slice is not modified on failure.
func LoadActivities(ctx context.Context, store Store, stops []models.TripStop) ([]models.TripStop, error) {
	loaded := make([]models.TripStop, len(stops))
	copy(loaded, stops)

	g, _ := errgroup.WithContext(ctx)
	for i := range loaded {
		i := i
		g.Go(func() error {
			activities, err := store.GetActivitiesByStopID(loaded[i].ID)
			if err != nil {
				return fmt.Errorf("load activities for stop %d: %w", loaded[i].ID, err)
			}
			loaded[i].Activities = activities
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return loaded, nil
}
