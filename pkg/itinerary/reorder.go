package itinerary

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
)

// Direction of an adjacent stop move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Valid reports whether the direction is one of the two supported moves.
func (d Direction) Valid() bool {
	return d == MoveUp || d == MoveDown
}

// MoveStop swaps the order_index of the identified stop with its
// neighbour in the given direction. stops must be sorted by order_index
// ascending; the slice is updated in place so it stays sorted after the
// swap. Moving the first stop up or the last stop down is a safe no-op
// (moved == false).
//
// Both index updates are issued and awaited; if either write fails the
// whole move is reported as one failed operation and the slice is
// restored to its pre-move state. There is no transaction, so the store
// itself may hold a half-applied swap until the caller retries.
func MoveStop(store Store, stops []models.TripStop, stopID uint, direction Direction) (moved bool, err error) {
	if !direction.Valid() {
		return false, fmt.Errorf("invalid move direction: %s", direction)
	}

	current := -1
	for i := range stops {
		if stops[i].ID == stopID {
			current = i
			break
		}
	}
	if current == -1 {
		return false, fmt.Errorf("stop %d not found in trip", stopID)
	}

	target := current + 1
	if direction == MoveUp {
		target = current - 1
	}
	if target < 0 || target >= len(stops) {
		// Boundary move; nothing to do.
		return false, nil
	}

	// Exchange only the order_index values; no other stop is touched.
	stops[current].OrderIndex, stops[target].OrderIndex = stops[target].OrderIndex, stops[current].OrderIndex

	var g errgroup.Group
	for _, i := range []int{current, target} {
		stop := stops[i]
		g.Go(func() error {
			if err := store.UpdateStopOrder(stop.ID, stop.OrderIndex); err != nil {
				return fmt.Errorf("update order of stop %d: %w", stop.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Undo the index exchange so the slice still reflects the order
		// the caller loaded.
		stops[current].OrderIndex, stops[target].OrderIndex = stops[target].OrderIndex, stops[current].OrderIndex
		return false, fmt.Errorf("move stop %d %s: %w", stopID, direction, err)
	}

	stops[current], stops[target] = stops[target], stops[current]
	return true, nil
}
