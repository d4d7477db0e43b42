package ports

import (
	"context"

	"visit-routing-service/internal/domain"
)

// Port: a boundary for caching directional travel-time lookups.
// A cache miss is not an error; the second return distinguishes the two.
type TravelTimeCache interface {
	// Get returns the cached travel minutes for a coordinate pair.
	Get(ctx context.Context, origin, destination domain.Coordinates) (float64, bool, error)
	// Put stores the travel minutes for a coordinate pair.
	Put(ctx context.Context, origin, destination domain.Coordinates, minutes float64) error
}
