package ports

import (
	"context"

	"visit-routing-service/internal/domain"
)

// Contract for estimating driving time between two coordinates.
type DistanceProvider interface {
	// Return estimated driving time in minutes from origin to destination.
	// The estimate is directional: TravelTime(a,b) need not equal
	// TravelTime(b,a). Implementations backed by an external service must
	// degrade per pair to a geodesic estimate instead of failing the lookup.
	TravelTime(ctx context.Context, origin, destination domain.Coordinates) (float64, error)
}
