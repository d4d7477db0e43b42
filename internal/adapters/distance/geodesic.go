package distance

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"visit-routing-service/internal/domain"
)

const (
	earthRadiusKm   = 6371.0
	averageSpeedKmh = 30.0
	detourFactorMin = 1.2
	detourFactorMax = 1.5
)

// GeodesicEstimator estimates driving time from great-circle distance at a
// fixed average speed, scaled by a stochastic detour factor in [1.2, 1.5).
//
// The detour factor makes estimates non-reproducible across calls unless
// the estimator is pinned to a fixed seed. Tests must construct it with a
// known seed (or inject a fixed provider) rather than exercising the
// randomness.
type GeodesicEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGeodesicEstimator(seed int64) *GeodesicEstimator {
	return &GeodesicEstimator{rng: rand.New(rand.NewSource(seed))}
}

func (g *GeodesicEstimator) TravelTime(_ context.Context, origin, destination domain.Coordinates) (float64, error) {
	distKm := haversineKm(origin, destination)
	baseMinutes := distKm / averageSpeedKmh * 60.0

	g.mu.Lock()
	factor := detourFactorMin + g.rng.Float64()*(detourFactorMax-detourFactorMin)
	g.mu.Unlock()

	return baseMinutes * factor, nil
}

func haversineKm(a, b domain.Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
