package distance

import (
	"context"
	"fmt"

	"visit-routing-service/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Minutes  float64
}

// MockDistanceProvider serves fixed travel times for tests. Missing pairs
// are an error so tests notice incomplete fixtures instead of silently
// getting zeros.
type MockDistanceProvider struct {
	m map[string]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = p.Minutes
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) TravelTime(ctx context.Context, origin, destination domain.Coordinates) (float64, error) {
	minutes, ok := p.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return 0, fmt.Errorf("missing pair %q -> %q", origin.Key(), destination.Key())
	}

	return minutes, nil
}
