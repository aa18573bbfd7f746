package distance

import (
	"fmt"

	"github.com/google/uuid"
)

// StaticPair seeds a StaticProvider with one directed distance
type StaticPair struct {
	From, To uuid.UUID
	Km       float64
}

// StaticProvider resolves distances from a fixed in-memory table. Used in
// tests and local setups without distance data.
type StaticProvider struct {
	m map[string]float64
}

// NewStaticProvider creates a provider from a fixed set of pairs
func NewStaticProvider(pairs []StaticPair) *StaticProvider {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = p.Km
	}
	return &StaticProvider{m: m}
}

// BetweenKm resolves a distance, checking the reverse direction as fallback
func (p *StaticProvider) BetweenKm(fromRouteID, toRouteID uuid.UUID) (float64, error) {
	if km, ok := p.m[pairKey(fromRouteID, toRouteID)]; ok {
		return km, nil
	}
	if km, ok := p.m[pairKey(toRouteID, fromRouteID)]; ok {
		return km, nil
	}
	return 0, fmt.Errorf("%w: %s -> %s", ErrUnknownPair, fromRouteID, toRouteID)
}
