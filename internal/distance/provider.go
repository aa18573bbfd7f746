package distance

import (
	"errors"
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// ErrUnknownPair is returned when no distance is recorded for a route pair
var ErrUnknownPair = errors.New("no distance recorded for route pair")

// Provider resolves the road distance in kilometers between two routes
type Provider interface {
	BetweenKm(fromRouteID, toRouteID uuid.UUID) (float64, error)
}

// TableProvider reads distances from the route_distances table with a
// short-lived in-memory memoization layer in front of it.
type TableProvider struct {
	repo  *repository.RouteDistanceRepository
	cache *gocache.Cache
}

// NewTableProvider creates a table-backed distance provider
func NewTableProvider(repo *repository.RouteDistanceRepository) *TableProvider {
	return &TableProvider{
		repo:  repo,
		cache: gocache.New(10*time.Minute, 20*time.Minute),
	}
}

// BetweenKm resolves the distance for an ordered route pair, falling back
// to the reverse pair when only one direction is recorded
func (p *TableProvider) BetweenKm(fromRouteID, toRouteID uuid.UUID) (float64, error) {
	key := pairKey(fromRouteID, toRouteID)
	if v, found := p.cache.Get(key); found {
		return v.(float64), nil
	}

	record, err := p.repo.GetByPair(fromRouteID, toRouteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record, err = p.repo.GetByPair(toRouteID, fromRouteID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnknownPair, fromRouteID, toRouteID)
	}
	if err != nil {
		return 0, err
	}

	p.cache.Set(key, record.DistanceKm, gocache.DefaultExpiration)
	return record.DistanceKm, nil
}

// Invalidate drops all memoized distances, e.g. after a distance upsert
func (p *TableProvider) Invalidate() {
	p.cache.Flush()
}

func pairKey(from, to uuid.UUID) string {
	return from.String() + "|" + to.String()
}
