package distance

import (
	"testing"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/repository"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPair(t *testing.T, repo *repository.RouteRepository) (uuid.UUID, uuid.UUID) {
	t.Helper()
	a := testutils.NewRouteFactory().Create()
	b := testutils.NewRouteFactory().Create()
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	return a.ID, b.ID
}

func TestTableProviderResolvesEitherDirection(t *testing.T) {
	db := testutils.SetupTestDB(t)
	routes := repository.NewRouteRepository(db)
	distances := repository.NewRouteDistanceRepository(db)
	provider := NewTableProvider(distances)

	from, to := seedPair(t, routes)
	require.NoError(t, distances.Upsert(&models.RouteDistance{
		FromRouteID: from,
		ToRouteID:   to,
		DistanceKm:  18.5,
	}))

	km, err := provider.BetweenKm(from, to)
	require.NoError(t, err)
	assert.Equal(t, 18.5, km)

	// Only one direction is recorded; the reverse lookup falls back to it
	km, err = provider.BetweenKm(to, from)
	require.NoError(t, err)
	assert.Equal(t, 18.5, km)
}

func TestTableProviderUnknownPair(t *testing.T) {
	db := testutils.SetupTestDB(t)
	provider := NewTableProvider(repository.NewRouteDistanceRepository(db))

	_, err := provider.BetweenKm(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownPair)
}

func TestTableProviderInvalidateDropsMemoizedValues(t *testing.T) {
	db := testutils.SetupTestDB(t)
	routes := repository.NewRouteRepository(db)
	distances := repository.NewRouteDistanceRepository(db)
	provider := NewTableProvider(distances)

	from, to := seedPair(t, routes)
	require.NoError(t, distances.Upsert(&models.RouteDistance{
		FromRouteID: from,
		ToRouteID:   to,
		DistanceKm:  18.5,
	}))

	_, err := provider.BetweenKm(from, to)
	require.NoError(t, err)

	require.NoError(t, distances.Upsert(&models.RouteDistance{
		FromRouteID: from,
		ToRouteID:   to,
		DistanceKm:  22.0,
	}))

	// The stale value is served until the cache is flushed
	km, err := provider.BetweenKm(from, to)
	require.NoError(t, err)
	assert.Equal(t, 18.5, km)

	provider.Invalidate()
	km, err = provider.BetweenKm(from, to)
	require.NoError(t, err)
	assert.Equal(t, 22.0, km)
}
