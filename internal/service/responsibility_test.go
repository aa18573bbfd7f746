package service

import (
	"testing"

	apperrors "fleet-scheduler-backend/internal/errors"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignResponsibility(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	user := env.seedUser(t, testutils.NewUserFactory().Create())

	assignment, err := env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  user.ID,
		Role:    models.ResponsibilityRolePrimary,
	}, "tester")
	require.NoError(t, err)
	assert.True(t, assignment.Active)

	// A second active grant for the same pair is a conflict
	_, err = env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  user.ID,
		Role:    models.ResponsibilityRoleBackup,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrResponsibilityExists)

	active, err := env.responsibility.ListByRoute(route.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAssignResponsibilityValidatesReferences(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	user := env.seedUser(t, testutils.NewUserFactory().Create())

	_, err := env.responsibility.Assign(&AssignRequest{
		RouteID: uuid.New(),
		UserID:  user.ID,
		Role:    models.ResponsibilityRolePrimary,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)

	_, err = env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  uuid.New(),
		Role:    models.ResponsibilityRolePrimary,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  user.ID,
		Role:    "chief",
	}, "tester")
	assert.Error(t, err)
}

func TestRevokeAndReassignResponsibility(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	user := env.seedUser(t, testutils.NewUserFactory().Create())

	assignment, err := env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  user.ID,
		Role:    models.ResponsibilityRolePrimary,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, env.responsibility.Revoke(assignment.ID, "tester"))
	active, err := env.responsibility.ListByRoute(route.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Re-granting reactivates the revoked row with the new role
	regranted, err := env.responsibility.Assign(&AssignRequest{
		RouteID: route.ID,
		UserID:  user.ID,
		Role:    models.ResponsibilityRoleObserver,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, assignment.ID, regranted.ID)
	assert.Equal(t, models.ResponsibilityRoleObserver, regranted.Role)
	assert.True(t, regranted.Active)
}
