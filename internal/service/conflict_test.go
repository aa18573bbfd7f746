package service

import (
	"testing"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedDriverTemplate(t *testing.T, routeID, ownerID uuid.UUID, driverID *uuid.UUID) *models.RouteTemplate {
	t.Helper()
	template := testutils.NewTemplateFactory().Create(routeID, ownerID)
	template.DefaultDriverID = driverID
	return e.seedTemplate(t, template)
}

func TestDetectConflictsFlagsSharedDriver(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	env.seedDriverTemplate(t, routeA.ID, owner.ID, &driver.ID)
	env.seedDriverTemplate(t, routeB.ID, owner.ID, &driver.ID)

	records, err := env.conflictSvc.DetectConflicts(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, models.ResourceKindDriver, record.ResourceKind)
	assert.Equal(t, driver.ID, record.ResourceID)
	assert.Equal(t, models.ConflictSeverityMedium, record.Severity)
	assert.Equal(t, models.ConflictStatusOpen, record.Status)
	assert.Len(t, record.TemplateIDs, 2)
}

func TestDetectConflictsEscalatesTripleBooking(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	for i := 0; i < 3; i++ {
		route := env.seedRoute(t, testutils.NewRouteFactory().Create())
		env.seedDriverTemplate(t, route.ID, owner.ID, &driver.ID)
	}

	records, err := env.conflictSvc.DetectConflicts(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.ConflictSeverityHigh, records[0].Severity)
	assert.Len(t, records[0].TemplateIDs, 3)
}

func TestDetectConflictsFlagsSharedVehicle(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	vehicle := env.seedVehicle(t, testutils.NewVehicleFactory().Create())

	for _, routeID := range []uuid.UUID{routeA.ID, routeB.ID} {
		template := testutils.NewTemplateFactory().Create(routeID, owner.ID)
		template.DefaultVehicleID = &vehicle.ID
		env.seedTemplate(t, template)
	}

	records, err := env.conflictSvc.DetectConflicts(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.ResourceKindVehicle, records[0].ResourceKind)
	assert.Equal(t, vehicle.ID, records[0].ResourceID)
}

func TestDetectConflictsReplacesPriorRun(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	env.seedDriverTemplate(t, routeA.ID, owner.ID, &driver.ID)
	conflicting := env.seedDriverTemplate(t, routeB.ID, owner.ID, &driver.ID)

	day := date(2026, 1, 6)
	records, err := env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// A second run after no changes still yields exactly one record
	records, err = env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	persisted, err := env.conflictSvc.GetByDate(day)
	require.NoError(t, err)
	assert.Len(t, persisted, 1)

	// Taking the driver off the second template clears the stale flag
	conflicting.DefaultDriverID = nil
	require.NoError(t, env.templates.Update(conflicting))
	env.materializer.Invalidate()

	records, err = env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	assert.Empty(t, records)
	persisted, err = env.conflictSvc.GetByDate(day)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestDetectConflictsAlertsResponsibleUsers(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	planner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	env.seedDriverTemplate(t, routeA.ID, owner.ID, &driver.ID)
	env.seedDriverTemplate(t, routeB.ID, owner.ID, &driver.ID)

	require.NoError(t, env.responsibilities.Create(&models.ResponsibilityAssignment{
		RouteID: routeA.ID,
		UserID:  planner.ID,
		Role:    models.ResponsibilityRolePrimary,
		Active:  true,
	}))

	_, err := env.conflictSvc.DetectConflicts(date(2026, 1, 6))
	require.NoError(t, err)

	alerts, total, err := env.alerts.ListByUser(planner.ID, false, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.AlertTypeConflictDetected, alerts[0].Type)
	assert.Equal(t, models.AlertSeverityWarning, alerts[0].Severity)
	assert.False(t, alerts[0].Read)
}

func TestDetectConflictsEmitsCrossDayAlert(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.DefaultStandbyTime = "23:30"
	template.DefaultDepartureTime = "00:15"
	env.seedTemplate(t, template)

	day := date(2026, 1, 6)
	records, err := env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	// A cross-day run alone is a warning, not a resource conflict
	assert.Empty(t, records)

	alerts, total, err := env.alerts.ListByUser(owner.ID, false, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.AlertTypeTimeCrossDay, alerts[0].Type)
	require.NotNil(t, alerts[0].TemplateID)
	assert.Equal(t, template.ID, *alerts[0].TemplateID)

	// Repeating the pass replaces the alert instead of stacking a duplicate
	_, err = env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	_, total, err = env.alerts.ListByUser(owner.ID, false, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestConflictStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	env.seedDriverTemplate(t, routeA.ID, owner.ID, &driver.ID)
	env.seedDriverTemplate(t, routeB.ID, owner.ID, &driver.ID)

	day := date(2026, 1, 6)
	records, err := env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, env.conflictSvc.Resolve(records[0].ID))
	persisted, err := env.conflictSvc.GetByDate(day)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, models.ConflictStatusResolved, persisted[0].Status)

	err = env.conflictSvc.Ignore(uuid.New())
	assert.Error(t, err)
}

func TestDetectConflictsIgnoresCancelledOccurrences(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	env.seedDriverTemplate(t, routeA.ID, owner.ID, &driver.ID)
	cancelled := env.seedDriverTemplate(t, routeB.ID, owner.ID, &driver.ID)

	day := date(2026, 1, 6)
	status := models.OccurrenceStatusCancelled
	require.NoError(t, env.overrides.Upsert(&models.ScheduleOccurrence{
		TemplateID: cancelled.ID,
		Date:       day,
		Status:     &status,
	}))
	env.materializer.Invalidate()

	records, err := env.conflictSvc.DetectConflicts(day)
	require.NoError(t, err)
	assert.Empty(t, records)
}
