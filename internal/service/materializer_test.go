package service

import (
	"testing"
	"time"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMaterializerExpandsRecurringDays(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	// 2026-01-05 is a Monday; the template recurs every day of the week
	occurrences, err := env.materializer.ListWindow(date(2026, 1, 5), date(2026, 1, 11))
	require.NoError(t, err)
	require.Len(t, occurrences, 7)

	first := occurrences[0]
	assert.Equal(t, template.ID, first.TemplateID)
	assert.Equal(t, route.ID, first.RouteID)
	assert.Equal(t, route.Code, first.RouteCode)
	assert.Equal(t, date(2026, 1, 5), first.Date)
	assert.Equal(t, time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC), first.StandbyAt)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), first.DepartureAt)
	assert.Equal(t, models.OccurrenceStatusScheduled, first.Status)
	assert.False(t, first.Overridden)
	assert.Equal(t, owner.ID, first.OwnerID)
}

func TestMaterializerFiltersWeekdays(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	env.seedTemplate(t, testutils.NewTemplateFactory().
		WithWeekdays(route.ID, owner.ID, time.Monday, time.Wednesday))

	occurrences, err := env.materializer.ListWindow(date(2026, 1, 5), date(2026, 1, 11))
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, date(2026, 1, 5), occurrences[0].Date)
	assert.Equal(t, date(2026, 1, 7), occurrences[1].Date)
}

func TestMaterializerClampsToTemplateBounds(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.StartDate = date(2026, 3, 10)
	end := date(2026, 3, 12)
	template.EndDate = &end
	env.seedTemplate(t, template)

	// Window fully before the template produces nothing
	occurrences, err := env.materializer.ListWindow(date(2026, 3, 1), date(2026, 3, 9))
	require.NoError(t, err)
	assert.Empty(t, occurrences)

	// A wide window is clamped to [start, end]
	occurrences, err = env.materializer.ListWindow(date(2026, 3, 1), date(2026, 3, 31))
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, date(2026, 3, 10), occurrences[0].Date)
	assert.Equal(t, date(2026, 3, 12), occurrences[2].Date)
}

func TestMaterializerRejectsInvertedWindow(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.materializer.ListWindow(date(2026, 1, 10), date(2026, 1, 5))
	assert.Error(t, err)
}

func TestMaterializerMergesOverrideFieldWise(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	day := date(2026, 1, 6)
	override := &models.ScheduleOccurrence{
		TemplateID: template.ID,
		Date:       day,
		DriverID:   &driver.ID,
	}
	require.NoError(t, env.overrides.Upsert(override))
	env.materializer.Invalidate()

	occurrences, err := env.materializer.ForDate(day)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)

	o := occurrences[0]
	assert.True(t, o.Overridden)
	require.NotNil(t, o.DriverID)
	assert.Equal(t, driver.ID, *o.DriverID)
	// Fields the override leaves nil keep the template defaults
	assert.Equal(t, time.Date(2026, 1, 6, 7, 30, 0, 0, time.UTC), o.StandbyAt)
	assert.Equal(t, time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC), o.DepartureAt)
	assert.Equal(t, models.OccurrenceStatusScheduled, o.Status)
}

func TestMaterializerSkipsDeletedOverrides(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	day := date(2026, 1, 6)
	require.NoError(t, env.overrides.Upsert(&models.ScheduleOccurrence{
		TemplateID: template.ID,
		Date:       day,
		Deleted:    true,
	}))
	env.materializer.Invalidate()

	occurrences, err := env.materializer.ForDate(day)
	require.NoError(t, err)
	assert.Empty(t, occurrences)

	// The neighboring day is unaffected
	occurrences, err = env.materializer.ForDate(date(2026, 1, 7))
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
}

func TestMaterializerRollsDepartureAcrossMidnight(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.DefaultStandbyTime = "23:30"
	template.DefaultDepartureTime = "00:15"
	env.seedTemplate(t, template)

	day := date(2026, 1, 6)
	occurrences, err := env.materializer.ForDate(day)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)

	o := occurrences[0]
	assert.Equal(t, time.Date(2026, 1, 6, 23, 30, 0, 0, time.UTC), o.StandbyAt)
	assert.Equal(t, time.Date(2026, 1, 7, 0, 15, 0, 0, time.UTC), o.DepartureAt)
	assert.True(t, o.CrossesMidnight())
	assert.Equal(t, day, o.Date)
}

func TestMaterializerAppliesTrafficFactorToArrival(t *testing.T) {
	env := newTestEnv(t)
	tuning := testTuning()
	tuning.TrafficFactor = 1.2
	require.NoError(t, env.tuning.Set(tuning))

	route := env.seedRoute(t, testutils.NewRouteFactory().WithDuration(60))
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	occurrences, err := env.materializer.ForDate(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, occurrences, 1)

	// 60 minutes at factor 1.2 is 72 minutes of travel after departure
	o := occurrences[0]
	assert.Equal(t, o.DepartureAt.Add(72*time.Minute), o.EstimatedArrival)
}

func TestMaterializerExcludesInactiveTemplates(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.Status = models.TemplateStatusCancelled
	env.seedTemplate(t, template)

	occurrences, err := env.materializer.ForDate(date(2026, 1, 6))
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestMaterializerMemoizesUntilInvalidated(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	occurrences, err := env.materializer.ForDate(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, occurrences, 1)

	// A second template lands in the database but the window is memoized
	second := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	require.NoError(t, env.templates.Create(second))

	occurrences, err = env.materializer.ForDate(date(2026, 1, 6))
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)

	env.materializer.Invalidate()
	occurrences, err = env.materializer.ForDate(date(2026, 1, 6))
	require.NoError(t, err)
	assert.Len(t, occurrences, 2)
}

func TestMaterializerListAppliesFilters(t *testing.T) {
	env := newTestEnv(t)
	routeA := env.seedRoute(t, testutils.NewRouteFactory().Create())
	routeB := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())

	templateA := testutils.NewTemplateFactory().Create(routeA.ID, owner.ID)
	templateA.DefaultDriverID = &driver.ID
	env.seedTemplate(t, templateA)
	env.seedTemplate(t, testutils.NewTemplateFactory().Create(routeB.ID, owner.ID))

	day := date(2026, 1, 6)

	byRoute, err := env.materializer.List(day, day, OccurrenceFilter{RouteID: &routeB.ID})
	require.NoError(t, err)
	require.Len(t, byRoute, 1)
	assert.Equal(t, routeB.ID, byRoute[0].RouteID)

	byDriver, err := env.materializer.List(day, day, OccurrenceFilter{DriverID: &driver.ID})
	require.NoError(t, err)
	require.Len(t, byDriver, 1)
	assert.Equal(t, templateA.ID, byDriver[0].TemplateID)
}
