package service

import (
	"testing"
	"time"

	apperrors "fleet-scheduler-backend/internal/errors"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplateRequest(routeID, ownerID uuid.UUID) *CreateTemplateRequest {
	return &CreateTemplateRequest{
		RouteID:              routeID,
		Weekdays:             models.WeekdaySet{time.Monday, time.Wednesday, time.Friday},
		StartDate:            date(2026, 1, 1),
		DefaultStandbyTime:   "06:45",
		DefaultDepartureTime: "07:15",
		OwnerID:              ownerID,
	}
}

func TestCreateTemplate(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template, err := env.templateSvc.Create(validTemplateRequest(route.ID, owner.ID), "tester")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusPending, template.Status)
	assert.Equal(t, date(2026, 1, 1), template.StartDate)

	trail, total, err := env.audit.ListByEntity("route_template", template.ID, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.AuditOperationInsert, trail[0].Operation)
	assert.Equal(t, "tester", trail[0].Actor)
}

func TestCreateTemplateValidation(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	t.Run("empty recurrence", func(t *testing.T) {
		req := validTemplateRequest(route.ID, owner.ID)
		req.Weekdays = models.WeekdaySet{}
		_, err := env.templateSvc.Create(req, "tester")
		assert.Error(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		req := validTemplateRequest(route.ID, owner.ID)
		end := date(2025, 12, 1)
		req.EndDate = &end
		_, err := env.templateSvc.Create(req, "tester")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
	})

	t.Run("malformed clock", func(t *testing.T) {
		req := validTemplateRequest(route.ID, owner.ID)
		req.DefaultDepartureTime = "25:00"
		_, err := env.templateSvc.Create(req, "tester")
		assert.ErrorIs(t, err, apperrors.ErrInvalidTimeOfDay)
	})

	t.Run("unknown route", func(t *testing.T) {
		req := validTemplateRequest(uuid.New(), owner.ID)
		_, err := env.templateSvc.Create(req, "tester")
		assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
	})

	t.Run("unknown owner", func(t *testing.T) {
		req := validTemplateRequest(route.ID, uuid.New())
		_, err := env.templateSvc.Create(req, "tester")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUpdateTemplateStatusCAS(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	fresh, err := env.templateSvc.GetByID(template.ID)
	require.NoError(t, err)

	status := models.TemplateStatusChanged
	stale := fresh.UpdatedAt.Add(-time.Hour)
	_, err = env.templateSvc.Update(template.ID, &UpdateTemplateRequest{
		Status:            &status,
		ExpectedUpdatedAt: &stale,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrStaleUpdate)

	updated, err := env.templateSvc.Update(template.ID, &UpdateTemplateRequest{
		Status:            &status,
		ExpectedUpdatedAt: &fresh.UpdatedAt,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusChanged, updated.Status)
}

func TestUpdateTemplateRejectsCancelled(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.Status = models.TemplateStatusCancelled
	env.seedTemplate(t, template)

	priority := 3
	_, err := env.templateSvc.Update(template.ID, &UpdateTemplateRequest{Priority: &priority}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrTemplateCancelled)
}

func TestCancelTemplateDropsFutureOccurrences(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.StartDate = dateOnly(time.Now().AddDate(0, -1, 0))
	env.seedTemplate(t, template)

	past := dateOnly(time.Now().AddDate(0, 0, -7))
	future := dateOnly(time.Now().AddDate(0, 0, 7))
	for _, day := range []time.Time{past, future} {
		require.NoError(t, env.overrides.Upsert(&models.ScheduleOccurrence{
			TemplateID: template.ID,
			Date:       day,
		}))
	}
	env.materializer.Invalidate()

	cancelled, err := env.templateSvc.Cancel(template.ID, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusCancelled, cancelled.Status)

	futureRow, err := env.overrides.GetByTemplateAndDate(template.ID, future)
	require.NoError(t, err)
	assert.True(t, futureRow.Deleted)

	// History before the cancellation stays untouched
	pastRow, err := env.overrides.GetByTemplateAndDate(template.ID, past)
	require.NoError(t, err)
	assert.False(t, pastRow.Deleted)

	// Cancelling twice is a no-op
	again, err := env.templateSvc.Cancel(template.ID, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateStatusCancelled, again.Status)
}

func TestUpsertOverrideRequiresGuardOnExistingRow(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	driver := env.seedDriver(t, testutils.NewDriverFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	day := date(2026, 1, 6)
	created, err := env.occurrenceSvc.UpsertOverride(template.ID, day, &OverrideRequest{
		DriverID: &driver.ID,
	}, "tester")
	require.NoError(t, err)

	// Updating without the guard is rejected
	_, err = env.occurrenceSvc.UpsertOverride(template.ID, day, &OverrideRequest{}, "tester")
	assert.Error(t, err)

	// A stale guard is a conflict
	stale := created.UpdatedAt.Add(-time.Hour)
	_, err = env.occurrenceSvc.UpsertOverride(template.ID, day, &OverrideRequest{
		ExpectedUpdatedAt: &stale,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrStaleUpdate)

	// The matching guard clears the driver override
	updated, err := env.occurrenceSvc.UpsertOverride(template.ID, day, &OverrideRequest{
		ExpectedUpdatedAt: &created.UpdatedAt,
	}, "tester")
	require.NoError(t, err)
	assert.Nil(t, updated.DriverID)
}

func TestDeleteOccurrenceHidesSingleDay(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))

	day := date(2026, 1, 6)
	require.NoError(t, env.occurrenceSvc.DeleteOccurrence(template.ID, day, "tester"))

	occurrences, err := env.occurrenceSvc.ListOccurrences(day, day, OccurrenceFilter{})
	require.NoError(t, err)
	assert.Empty(t, occurrences)

	// Restoring the day is an upsert that clears the deletion flag
	row, err := env.overrides.GetByTemplateAndDate(template.ID, day)
	require.NoError(t, err)
	_, err = env.occurrenceSvc.UpsertOverride(template.ID, day, &OverrideRequest{
		ExpectedUpdatedAt: &row.UpdatedAt,
	}, "tester")
	require.NoError(t, err)

	occurrences, err = env.occurrenceSvc.ListOccurrences(day, day, OccurrenceFilter{})
	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
}

func TestUpsertOverrideRejectsCancelledTemplate(t *testing.T) {
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	template.Status = models.TemplateStatusCancelled
	env.seedTemplate(t, template)

	_, err := env.occurrenceSvc.UpsertOverride(template.ID, date(2026, 1, 6), &OverrideRequest{}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrTemplateCancelled)
}
