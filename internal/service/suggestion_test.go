package service

import (
	"testing"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/distance"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consolidationPair seeds two routes whose occurrences chain back to back:
// the first arrives at 09:00 and the second departs at 09:45, 10 km away.
func consolidationPair(t *testing.T, env *testEnv) (from, to *models.Route) {
	t.Helper()

	from = env.seedRoute(t, testutils.NewRouteFactory().WithDuration(60))
	to = env.seedRoute(t, testutils.NewRouteFactory().WithDuration(60))
	owner := env.seedUser(t, testutils.NewUserFactory().Create())

	first := testutils.NewTemplateFactory().Create(from.ID, owner.ID)
	first.DefaultStandbyTime = "07:30"
	first.DefaultDepartureTime = "08:00"
	env.seedTemplate(t, first)

	second := testutils.NewTemplateFactory().Create(to.ID, owner.ID)
	second.DefaultStandbyTime = "09:15"
	second.DefaultDepartureTime = "09:45"
	env.seedTemplate(t, second)

	return from, to
}

func TestSuggestConsolidationsScoresBackToBackPair(t *testing.T) {
	env := newTestEnv(t)
	from, to := consolidationPair(t, env)
	svc := env.suggestionService(distance.NewStaticProvider([]distance.StaticPair{
		{From: from.ID, To: to.ID, Km: 10},
	}))

	records, err := svc.SuggestConsolidations(date(2026, 1, 6))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, from.ID, record.FromRouteID)
	assert.Equal(t, to.ID, record.ToRouteID)
	// First run arrives 09:00, second departs 09:45
	assert.Equal(t, 45, record.GapMinutes)
	assert.Equal(t, 10.0, record.DistanceKm)
	// 0.4*(1-10/50) + 0.6*(1-45/240)
	assert.InDelta(t, 0.8075, record.Efficiency, 1e-9)
	assert.Equal(t, models.SuggestionStatusPending, record.Status)
}

func TestSuggestConsolidationsRejectsOutOfBandPairs(t *testing.T) {
	cases := []struct {
		name string
		km   float64
		gap  string // departure clock of the second route
	}{
		{name: "distance beyond ceiling", km: 60, gap: "09:45"},
		{name: "gap too short", gap: "09:10", km: 10},
		{name: "gap too long", gap: "13:30", km: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			from := env.seedRoute(t, testutils.NewRouteFactory().WithDuration(60))
			to := env.seedRoute(t, testutils.NewRouteFactory().WithDuration(60))
			owner := env.seedUser(t, testutils.NewUserFactory().Create())

			first := testutils.NewTemplateFactory().Create(from.ID, owner.ID)
			first.DefaultDepartureTime = "08:00"
			env.seedTemplate(t, first)

			second := testutils.NewTemplateFactory().Create(to.ID, owner.ID)
			second.DefaultStandbyTime = "07:00"
			second.DefaultDepartureTime = tc.gap
			env.seedTemplate(t, second)

			svc := env.suggestionService(distance.NewStaticProvider([]distance.StaticPair{
				{From: from.ID, To: to.ID, Km: tc.km},
			}))

			records, err := svc.SuggestConsolidations(date(2026, 1, 6))
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestSuggestConsolidationsHonorsThreshold(t *testing.T) {
	env := newTestEnv(t)
	tuning := testTuning()
	tuning.EfficiencyThreshold = 0.9
	require.NoError(t, env.tuning.Set(tuning))

	from, to := consolidationPair(t, env)
	svc := env.suggestionService(distance.NewStaticProvider([]distance.StaticPair{
		{From: from.ID, To: to.ID, Km: 10},
	}))

	records, err := svc.SuggestConsolidations(date(2026, 1, 6))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSuggestConsolidationsSkipsUnknownPairs(t *testing.T) {
	env := newTestEnv(t)
	consolidationPair(t, env)
	svc := env.suggestionService(distance.NewStaticProvider(nil))

	records, err := svc.SuggestConsolidations(date(2026, 1, 6))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSuggestConsolidationsPreservesDecisionOnRerun(t *testing.T) {
	env := newTestEnv(t)
	from, to := consolidationPair(t, env)
	svc := env.suggestionService(distance.NewStaticProvider([]distance.StaticPair{
		{From: from.ID, To: to.ID, Km: 10},
	}))

	day := date(2026, 1, 6)
	records, err := svc.SuggestConsolidations(day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NoError(t, svc.Accept(records[0].ID))

	_, err = svc.SuggestConsolidations(day)
	require.NoError(t, err)

	persisted, err := svc.GetByDate(day)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, models.SuggestionStatusAccepted, persisted[0].Status)
}

func TestSuggestConsolidationsAlertsResponsibleUsers(t *testing.T) {
	env := newTestEnv(t)
	from, to := consolidationPair(t, env)
	planner := env.seedUser(t, testutils.NewUserFactory().Create())
	require.NoError(t, env.responsibilities.Create(&models.ResponsibilityAssignment{
		RouteID: from.ID,
		UserID:  planner.ID,
		Role:    models.ResponsibilityRoleBackup,
		Active:  true,
	}))

	svc := env.suggestionService(distance.NewStaticProvider([]distance.StaticPair{
		{From: from.ID, To: to.ID, Km: 10},
	}))

	day := date(2026, 1, 6)
	_, err := svc.SuggestConsolidations(day)
	require.NoError(t, err)

	alerts, total, err := env.alerts.ListByUser(planner.ID, true, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.AlertTypeConsolidationSuggested, alerts[0].Type)
	assert.Equal(t, models.AlertSeverityInfo, alerts[0].Severity)

	// Re-running replaces the alert instead of stacking duplicates
	_, err = svc.SuggestConsolidations(day)
	require.NoError(t, err)
	_, total, err = env.alerts.ListByUser(planner.ID, false, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCapPerRouteOrdersAndTruncates(t *testing.T) {
	fromID := uuid.New()
	build := func(eff float64, gap int, code string) candidate {
		return candidate{
			record: models.SuggestionRecord{
				FromRouteID: fromID,
				ToRouteID:   uuid.New(),
				Efficiency:  eff,
				GapMinutes:  gap,
			},
			toRouteCode: code,
		}
	}

	candidates := []candidate{
		build(0.75, 40, "RT-C"),
		build(0.90, 60, "RT-A"),
		build(0.75, 40, "RT-B"),
		build(0.75, 30, "RT-D"),
	}

	kept := capPerRoute(candidates, 3)
	require.Len(t, kept, 3)
	// Highest efficiency first, then lower gap, then destination code
	assert.InDelta(t, 0.90, kept[0].Efficiency, 1e-9)
	assert.Equal(t, 30, kept[1].GapMinutes)
	assert.Equal(t, 40, kept[2].GapMinutes)
}

func TestSuggestionStatusTransitionOnMissingRecord(t *testing.T) {
	env := newTestEnv(t)
	svc := env.suggestionService(distance.NewStaticProvider(nil))
	assert.Error(t, svc.Reject(uuid.New()))
}

func TestStaticProviderFallsBackToReversePair(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	provider := distance.NewStaticProvider([]distance.StaticPair{{From: a, To: b, Km: 12.5}})

	km, err := provider.BetweenKm(b, a)
	require.NoError(t, err)
	assert.Equal(t, 12.5, km)

	_, err = provider.BetweenKm(a, uuid.New())
	assert.ErrorIs(t, err, distance.ErrUnknownPair)
}
