package service

import (
	"testing"

	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/distance"
	"fleet-scheduler-backend/internal/repository"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full service graph over an isolated in-memory database
type testEnv struct {
	db *gorm.DB

	routes           *repository.RouteRepository
	routeDistances   *repository.RouteDistanceRepository
	drivers          *repository.DriverRepository
	vehicles         *repository.VehicleRepository
	users            *repository.UserRepository
	templates        *repository.RouteTemplateRepository
	overrides        *repository.ScheduleOccurrenceRepository
	conflicts        *repository.ConflictRepository
	suggestions      *repository.SuggestionRepository
	alertRepo        *repository.AlertRepository
	responsibilities *repository.ResponsibilityRepository
	offers           *repository.SupportOfferRepository
	auditRepo        *repository.AuditRepository

	tuning       *config.TuningStore
	materializer *Materializer

	audit          *AuditService
	alerts         *AlertService
	templateSvc    *TemplateService
	occurrenceSvc  *OccurrenceService
	conflictSvc    *ConflictService
	supportOffers  *SupportOfferService
	responsibility *ResponsibilityService
}

// testTuning keeps the scoring arithmetic in tests easy to follow
func testTuning() config.SuggestionTuning {
	return config.SuggestionTuning{
		MinGapMinutes:          30,
		MaxGapMinutes:          240,
		MaxDistanceKm:          50,
		DistanceWeight:         0.4,
		TimeWeight:             0.6,
		TrafficFactor:          1.0,
		EfficiencyThreshold:    0.7,
		MaxSuggestionsPerRoute: 5,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutils.SetupTestDB(t)
	v := validator.New()

	env := &testEnv{
		db:               db,
		routes:           repository.NewRouteRepository(db),
		routeDistances:   repository.NewRouteDistanceRepository(db),
		drivers:          repository.NewDriverRepository(db),
		vehicles:         repository.NewVehicleRepository(db),
		users:            repository.NewUserRepository(db),
		templates:        repository.NewRouteTemplateRepository(db),
		overrides:        repository.NewScheduleOccurrenceRepository(db),
		conflicts:        repository.NewConflictRepository(db),
		suggestions:      repository.NewSuggestionRepository(db),
		alertRepo:        repository.NewAlertRepository(db),
		responsibilities: repository.NewResponsibilityRepository(db),
		offers:           repository.NewSupportOfferRepository(db),
		auditRepo:        repository.NewAuditRepository(db),
		tuning:           config.NewTuningStore(testTuning()),
	}

	env.materializer = NewMaterializer(env.templates, env.overrides, env.tuning)
	env.audit = NewAuditService(env.auditRepo)
	env.alerts = NewAlertService(env.alertRepo, env.responsibilities)
	env.templateSvc = NewTemplateService(
		env.templates, env.overrides, env.routes, env.drivers,
		env.vehicles, env.users, env.materializer, env.audit, v,
	)
	env.occurrenceSvc = NewOccurrenceService(
		env.overrides, env.templates, env.drivers, env.vehicles,
		env.materializer, env.audit, v,
	)
	env.conflictSvc = NewConflictService(db, env.conflicts, env.alertRepo, env.materializer, env.alerts)
	env.supportOffers = NewSupportOfferService(
		env.offers, env.templates, env.users, env.occurrenceSvc,
		env.alerts, env.audit, v,
	)
	env.responsibility = NewResponsibilityService(env.responsibilities, env.routes, env.users, env.audit, v)

	return env
}

// suggestionService builds a suggestion engine over the given distance source
func (e *testEnv) suggestionService(distances distance.Provider) *SuggestionService {
	return NewSuggestionService(
		e.db, e.suggestions, e.alertRepo, e.materializer,
		e.alerts, distances, e.tuning,
	)
}

func (e *testEnv) seedRoute(t *testing.T, route *models.Route) *models.Route {
	t.Helper()
	require.NoError(t, e.routes.Create(route))
	return route
}

func (e *testEnv) seedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) seedDriver(t *testing.T, driver *models.Driver) *models.Driver {
	t.Helper()
	require.NoError(t, e.drivers.Create(driver))
	return driver
}

func (e *testEnv) seedVehicle(t *testing.T, vehicle *models.Vehicle) *models.Vehicle {
	t.Helper()
	require.NoError(t, e.vehicles.Create(vehicle))
	return vehicle
}

func (e *testEnv) seedTemplate(t *testing.T, template *models.RouteTemplate) *models.RouteTemplate {
	t.Helper()
	require.NoError(t, e.templates.Create(template))
	e.materializer.Invalidate()
	return template
}
