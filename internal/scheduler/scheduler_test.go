package scheduler

import (
	"testing"
	"time"

	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/distance"
	"fleet-scheduler-backend/internal/repository"
	"fleet-scheduler-backend/internal/service"
	"fleet-scheduler-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sweepEnv struct {
	db        *gorm.DB
	offers    *service.SupportOfferService
	offerRepo *repository.SupportOfferRepository
	scheduler *Scheduler
}

func newSweepEnv(t *testing.T) *sweepEnv {
	t.Helper()

	db := testutils.SetupTestDB(t)
	v := validator.New()
	tuning := config.NewTuningStore(config.SuggestionTuning{
		MinGapMinutes:          30,
		MaxGapMinutes:          240,
		MaxDistanceKm:          50,
		DistanceWeight:         0.4,
		TimeWeight:             0.6,
		TrafficFactor:          1.2,
		EfficiencyThreshold:    0.7,
		MaxSuggestionsPerRoute: 5,
	})

	templateRepo := repository.NewRouteTemplateRepository(db)
	overrideRepo := repository.NewScheduleOccurrenceRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	respRepo := repository.NewResponsibilityRepository(db)
	offerRepo := repository.NewSupportOfferRepository(db)

	materializer := service.NewMaterializer(templateRepo, overrideRepo, tuning)
	audit := service.NewAuditService(repository.NewAuditRepository(db))
	alerts := service.NewAlertService(alertRepo, respRepo)
	occurrences := service.NewOccurrenceService(
		overrideRepo, templateRepo,
		repository.NewDriverRepository(db), repository.NewVehicleRepository(db),
		materializer, audit, v,
	)
	offers := service.NewSupportOfferService(
		offerRepo, templateRepo, repository.NewUserRepository(db),
		occurrences, alerts, audit, v,
	)
	conflicts := service.NewConflictService(db, repository.NewConflictRepository(db), alertRepo, materializer, alerts)
	suggestions := service.NewSuggestionService(
		db, repository.NewSuggestionRepository(db), alertRepo,
		materializer, alerts, distance.NewStaticProvider(nil), tuning,
	)

	return &sweepEnv{
		db:        db,
		offers:    offers,
		offerRepo: offerRepo,
		scheduler: New(offers, conflicts, suggestions, 10*time.Millisecond),
	}
}

func TestRunNowExpiresStaleOffers(t *testing.T) {
	env := newSweepEnv(t)

	route := testutils.NewRouteFactory().Create()
	owner := testutils.NewUserFactory().Create()
	sender := testutils.NewUserFactory().Create()
	require.NoError(t, repository.NewRouteRepository(env.db).Create(route))
	users := repository.NewUserRepository(env.db)
	require.NoError(t, users.Create(owner))
	require.NoError(t, users.Create(sender))
	template := testutils.NewTemplateFactory().Create(route.ID, owner.ID)
	require.NoError(t, repository.NewRouteTemplateRepository(env.db).Create(template))

	offer, err := env.offers.Create(&service.CreateOfferRequest{
		TemplateID: template.ID,
		FromUserID: sender.ID,
		ToUserID:   &owner.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.SupportOffer{}).
		Where("id = ?", offer.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	env.scheduler.RunNow()

	expired, err := env.offers.GetByID(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusExpired, expired.Status)
}

func TestStartStopTerminatesCleanly(t *testing.T) {
	env := newSweepEnv(t)

	env.scheduler.Start()
	time.Sleep(35 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		env.scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
