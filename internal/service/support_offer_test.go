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

type offerFixture struct {
	env      *testEnv
	template *models.RouteTemplate
	owner    *models.User
	sender   *models.User
}

func newOfferFixture(t *testing.T) *offerFixture {
	t.Helper()
	env := newTestEnv(t)
	route := env.seedRoute(t, testutils.NewRouteFactory().Create())
	owner := env.seedUser(t, testutils.NewUserFactory().Create())
	sender := env.seedUser(t, testutils.NewUserFactory().Create())
	template := env.seedTemplate(t, testutils.NewTemplateFactory().Create(route.ID, owner.ID))
	return &offerFixture{env: env, template: template, owner: owner, sender: sender}
}

func TestCreateOfferSetsExpiryAndNotifiesRecipient(t *testing.T) {
	f := newOfferFixture(t)

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		ToUserID:   &f.owner.ID,
		Message:    "can you take this run over the holidays?",
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, models.OfferStatusPending, offer.Status)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), offer.ExpiresAt, 5*time.Second)

	alerts, total, err := f.env.alerts.ListByUser(f.owner.ID, false, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, models.AlertTypeSupportOffer, alerts[0].Type)
}

func TestCreateOfferRejectsCancelledTemplate(t *testing.T) {
	f := newOfferFixture(t)
	f.template.Status = models.TemplateStatusCancelled
	require.NoError(t, f.env.templates.Update(f.template))

	_, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrTemplateCancelled)
}

func TestCreateOfferRejectsUnknownParticipants(t *testing.T) {
	f := newOfferFixture(t)

	_, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: uuid.New(),
		FromUserID: f.sender.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)

	_, err = f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: uuid.New(),
		Type:       models.OfferTypeShare,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRespondOnlyAddresseeMayAnswer(t *testing.T) {
	f := newOfferFixture(t)
	stranger := f.env.seedUser(t, testutils.NewUserFactory().Create())

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		ToUserID:   &f.owner.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	_, err = f.env.supportOffers.Respond(offer.ID, &RespondRequest{
		UserID: stranger.ID,
		Accept: true,
	}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotAddressed)
}

func TestRespondOpenOfferFallsToTemplateOwner(t *testing.T) {
	f := newOfferFixture(t)

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	answered, err := f.env.supportOffers.Respond(offer.ID, &RespondRequest{
		UserID: f.owner.ID,
		Accept: false,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusDeclined, answered.Status)
	require.NotNil(t, answered.RespondedAt)

	// The sender hears back about the decision
	alerts, _, err := f.env.alerts.ListByUser(f.sender.ID, false, 1, 20)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	assert.Contains(t, alerts[0].Title, "declined")
}

func TestRespondTwiceFails(t *testing.T) {
	f := newOfferFixture(t)

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		ToUserID:   &f.owner.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	_, err = f.env.supportOffers.Respond(offer.ID, &RespondRequest{UserID: f.owner.ID}, "tester")
	require.NoError(t, err)

	_, err = f.env.supportOffers.Respond(offer.ID, &RespondRequest{UserID: f.owner.ID, Accept: true}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotPending)
}

func TestAcceptedTransferAppliesOverride(t *testing.T) {
	f := newOfferFixture(t)
	driver := f.env.seedDriver(t, testutils.NewDriverFactory().Create())
	day := date(2026, 1, 6)

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID:       f.template.ID,
		FromUserID:       f.sender.ID,
		ToUserID:         &f.owner.ID,
		ProposedDriverID: &driver.ID,
		Date:             &day,
		Type:             models.OfferTypeTransfer,
	}, "tester")
	require.NoError(t, err)

	answered, err := f.env.supportOffers.Respond(offer.ID, &RespondRequest{
		UserID: f.owner.ID,
		Accept: true,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, answered.Status)

	override, err := f.env.overrides.GetByTemplateAndDate(f.template.ID, day)
	require.NoError(t, err)
	require.NotNil(t, override.DriverID)
	assert.Equal(t, driver.ID, *override.DriverID)

	occurrences, err := f.env.materializer.ForDate(day)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	require.NotNil(t, occurrences[0].DriverID)
	assert.Equal(t, driver.ID, *occurrences[0].DriverID)
}

func TestExpireStaleIsExactlyOnce(t *testing.T) {
	f := newOfferFixture(t)

	offer, err := f.env.supportOffers.Create(&CreateOfferRequest{
		TemplateID: f.template.ID,
		FromUserID: f.sender.ID,
		ToUserID:   &f.owner.ID,
		Type:       models.OfferTypeShare,
	}, "tester")
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, f.env.db.Model(&models.SupportOffer{}).
		Where("id = ?", offer.ID).
		Update("expires_at", past).Error)

	n, err := f.env.supportOffers.ExpireStale(time.Now().UTC())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	expired, err := f.env.supportOffers.GetByID(offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusExpired, expired.Status)

	// The second sweep finds nothing pending
	n, err = f.env.supportOffers.ExpireStale(time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, n)

	// An expired offer can no longer be answered
	_, err = f.env.supportOffers.Respond(offer.ID, &RespondRequest{UserID: f.owner.ID}, "tester")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotPending)
}
