package service

import (
	"errors"
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/database/models"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/logger"
	"fleet-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// offerTTL is how long an unanswered offer stays open before the
// background sweep expires it.
const offerTTL = 24 * time.Hour

// SupportOfferService handles business logic for support offers between
// route owners
type SupportOfferService struct {
	repo         *repository.SupportOfferRepository
	templateRepo *repository.RouteTemplateRepository
	userRepo     *repository.UserRepository
	occurrences  *OccurrenceService
	alerts       *AlertService
	audit        *AuditService
	validator    *validator.Validate
	log          *logger.Logger
}

// NewSupportOfferService creates a new support offer service
func NewSupportOfferService(
	repo *repository.SupportOfferRepository,
	templateRepo *repository.RouteTemplateRepository,
	userRepo *repository.UserRepository,
	occurrences *OccurrenceService,
	alerts *AlertService,
	audit *AuditService,
	validator *validator.Validate,
) *SupportOfferService {
	return &SupportOfferService{
		repo:         repo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
		occurrences:  occurrences,
		alerts:       alerts,
		audit:        audit,
		validator:    validator,
		log:          logger.New(),
	}
}

// CreateOfferRequest represents the request to open a support offer
type CreateOfferRequest struct {
	TemplateID        uuid.UUID        `json:"template_id" validate:"required"`
	FromUserID        uuid.UUID        `json:"from_user_id" validate:"required"`
	ToUserID          *uuid.UUID       `json:"to_user_id,omitempty"`
	ProposedDriverID  *uuid.UUID       `json:"proposed_driver_id,omitempty"`
	ProposedVehicleID *uuid.UUID       `json:"proposed_vehicle_id,omitempty"`
	Date              *time.Time       `json:"date,omitempty"`
	Message           string           `json:"message,omitempty"`
	Type              models.OfferType `json:"type" validate:"required"`
}

// Create opens a support offer. The offer stays pending until the addressee
// responds or it expires 24 hours after creation.
func (s *SupportOfferService) Create(req *CreateOfferRequest, actor string) (*models.SupportOffer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Type.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	template, err := s.templateRepo.GetByID(req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to verify template: %w", err)
	}
	if template.Status == models.TemplateStatusCancelled {
		return nil, apperrors.ErrTemplateCancelled
	}
	if _, err := s.userRepo.GetByID(req.FromUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify sender: %w", err)
	}
	if req.ToUserID != nil {
		if _, err := s.userRepo.GetByID(*req.ToUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to verify recipient: %w", err)
		}
	}

	now := time.Now().UTC()
	offer := &models.SupportOffer{
		TemplateID:        req.TemplateID,
		FromUserID:        req.FromUserID,
		ToUserID:          req.ToUserID,
		ProposedDriverID:  req.ProposedDriverID,
		ProposedVehicleID: req.ProposedVehicleID,
		Message:           req.Message,
		Type:              req.Type,
		Status:            models.OfferStatusPending,
		ExpiresAt:         now.Add(offerTTL),
	}
	if req.Date != nil {
		d := dateOnly(*req.Date)
		offer.Date = &d
	}

	if err := s.repo.Create(offer); err != nil {
		return nil, fmt.Errorf("failed to create support offer: %w", err)
	}

	s.audit.Record("support_offer", offer.ID, models.AuditOperationInsert, nil, offer, actor)
	s.notifyRecipient(offer, template)
	return offer, nil
}

// notifyRecipient alerts the addressee, or the template owner when the
// offer is open-ended
func (s *SupportOfferService) notifyRecipient(offer *models.SupportOffer, template *models.RouteTemplate) {
	recipient := template.OwnerID
	if offer.ToUserID != nil {
		recipient = *offer.ToUserID
	}
	if recipient == offer.FromUserID {
		return
	}

	alert := &models.AlertRecord{
		UserID:     recipient,
		Type:       models.AlertTypeSupportOffer,
		Severity:   models.AlertSeverityInfo,
		Title:      fmt.Sprintf("New %s offer", offer.Type),
		Message:    offer.Message,
		Date:       offer.Date,
		TemplateID: &offer.TemplateID,
	}
	if err := s.alerts.Notify(alert); err != nil {
		s.log.WithError(err).WithField("offer_id", offer.ID).Warn("Failed to notify offer recipient")
	}
}

// GetByID retrieves a support offer by ID
func (s *SupportOfferService) GetByID(id uuid.UUID) (*models.SupportOffer, error) {
	offer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupportOfferNotFound
		}
		return nil, fmt.Errorf("failed to get support offer: %w", err)
	}
	return offer, nil
}

// ListByUser returns offers sent by or addressed to a user, newest first
func (s *SupportOfferService) ListByUser(userID uuid.UUID, page, pageSize int) ([]models.SupportOffer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offers, total, err := s.repo.GetByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list support offers: %w", err)
	}
	return offers, total, nil
}

// RespondRequest represents an accept or decline of a pending offer
type RespondRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Accept bool      `json:"accept"`
}

// Respond records the recipient's decision. Accepting a transfer offer
// with a date applies the proposed driver and vehicle as an override for
// that day. Only pending offers can be answered, and only by the addressee
// or the template owner for open offers.
func (s *SupportOfferService) Respond(id uuid.UUID, req *RespondRequest, actor string) (*models.SupportOffer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	offer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSupportOfferNotFound
		}
		return nil, fmt.Errorf("failed to get support offer: %w", err)
	}
	if offer.Status != models.OfferStatusPending {
		return nil, apperrors.ErrOfferNotPending
	}

	template, err := s.templateRepo.GetByID(offer.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if offer.ToUserID != nil {
		if *offer.ToUserID != req.UserID {
			return nil, apperrors.ErrOfferNotAddressed
		}
	} else if template.OwnerID != req.UserID {
		return nil, apperrors.ErrOfferNotAddressed
	}

	before := *offer
	now := time.Now().UTC()
	offer.RespondedAt = &now
	if req.Accept {
		offer.Status = models.OfferStatusAccepted
	} else {
		offer.Status = models.OfferStatusDeclined
	}

	if err := s.repo.Update(offer); err != nil {
		return nil, fmt.Errorf("failed to update support offer: %w", err)
	}

	if req.Accept && offer.Type == models.OfferTypeTransfer && offer.Date != nil {
		if err := s.applyTransfer(offer, actor); err != nil {
			s.log.WithError(err).WithField("offer_id", offer.ID).Warn("Failed to apply transfer override")
		}
	}

	s.audit.Record("support_offer", offer.ID, models.AuditOperationUpdate, &before, offer, actor)
	s.notifySender(offer)
	return offer, nil
}

// applyTransfer puts the proposed resources on the day the offer covers
func (s *SupportOfferService) applyTransfer(offer *models.SupportOffer, actor string) error {
	override := &OverrideRequest{
		DriverID:  offer.ProposedDriverID,
		VehicleID: offer.ProposedVehicleID,
	}
	existing, err := s.occurrences.repo.GetByTemplateAndDate(offer.TemplateID, dateOnly(*offer.Date))
	if err == nil {
		override.ExpectedUpdatedAt = &existing.UpdatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	_, err = s.occurrences.UpsertOverride(offer.TemplateID, *offer.Date, override, actor)
	return err
}

func (s *SupportOfferService) notifySender(offer *models.SupportOffer) {
	verb := "declined"
	if offer.Status == models.OfferStatusAccepted {
		verb = "accepted"
	}
	alert := &models.AlertRecord{
		UserID:     offer.FromUserID,
		Type:       models.AlertTypeSupportOffer,
		Severity:   models.AlertSeverityInfo,
		Title:      fmt.Sprintf("Your %s offer was %s", offer.Type, verb),
		Date:       offer.Date,
		TemplateID: &offer.TemplateID,
	}
	if err := s.alerts.Notify(alert); err != nil {
		s.log.WithError(err).WithField("offer_id", offer.ID).Warn("Failed to notify offer sender")
	}
}

// ExpireStale marks every pending offer past its deadline as expired.
// Called by the background sweep; safe to run repeatedly.
func (s *SupportOfferService) ExpireStale(now time.Time) (int64, error) {
	n, err := s.repo.ExpirePending(now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire support offers: %w", err)
	}
	if n > 0 {
		s.log.WithField("count", n).Info("Expired stale support offers")
	}
	return n, nil
}
