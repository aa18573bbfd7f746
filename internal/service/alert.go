package service

import (
	"errors"
	"fmt"

	"fleet-scheduler-backend/internal/database/models"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertService handles durable per-user notifications and the fan-out from
// route events to the users responsible for the route
type AlertService struct {
	repo     *repository.AlertRepository
	respRepo *repository.ResponsibilityRepository
}

// NewAlertService creates a new alert service
func NewAlertService(repo *repository.AlertRepository, respRepo *repository.ResponsibilityRepository) *AlertService {
	return &AlertService{
		repo:     repo,
		respRepo: respRepo,
	}
}

// RecipientsForRoutes resolves the distinct users holding an active
// responsibility on any of the given routes
func (s *AlertService) RecipientsForRoutes(routeIDs []uuid.UUID) ([]uuid.UUID, error) {
	assignments, err := s.respRepo.GetActiveByRouteIDs(routeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load responsibility assignments: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(assignments))
	out := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.UserID]; ok {
			continue
		}
		seen[a.UserID] = struct{}{}
		out = append(out, a.UserID)
	}
	return out, nil
}

// Notify creates a single alert outside any detection pass, e.g. for
// support offer events
func (s *AlertService) Notify(alert *models.AlertRecord) error {
	if !alert.Type.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	if err := s.repo.Create(alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListByUser retrieves alerts addressed to a user
func (s *AlertService) ListByUser(userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]models.AlertRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	alerts, total, err := s.repo.GetByUser(userID, unreadOnly, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, total, nil
}

// MarkRead flags an alert as read
func (s *AlertService) MarkRead(id uuid.UUID) error {
	if err := s.repo.MarkRead(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAlertNotFound
		}
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return nil
}
