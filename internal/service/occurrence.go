package service

import (
	"errors"
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/database/models"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OccurrenceService exposes the materialized calendar and manages per-day
// override rows
type OccurrenceService struct {
	repo         *repository.ScheduleOccurrenceRepository
	templateRepo *repository.RouteTemplateRepository
	driverRepo   *repository.DriverRepository
	vehicleRepo  *repository.VehicleRepository
	materializer *Materializer
	audit        *AuditService
	validator    *validator.Validate
}

// NewOccurrenceService creates a new occurrence service
func NewOccurrenceService(
	repo *repository.ScheduleOccurrenceRepository,
	templateRepo *repository.RouteTemplateRepository,
	driverRepo *repository.DriverRepository,
	vehicleRepo *repository.VehicleRepository,
	materializer *Materializer,
	audit *AuditService,
	validator *validator.Validate,
) *OccurrenceService {
	return &OccurrenceService{
		repo:         repo,
		templateRepo: templateRepo,
		driverRepo:   driverRepo,
		vehicleRepo:  vehicleRepo,
		materializer: materializer,
		audit:        audit,
		validator:    validator,
	}
}

// ListOccurrences materializes occurrences for a date range with optional
// filters. This is the read path behind the calendar view.
func (s *OccurrenceService) ListOccurrences(from, to time.Time, filter OccurrenceFilter) ([]Occurrence, error) {
	return s.materializer.List(from, to, filter)
}

// OverrideRequest describes a per-day deviation from the template defaults
type OverrideRequest struct {
	DriverID    *uuid.UUID               `json:"driver_id,omitempty"`
	VehicleID   *uuid.UUID               `json:"vehicle_id,omitempty"`
	StandbyAt   *time.Time               `json:"standby_at,omitempty"`
	DepartureAt *time.Time               `json:"departure_at,omitempty"`
	Status      *models.OccurrenceStatus `json:"status,omitempty"`
	// ExpectedUpdatedAt guards against two planners editing the same day;
	// required when an override row already exists
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// UpsertOverride creates or updates the override row for (template, date)
func (s *OccurrenceService) UpsertOverride(templateID uuid.UUID, date time.Time, req *OverrideRequest, actor string) (*models.ScheduleOccurrence, error) {
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if template.Status == models.TemplateStatusCancelled {
		return nil, apperrors.ErrTemplateCancelled
	}

	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if req.DriverID != nil {
		if _, err := s.driverRepo.GetByID(*req.DriverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDriverNotFound
			}
			return nil, fmt.Errorf("failed to verify driver: %w", err)
		}
	}
	if req.VehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(*req.VehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrVehicleNotFound
			}
			return nil, fmt.Errorf("failed to verify vehicle: %w", err)
		}
	}

	date = dateOnly(date)

	existing, err := s.repo.GetByTemplateAndDate(templateID, date)
	switch {
	case err == nil:
		before := *existing
		existing.DriverID = req.DriverID
		existing.VehicleID = req.VehicleID
		existing.StandbyAt = req.StandbyAt
		existing.DepartureAt = req.DepartureAt
		existing.Status = req.Status
		existing.Deleted = false

		if req.ExpectedUpdatedAt == nil {
			return nil, apperrors.NewValidationError("expected_updated_at", "required when updating an existing override")
		}
		if err := s.repo.UpdateCAS(existing, *req.ExpectedUpdatedAt); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrStaleUpdate
			}
			return nil, fmt.Errorf("failed to update override: %w", err)
		}

		s.materializer.Invalidate()
		s.audit.Record("schedule_occurrence", existing.ID, models.AuditOperationUpdate, &before, existing, actor)
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		occurrence := &models.ScheduleOccurrence{
			TemplateID:  templateID,
			Date:        date,
			DriverID:    req.DriverID,
			VehicleID:   req.VehicleID,
			StandbyAt:   req.StandbyAt,
			DepartureAt: req.DepartureAt,
			Status:      req.Status,
		}
		if err := s.repo.Upsert(occurrence); err != nil {
			return nil, fmt.Errorf("failed to create override: %w", err)
		}

		s.materializer.Invalidate()
		s.audit.Record("schedule_occurrence", occurrence.ID, models.AuditOperationInsert, nil, occurrence, actor)
		return occurrence, nil

	default:
		return nil, fmt.Errorf("failed to look up override: %w", err)
	}
}

// DeleteOccurrence removes a single day from the schedule by flagging its
// override row deleted. The template itself is untouched.
func (s *OccurrenceService) DeleteOccurrence(templateID uuid.UUID, date time.Time, actor string) error {
	if _, err := s.templateRepo.GetByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	date = dateOnly(date)

	before, err := s.repo.GetByTemplateAndDate(templateID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up override: %w", err)
	}

	if err := s.repo.MarkDeleted(templateID, date); err != nil {
		return fmt.Errorf("failed to mark occurrence deleted: %w", err)
	}

	s.materializer.Invalidate()

	after, err := s.repo.GetByTemplateAndDate(templateID, date)
	if err == nil {
		if before != nil {
			s.audit.Record("schedule_occurrence", after.ID, models.AuditOperationUpdate, before, after, actor)
		} else {
			s.audit.Record("schedule_occurrence", after.ID, models.AuditOperationInsert, nil, after, actor)
		}
	}
	return nil
}
