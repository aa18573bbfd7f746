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

// TemplateService handles business logic for route templates
type TemplateService struct {
	repo           *repository.RouteTemplateRepository
	occurrenceRepo *repository.ScheduleOccurrenceRepository
	routeRepo      *repository.RouteRepository
	driverRepo     *repository.DriverRepository
	vehicleRepo    *repository.VehicleRepository
	userRepo       *repository.UserRepository
	materializer   *Materializer
	audit          *AuditService
	validator      *validator.Validate
}

// NewTemplateService creates a new template service
func NewTemplateService(
	repo *repository.RouteTemplateRepository,
	occurrenceRepo *repository.ScheduleOccurrenceRepository,
	routeRepo *repository.RouteRepository,
	driverRepo *repository.DriverRepository,
	vehicleRepo *repository.VehicleRepository,
	userRepo *repository.UserRepository,
	materializer *Materializer,
	audit *AuditService,
	validator *validator.Validate,
) *TemplateService {
	return &TemplateService{
		repo:           repo,
		occurrenceRepo: occurrenceRepo,
		routeRepo:      routeRepo,
		driverRepo:     driverRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		materializer:   materializer,
		audit:          audit,
		validator:      validator,
	}
}

// CreateTemplateRequest represents the request to create a route template
type CreateTemplateRequest struct {
	RouteID              uuid.UUID         `json:"route_id" validate:"required"`
	Weekdays             models.WeekdaySet `json:"weekdays" validate:"required"`
	StartDate            time.Time         `json:"start_date" validate:"required"`
	EndDate              *time.Time        `json:"end_date,omitempty"`
	DefaultStandbyTime   string            `json:"default_standby_time" validate:"required"`
	DefaultDepartureTime string            `json:"default_departure_time" validate:"required"`
	DefaultDriverID      *uuid.UUID        `json:"default_driver_id,omitempty"`
	DefaultVehicleID     *uuid.UUID        `json:"default_vehicle_id,omitempty"`
	OwnerID              uuid.UUID         `json:"owner_id" validate:"required"`
	Priority             int               `json:"priority"`
}

// UpdateTemplateRequest represents the request to update a route template
type UpdateTemplateRequest struct {
	Weekdays             *models.WeekdaySet     `json:"weekdays,omitempty"`
	StartDate            *time.Time             `json:"start_date,omitempty"`
	EndDate              *time.Time             `json:"end_date,omitempty"`
	DefaultStandbyTime   *string                `json:"default_standby_time,omitempty"`
	DefaultDepartureTime *string                `json:"default_departure_time,omitempty"`
	DefaultDriverID      *uuid.UUID             `json:"default_driver_id,omitempty"`
	DefaultVehicleID     *uuid.UUID             `json:"default_vehicle_id,omitempty"`
	Priority             *int                   `json:"priority,omitempty"`
	Status               *models.TemplateStatus `json:"status,omitempty"`
	// ExpectedUpdatedAt guards status transitions against concurrent edits
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// Create creates a new route template
func (s *TemplateService) Create(req *CreateTemplateRequest, actor string) (*models.RouteTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Weekdays.Valid() {
		return nil, apperrors.ErrEmptyRecurrenceRule
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.ErrInvalidTimeRange
	}
	if _, _, err := parseClock(req.DefaultStandbyTime); err != nil {
		return nil, err
	}
	if _, _, err := parseClock(req.DefaultDepartureTime); err != nil {
		return nil, err
	}

	if _, err := s.routeRepo.GetByID(req.RouteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to verify route: %w", err)
	}
	if _, err := s.userRepo.GetByID(req.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}
	if req.DefaultDriverID != nil {
		if _, err := s.driverRepo.GetByID(*req.DefaultDriverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDriverNotFound
			}
			return nil, fmt.Errorf("failed to verify driver: %w", err)
		}
	}
	if req.DefaultVehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(*req.DefaultVehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrVehicleNotFound
			}
			return nil, fmt.Errorf("failed to verify vehicle: %w", err)
		}
	}

	template := &models.RouteTemplate{
		RouteID:              req.RouteID,
		Weekdays:             req.Weekdays,
		StartDate:            dateOnly(req.StartDate),
		DefaultStandbyTime:   req.DefaultStandbyTime,
		DefaultDepartureTime: req.DefaultDepartureTime,
		DefaultDriverID:      req.DefaultDriverID,
		DefaultVehicleID:     req.DefaultVehicleID,
		OwnerID:              req.OwnerID,
		Priority:             req.Priority,
		Status:               models.TemplateStatusPending,
	}
	if req.EndDate != nil {
		end := dateOnly(*req.EndDate)
		template.EndDate = &end
	}

	if err := s.repo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.materializer.Invalidate()
	s.audit.Record("route_template", template.ID, models.AuditOperationInsert, nil, template, actor)

	return template, nil
}

// GetByID retrieves a route template by ID
func (s *TemplateService) GetByID(id uuid.UUID) (*models.RouteTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

// GetAll retrieves route templates with pagination
func (s *TemplateService) GetAll(page, pageSize int) ([]models.RouteTemplate, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	templates, total, err := s.repo.GetAll(pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, total, nil
}

// Update updates a route template. Status transitions are guarded by a
// compare-and-swap on updated_at when the caller supplies the value it
// last read.
func (s *TemplateService) Update(id uuid.UUID, req *UpdateTemplateRequest, actor string) (*models.RouteTemplate, error) {
	template, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template.Status == models.TemplateStatusCancelled {
		return nil, apperrors.ErrTemplateCancelled
	}

	before := *template

	if req.Weekdays != nil {
		if !req.Weekdays.Valid() {
			return nil, apperrors.ErrEmptyRecurrenceRule
		}
		template.Weekdays = *req.Weekdays
	}
	if req.StartDate != nil {
		template.StartDate = dateOnly(*req.StartDate)
	}
	if req.EndDate != nil {
		end := dateOnly(*req.EndDate)
		template.EndDate = &end
	}
	if req.DefaultStandbyTime != nil {
		if _, _, err := parseClock(*req.DefaultStandbyTime); err != nil {
			return nil, err
		}
		template.DefaultStandbyTime = *req.DefaultStandbyTime
	}
	if req.DefaultDepartureTime != nil {
		if _, _, err := parseClock(*req.DefaultDepartureTime); err != nil {
			return nil, err
		}
		template.DefaultDepartureTime = *req.DefaultDepartureTime
	}
	if req.DefaultDriverID != nil {
		if _, err := s.driverRepo.GetByID(*req.DefaultDriverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDriverNotFound
			}
			return nil, fmt.Errorf("failed to verify driver: %w", err)
		}
		template.DefaultDriverID = req.DefaultDriverID
	}
	if req.DefaultVehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(*req.DefaultVehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrVehicleNotFound
			}
			return nil, fmt.Errorf("failed to verify vehicle: %w", err)
		}
		template.DefaultVehicleID = req.DefaultVehicleID
	}
	if req.Priority != nil {
		template.Priority = *req.Priority
	}

	if template.EndDate != nil && template.EndDate.Before(template.StartDate) {
		return nil, apperrors.ErrInvalidTimeRange
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		if req.ExpectedUpdatedAt != nil {
			if err := s.repo.UpdateStatusCAS(id, *req.Status, *req.ExpectedUpdatedAt); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrStaleUpdate
				}
				return nil, fmt.Errorf("failed to update template status: %w", err)
			}
		}
		template.Status = *req.Status
	}

	if err := s.repo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	s.materializer.Invalidate()
	s.audit.Record("route_template", template.ID, models.AuditOperationUpdate, &before, template, actor)

	return template, nil
}

// Cancel transitions a template to cancelled and marks its future override
// rows deleted. Past occurrences stay untouched as immutable history.
func (s *TemplateService) Cancel(id uuid.UUID, actor string) (*models.RouteTemplate, error) {
	template, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template.Status == models.TemplateStatusCancelled {
		return template, nil
	}

	before := *template
	template.Status = models.TemplateStatusCancelled

	if err := s.repo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to cancel template: %w", err)
	}
	if err := s.occurrenceRepo.MarkDeletedFrom(id, dateOnly(time.Now())); err != nil {
		return nil, fmt.Errorf("failed to mark future occurrences deleted: %w", err)
	}

	s.materializer.Invalidate()
	s.audit.Record("route_template", template.ID, models.AuditOperationUpdate, &before, template, actor)

	return template, nil
}
