package service

import (
	"errors"
	"fmt"

	"fleet-scheduler-backend/internal/database/models"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverService handles business logic for drivers
type DriverService struct {
	repo      *repository.DriverRepository
	audit     *AuditService
	validator *validator.Validate
}

// NewDriverService creates a new driver service
func NewDriverService(repo *repository.DriverRepository, audit *AuditService, validator *validator.Validate) *DriverService {
	return &DriverService{repo: repo, audit: audit, validator: validator}
}

// CreateDriverRequest represents the request to create a driver
type CreateDriverRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	LicenseNumber string `json:"license_number" validate:"required,min=1,max=40"`
	Phone         string `json:"phone,omitempty" validate:"max=40"`
}

// UpdateDriverRequest represents the request to update a driver
type UpdateDriverRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Active *bool   `json:"active,omitempty"`
}

// Create creates a new driver
func (s *DriverService) Create(req *CreateDriverRequest, actor string) (*models.Driver, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByLicenseNumber(req.LicenseNumber); err == nil {
		return nil, apperrors.ErrDriverExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check license number: %w", err)
	}

	driver := &models.Driver{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		Active:        true,
	}
	if err := s.repo.Create(driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	s.audit.Record("driver", driver.ID, models.AuditOperationInsert, nil, driver, actor)
	return driver, nil
}

// GetByID retrieves a driver by ID
func (s *DriverService) GetByID(id uuid.UUID) (*models.Driver, error) {
	driver, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}

// GetAll retrieves drivers with pagination
func (s *DriverService) GetAll(page, pageSize int) ([]models.Driver, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	drivers, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get drivers: %w", err)
	}
	return drivers, total, nil
}

// Update updates a driver
func (s *DriverService) Update(id uuid.UUID, req *UpdateDriverRequest, actor string) (*models.Driver, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	driver, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	before := *driver
	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.Active != nil {
		driver.Active = *req.Active
	}

	if err := s.repo.Update(driver); err != nil {
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	s.audit.Record("driver", driver.ID, models.AuditOperationUpdate, &before, driver, actor)
	return driver, nil
}

// Delete deletes a driver
func (s *DriverService) Delete(id uuid.UUID, actor string) error {
	driver, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDriverNotFound
		}
		return fmt.Errorf("failed to get driver: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}

	s.audit.Record("driver", id, models.AuditOperationDelete, driver, nil, actor)
	return nil
}
