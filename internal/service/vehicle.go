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

// VehicleService handles business logic for vehicles
type VehicleService struct {
	repo      *repository.VehicleRepository
	audit     *AuditService
	validator *validator.Validate
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repo *repository.VehicleRepository, audit *AuditService, validator *validator.Validate) *VehicleService {
	return &VehicleService{repo: repo, audit: audit, validator: validator}
}

// CreateVehicleRequest represents the request to create a vehicle
type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" validate:"required,min=1,max=20"`
	Model       string `json:"model,omitempty" validate:"max=100"`
	Capacity    int    `json:"capacity,omitempty" validate:"min=0"`
}

// UpdateVehicleRequest represents the request to update a vehicle
type UpdateVehicleRequest struct {
	Model    *string `json:"model,omitempty" validate:"omitempty,max=100"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Active   *bool   `json:"active,omitempty"`
}

// Create creates a new vehicle
func (s *VehicleService) Create(req *CreateVehicleRequest, actor string) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByPlateNumber(req.PlateNumber); err == nil {
		return nil, apperrors.ErrVehicleExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check plate number: %w", err)
	}

	vehicle := &models.Vehicle{
		PlateNumber: req.PlateNumber,
		Model:       req.Model,
		Capacity:    req.Capacity,
		Active:      true,
	}
	if err := s.repo.Create(vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.audit.Record("vehicle", vehicle.ID, models.AuditOperationInsert, nil, vehicle, actor)
	return vehicle, nil
}

// GetByID retrieves a vehicle by ID
func (s *VehicleService) GetByID(id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

// GetAll retrieves vehicles with pagination
func (s *VehicleService) GetAll(page, pageSize int) ([]models.Vehicle, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	vehicles, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get vehicles: %w", err)
	}
	return vehicles, total, nil
}

// Update updates a vehicle
func (s *VehicleService) Update(id uuid.UUID, req *UpdateVehicleRequest, actor string) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	before := *vehicle
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Capacity != nil {
		vehicle.Capacity = *req.Capacity
	}
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	if err := s.repo.Update(vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.audit.Record("vehicle", vehicle.ID, models.AuditOperationUpdate, &before, vehicle, actor)
	return vehicle, nil
}

// Delete deletes a vehicle
func (s *VehicleService) Delete(id uuid.UUID, actor string) error {
	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.audit.Record("vehicle", id, models.AuditOperationDelete, vehicle, nil, actor)
	return nil
}
