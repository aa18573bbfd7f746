package repository

import (
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleRepository handles database operations for vehicles
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByPlateNumber retrieves a vehicle by plate number
func (r *VehicleRepository) GetByPlateNumber(plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.First(&vehicle, "plate_number = ?", plate).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetAll retrieves all vehicles with pagination
func (r *VehicleRepository) GetAll(limit, offset int) ([]models.Vehicle, int64, error) {
	var vehicles []models.Vehicle
	var total int64

	if err := r.db.Model(&models.Vehicle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("plate_number ASC").Limit(limit).Offset(offset).Find(&vehicles).Error
	return vehicles, total, err
}

// Update updates a vehicle
func (r *VehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

// Delete deletes a vehicle
func (r *VehicleRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Vehicle{}, "id = ?", id).Error
}
