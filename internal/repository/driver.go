package repository

import (
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverRepository handles database operations for drivers
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create creates a new driver
func (r *DriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID retrieves a driver by ID
func (r *DriverRepository) GetByID(id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.First(&driver, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// GetByLicenseNumber retrieves a driver by license number
func (r *DriverRepository) GetByLicenseNumber(license string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.First(&driver, "license_number = ?", license).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// GetAll retrieves all drivers with pagination
func (r *DriverRepository) GetAll(limit, offset int) ([]models.Driver, int64, error) {
	var drivers []models.Driver
	var total int64

	if err := r.db.Model(&models.Driver{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&drivers).Error
	return drivers, total, err
}

// Update updates a driver
func (r *DriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// Delete deletes a driver
func (r *DriverRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Driver{}, "id = ?", id).Error
}
