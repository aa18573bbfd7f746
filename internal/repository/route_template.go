package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteTemplateRepository handles database operations for route templates
type RouteTemplateRepository struct {
	db *gorm.DB
}

// NewRouteTemplateRepository creates a new route template repository
func NewRouteTemplateRepository(db *gorm.DB) *RouteTemplateRepository {
	return &RouteTemplateRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *RouteTemplateRepository) WithTx(tx *gorm.DB) *RouteTemplateRepository {
	return &RouteTemplateRepository{db: tx}
}

// Create creates a new route template
func (r *RouteTemplateRepository) Create(template *models.RouteTemplate) error {
	return r.db.Create(template).Error
}

// GetByID retrieves a route template by ID
func (r *RouteTemplateRepository) GetByID(id uuid.UUID) (*models.RouteTemplate, error) {
	var template models.RouteTemplate
	err := r.db.Preload("Route").First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetAll retrieves all route templates with pagination
func (r *RouteTemplateRepository) GetAll(limit, offset int) ([]models.RouteTemplate, int64, error) {
	var templates []models.RouteTemplate
	var total int64

	if err := r.db.Model(&models.RouteTemplate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Route").Order("created_at DESC").Limit(limit).Offset(offset).Find(&templates).Error
	return templates, total, err
}

// GetByRouteID retrieves all templates for a route
func (r *RouteTemplateRepository) GetByRouteID(routeID uuid.UUID) ([]models.RouteTemplate, error) {
	var templates []models.RouteTemplate
	err := r.db.Where("route_id = ?", routeID).Find(&templates).Error
	return templates, err
}

// GetActiveInWindow retrieves confirmed/changed templates whose recurrence
// horizon intersects [from, to]
func (r *RouteTemplateRepository) GetActiveInWindow(from, to time.Time) ([]models.RouteTemplate, error) {
	var templates []models.RouteTemplate
	err := r.db.Preload("Route").
		Where("status IN ?", []models.TemplateStatus{models.TemplateStatusConfirmed, models.TemplateStatusChanged}).
		Where("start_date <= ?", to).
		Where("end_date IS NULL OR end_date >= ?", from).
		Find(&templates).Error
	return templates, err
}

// Update updates a route template
func (r *RouteTemplateRepository) Update(template *models.RouteTemplate) error {
	return r.db.Save(template).Error
}

// UpdateStatusCAS transitions the template status only if the row has not
// been modified since expectedUpdatedAt. Returns gorm.ErrRecordNotFound
// when the compare-and-swap misses.
func (r *RouteTemplateRepository) UpdateStatusCAS(id uuid.UUID, status models.TemplateStatus, expectedUpdatedAt time.Time) error {
	res := r.db.Model(&models.RouteTemplate{}).
		Where("id = ? AND updated_at = ?", id, expectedUpdatedAt).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
