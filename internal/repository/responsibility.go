package repository

import (
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResponsibilityRepository handles database operations for responsibility
// assignments
type ResponsibilityRepository struct {
	db *gorm.DB
}

// NewResponsibilityRepository creates a new responsibility repository
func NewResponsibilityRepository(db *gorm.DB) *ResponsibilityRepository {
	return &ResponsibilityRepository{db: db}
}

// Create creates a new responsibility assignment
func (r *ResponsibilityRepository) Create(assignment *models.ResponsibilityAssignment) error {
	return r.db.Create(assignment).Error
}

// GetByID retrieves a responsibility assignment by ID
func (r *ResponsibilityRepository) GetByID(id uuid.UUID) (*models.ResponsibilityAssignment, error) {
	var assignment models.ResponsibilityAssignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetByRouteAndUser retrieves the assignment for a (route, user) pair
func (r *ResponsibilityRepository) GetByRouteAndUser(routeID, userID uuid.UUID) (*models.ResponsibilityAssignment, error) {
	var assignment models.ResponsibilityAssignment
	err := r.db.First(&assignment, "route_id = ? AND user_id = ?", routeID, userID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetActiveByRouteID retrieves all active assignments for a route
func (r *ResponsibilityRepository) GetActiveByRouteID(routeID uuid.UUID) ([]models.ResponsibilityAssignment, error) {
	var assignments []models.ResponsibilityAssignment
	err := r.db.Where("route_id = ? AND active = ?", routeID, true).Find(&assignments).Error
	return assignments, err
}

// GetActiveByRouteIDs retrieves all active assignments for a set of routes
func (r *ResponsibilityRepository) GetActiveByRouteIDs(routeIDs []uuid.UUID) ([]models.ResponsibilityAssignment, error) {
	if len(routeIDs) == 0 {
		return nil, nil
	}
	var assignments []models.ResponsibilityAssignment
	err := r.db.Where("route_id IN ? AND active = ?", routeIDs, true).Find(&assignments).Error
	return assignments, err
}

// Update updates a responsibility assignment
func (r *ResponsibilityRepository) Update(assignment *models.ResponsibilityAssignment) error {
	return r.db.Save(assignment).Error
}

// Deactivate marks an assignment inactive, stopping its alert fan-out
func (r *ResponsibilityRepository) Deactivate(id uuid.UUID) error {
	res := r.db.Model(&models.ResponsibilityAssignment{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
