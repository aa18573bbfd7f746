package repository

import (
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db *gorm.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create creates a new route
func (r *RouteRepository) Create(route *models.Route) error {
	return r.db.Create(route).Error
}

// GetByID retrieves a route by ID
func (r *RouteRepository) GetByID(id uuid.UUID) (*models.Route, error) {
	var route models.Route
	err := r.db.First(&route, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// GetByCode retrieves a route by its code
func (r *RouteRepository) GetByCode(code string) (*models.Route, error) {
	var route models.Route
	err := r.db.First(&route, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// GetByIDs retrieves routes for a set of IDs
func (r *RouteRepository) GetByIDs(ids []uuid.UUID) ([]models.Route, error) {
	var routes []models.Route
	err := r.db.Where("id IN ?", ids).Find(&routes).Error
	return routes, err
}

// GetAll retrieves all routes with pagination
func (r *RouteRepository) GetAll(limit, offset int) ([]models.Route, int64, error) {
	var routes []models.Route
	var total int64

	if err := r.db.Model(&models.Route{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("code ASC").Limit(limit).Offset(offset).Find(&routes).Error
	return routes, total, err
}

// Update updates a route
func (r *RouteRepository) Update(route *models.Route) error {
	return r.db.Save(route).Error
}

// Delete deletes a route
func (r *RouteRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Route{}, "id = ?", id).Error
}

// RouteDistanceRepository handles database operations for route distances
type RouteDistanceRepository struct {
	db *gorm.DB
}

// NewRouteDistanceRepository creates a new route distance repository
func NewRouteDistanceRepository(db *gorm.DB) *RouteDistanceRepository {
	return &RouteDistanceRepository{db: db}
}

// Upsert inserts or updates the distance for an ordered route pair
func (r *RouteDistanceRepository) Upsert(distance *models.RouteDistance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_route_id"}, {Name: "to_route_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"distance_km", "updated_at"}),
	}).Create(distance).Error
}

// GetByPair retrieves the distance record for an ordered route pair
func (r *RouteDistanceRepository) GetByPair(fromRouteID, toRouteID uuid.UUID) (*models.RouteDistance, error) {
	var distance models.RouteDistance
	err := r.db.First(&distance, "from_route_id = ? AND to_route_id = ?", fromRouteID, toRouteID).Error
	if err != nil {
		return nil, err
	}
	return &distance, nil
}

// GetAll retrieves every distance record
func (r *RouteDistanceRepository) GetAll() ([]models.RouteDistance, error) {
	var distances []models.RouteDistance
	err := r.db.Find(&distances).Error
	return distances, err
}

// GetForRoutes retrieves all distance records among the given routes
func (r *RouteDistanceRepository) GetForRoutes(routeIDs []uuid.UUID) ([]models.RouteDistance, error) {
	var distances []models.RouteDistance
	err := r.db.Where("from_route_id IN ? AND to_route_id IN ?", routeIDs, routeIDs).Find(&distances).Error
	return distances, err
}
