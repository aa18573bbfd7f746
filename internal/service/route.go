package service

import (
	"errors"
	"fmt"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/distance"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteService handles business logic for routes and the distance table
// feeding the suggestion engine
type RouteService struct {
	repo         *repository.RouteRepository
	distanceRepo *repository.RouteDistanceRepository
	provider     *distance.TableProvider
	materializer *Materializer
	audit        *AuditService
	validator    *validator.Validate
}

// NewRouteService creates a new route service
func NewRouteService(
	repo *repository.RouteRepository,
	distanceRepo *repository.RouteDistanceRepository,
	provider *distance.TableProvider,
	materializer *Materializer,
	audit *AuditService,
	validator *validator.Validate,
) *RouteService {
	return &RouteService{
		repo:         repo,
		distanceRepo: distanceRepo,
		provider:     provider,
		materializer: materializer,
		audit:        audit,
		validator:    validator,
	}
}

// CreateRouteRequest represents the request to create a route
type CreateRouteRequest struct {
	Code                     string     `json:"code" validate:"required,min=1,max=40"`
	Name                     string     `json:"name" validate:"required,min=1,max=100"`
	Origin                   string     `json:"origin" validate:"required,max=200"`
	Destination              string     `json:"destination" validate:"required,max=200"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes" validate:"required,min=1"`
	OwnerID                  *uuid.UUID `json:"owner_id,omitempty"`
}

// UpdateRouteRequest represents the request to update a route
type UpdateRouteRequest struct {
	Name                     *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Origin                   *string    `json:"origin,omitempty" validate:"omitempty,max=200"`
	Destination              *string    `json:"destination,omitempty" validate:"omitempty,max=200"`
	EstimatedDurationMinutes *int       `json:"estimated_duration_minutes,omitempty" validate:"omitempty,min=1"`
	OwnerID                  *uuid.UUID `json:"owner_id,omitempty"`
}

// Create creates a new route
func (s *RouteService) Create(req *CreateRouteRequest, actor string) (*models.Route, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByCode(req.Code); err == nil {
		return nil, apperrors.ErrRouteExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check route code: %w", err)
	}

	route := &models.Route{
		Code:                     req.Code,
		Name:                     req.Name,
		Origin:                   req.Origin,
		Destination:              req.Destination,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		OwnerID:                  req.OwnerID,
	}
	if err := s.repo.Create(route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.audit.Record("route", route.ID, models.AuditOperationInsert, nil, route, actor)
	return route, nil
}

// GetByID retrieves a route by ID
func (s *RouteService) GetByID(id uuid.UUID) (*models.Route, error) {
	route, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

// GetAll retrieves routes with pagination
func (s *RouteService) GetAll(page, pageSize int) ([]models.Route, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	routes, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get routes: %w", err)
	}
	return routes, total, nil
}

// Update updates a route. Duration changes flow into every materialized
// arrival time, so the occurrence cache is dropped.
func (s *RouteService) Update(id uuid.UUID, req *UpdateRouteRequest, actor string) (*models.Route, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	route, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	before := *route
	if req.Name != nil {
		route.Name = *req.Name
	}
	if req.Origin != nil {
		route.Origin = *req.Origin
	}
	if req.Destination != nil {
		route.Destination = *req.Destination
	}
	if req.EstimatedDurationMinutes != nil {
		route.EstimatedDurationMinutes = *req.EstimatedDurationMinutes
	}
	if req.OwnerID != nil {
		route.OwnerID = req.OwnerID
	}

	if err := s.repo.Update(route); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	if before.EstimatedDurationMinutes != route.EstimatedDurationMinutes {
		s.materializer.Invalidate()
	}

	s.audit.Record("route", route.ID, models.AuditOperationUpdate, &before, route, actor)
	return route, nil
}

// Delete deletes a route
func (s *RouteService) Delete(id uuid.UUID, actor string) error {
	route, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRouteNotFound
		}
		return fmt.Errorf("failed to get route: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}

	s.materializer.Invalidate()
	s.provider.Invalidate()
	s.audit.Record("route", id, models.AuditOperationDelete, route, nil, actor)
	return nil
}

// SetDistanceRequest represents the request to record the distance between
// two routes
type SetDistanceRequest struct {
	FromRouteID uuid.UUID `json:"from_route_id" validate:"required"`
	ToRouteID   uuid.UUID `json:"to_route_id" validate:"required"`
	DistanceKm  float64   `json:"distance_km" validate:"min=0"`
}

// SetDistance upserts the distance for a route pair and drops the provider
// cache so the next suggestion run sees the fresh value
func (s *RouteService) SetDistance(req *SetDistanceRequest, actor string) (*models.RouteDistance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.FromRouteID == req.ToRouteID {
		return nil, apperrors.ErrSameRoutePair
	}

	for _, routeID := range []uuid.UUID{req.FromRouteID, req.ToRouteID} {
		if _, err := s.repo.GetByID(routeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRouteNotFound
			}
			return nil, fmt.Errorf("failed to verify route: %w", err)
		}
	}

	dist := &models.RouteDistance{
		FromRouteID: req.FromRouteID,
		ToRouteID:   req.ToRouteID,
		DistanceKm:  req.DistanceKm,
	}
	if err := s.distanceRepo.Upsert(dist); err != nil {
		return nil, fmt.Errorf("failed to upsert route distance: %w", err)
	}

	s.provider.Invalidate()
	s.audit.Record("route_distance", dist.ID, models.AuditOperationInsert, nil, dist, actor)
	return dist, nil
}

// GetDistances returns the recorded distances touching the given routes;
// with no filter it returns the whole table
func (s *RouteService) GetDistances(routeIDs []uuid.UUID) ([]models.RouteDistance, error) {
	var (
		distances []models.RouteDistance
		err       error
	)
	if len(routeIDs) == 0 {
		distances, err = s.distanceRepo.GetAll()
	} else {
		distances, err = s.distanceRepo.GetForRoutes(routeIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route distances: %w", err)
	}
	return distances, nil
}
