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

// ResponsibilityService handles business logic for route responsibility
// assignments
type ResponsibilityService struct {
	repo      *repository.ResponsibilityRepository
	routeRepo *repository.RouteRepository
	userRepo  *repository.UserRepository
	audit     *AuditService
	validator *validator.Validate
}

// NewResponsibilityService creates a new responsibility service
func NewResponsibilityService(
	repo *repository.ResponsibilityRepository,
	routeRepo *repository.RouteRepository,
	userRepo *repository.UserRepository,
	audit *AuditService,
	validator *validator.Validate,
) *ResponsibilityService {
	return &ResponsibilityService{
		repo:      repo,
		routeRepo: routeRepo,
		userRepo:  userRepo,
		audit:     audit,
		validator: validator,
	}
}

// AssignRequest represents the request to grant a responsibility
type AssignRequest struct {
	RouteID    uuid.UUID                 `json:"route_id" validate:"required"`
	UserID     uuid.UUID                 `json:"user_id" validate:"required"`
	Role       models.ResponsibilityRole `json:"role" validate:"required"`
	AssignedBy *uuid.UUID                `json:"assigned_by,omitempty"`
}

// Assign grants a user a role on a route
func (s *ResponsibilityService) Assign(req *AssignRequest, actor string) (*models.ResponsibilityAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Role.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if _, err := s.routeRepo.GetByID(req.RouteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to verify route: %w", err)
	}
	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	if existing, err := s.repo.GetByRouteAndUser(req.RouteID, req.UserID); err == nil {
		if existing.Active {
			return nil, apperrors.ErrResponsibilityExists
		}
		// Reactivate a previously revoked grant with the new role
		before := *existing
		existing.Role = req.Role
		existing.AssignedBy = req.AssignedBy
		existing.Active = true
		if err := s.repo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate assignment: %w", err)
		}
		s.audit.Record("responsibility_assignment", existing.ID, models.AuditOperationUpdate, &before, existing, actor)
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	assignment := &models.ResponsibilityAssignment{
		RouteID:    req.RouteID,
		UserID:     req.UserID,
		Role:       req.Role,
		AssignedBy: req.AssignedBy,
		Active:     true,
	}
	if err := s.repo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.audit.Record("responsibility_assignment", assignment.ID, models.AuditOperationInsert, nil, assignment, actor)
	return assignment, nil
}

// ListByRoute returns the active assignments for a route
func (s *ResponsibilityService) ListByRoute(routeID uuid.UUID) ([]models.ResponsibilityAssignment, error) {
	assignments, err := s.repo.GetActiveByRouteID(routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// Revoke deactivates an assignment, stopping its alert fan-out
func (s *ResponsibilityService) Revoke(id uuid.UUID, actor string) error {
	before, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResponsibilityNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.repo.Deactivate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResponsibilityNotFound
		}
		return fmt.Errorf("failed to revoke assignment: %w", err)
	}

	after := *before
	after.Active = false
	s.audit.Record("responsibility_assignment", id, models.AuditOperationUpdate, before, &after, actor)
	return nil
}
