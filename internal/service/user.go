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

// UserService handles business logic for planner identities
type UserService struct {
	repo      *repository.UserRepository
	audit     *AuditService
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository, audit *AuditService, validator *validator.Validate) *UserService {
	return &UserService{repo: repo, audit: audit, validator: validator}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Active      *bool   `json:"active,omitempty"`
}

// Create creates a new user
func (s *UserService) Create(req *CreateUserRequest, actor string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Active:      true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record("user", user.ID, models.AuditOperationInsert, nil, user, actor)
	return user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetAll retrieves users with pagination
func (s *UserService) GetAll(page, pageSize int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	users, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get users: %w", err)
	}
	return users, total, nil
}

// Update updates a user
func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest, actor string) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	before := *user
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Record("user", user.ID, models.AuditOperationUpdate, &before, user, actor)
	return user, nil
}

// Delete deletes a user
func (s *UserService) Delete(id uuid.UUID, actor string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit.Record("user", id, models.AuditOperationDelete, user, nil, actor)
	return nil
}
