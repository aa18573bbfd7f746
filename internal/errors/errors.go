package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this plate number"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrDriverNotFound         = &NotFoundError{Entity: "driver"}
	ErrVehicleNotFound        = &NotFoundError{Entity: "vehicle"}
	ErrRouteNotFound          = &NotFoundError{Entity: "route"}
	ErrUserNotFound           = &NotFoundError{Entity: "user"}
	ErrTemplateNotFound       = &NotFoundError{Entity: "route template"}
	ErrOccurrenceNotFound     = &NotFoundError{Entity: "schedule occurrence"}
	ErrConflictNotFound       = &NotFoundError{Entity: "conflict record"}
	ErrSuggestionNotFound     = &NotFoundError{Entity: "suggestion record"}
	ErrAlertNotFound          = &NotFoundError{Entity: "alert"}
	ErrResponsibilityNotFound = &NotFoundError{Entity: "responsibility assignment"}
	ErrSupportOfferNotFound   = &NotFoundError{Entity: "support offer"}
	ErrRouteDistanceNotFound  = &NotFoundError{Entity: "route distance"}
)

// Already Exists Errors
var (
	ErrDriverExists         = &AlreadyExistsError{Entity: "driver", Context: "with this license number"}
	ErrVehicleExists        = &AlreadyExistsError{Entity: "vehicle", Context: "with this plate number"}
	ErrRouteExists          = &AlreadyExistsError{Entity: "route", Context: "with this code"}
	ErrUserExists           = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrResponsibilityExists = &AlreadyExistsError{Entity: "responsibility assignment", Context: "for this route and user"}
)

// Business Logic Errors
var (
	ErrEmptyRecurrenceRule = errors.New("recurrence rule must contain at least one weekday")
	ErrInvalidTimeRange    = errors.New("start date must not be after end date")
	ErrInvalidTimeOfDay    = errors.New("time of day must be in HH:MM format")
	ErrTemplateNotActive   = errors.New("template is not in an active status")
	ErrTemplateCancelled   = errors.New("template is cancelled")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrStaleUpdate         = errors.New("record was modified concurrently, reload and retry")
	ErrOfferNotPending     = errors.New("support offer is no longer pending")
	ErrOfferNotAddressed   = errors.New("support offer is not addressed to this user")
	ErrSameRoutePair       = errors.New("suggestion routes must be distinct")
	ErrInvalidWeightConfig = errors.New("distance and time weights must sum to 1")
	ErrInvalidGapConfig    = errors.New("min gap must be less than max gap")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
