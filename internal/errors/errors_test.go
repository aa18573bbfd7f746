package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "route"}
		assert.Equal(t, "route not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "route"}
		err2 := &NotFoundError{Entity: "route"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "route"}
		err2 := &NotFoundError{Entity: "driver"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrRouteNotFound, ErrRouteNotFound))
		assert.False(t, errors.Is(ErrRouteNotFound, ErrDriverNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrTemplateNotFound))
		assert.False(t, IsNotFound(ErrStaleUpdate))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "driver", Context: "with this license number"}
		assert.Equal(t, "driver already exists with this license number", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "driver"}
		assert.Equal(t, "driver already exists", err.Error())
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrResponsibilityExists))
		assert.False(t, IsAlreadyExists(ErrRouteNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &ValidationError{Field: "weekdays", Message: "must not be empty"}
		assert.Equal(t, "validation error: weekdays - must not be empty", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		assert.True(t, IsValidation(NewValidationError("max_distance_km", "must be positive")))
		assert.False(t, IsValidation(ErrInvalidWeightConfig))
	})

	t.Run("wrapped validation error", func(t *testing.T) {
		wrapped := NewValidationError("expected_updated_at", "required when updating an existing override")
		assert.True(t, IsValidation(wrapped))
	})
}

func TestBusinessLogicErrors(t *testing.T) {
	t.Run("sentinels are distinct", func(t *testing.T) {
		assert.False(t, errors.Is(ErrStaleUpdate, ErrTemplateCancelled))
		assert.False(t, errors.Is(ErrOfferNotPending, ErrOfferNotAddressed))
	})

	t.Run("stale update message", func(t *testing.T) {
		assert.Contains(t, ErrStaleUpdate.Error(), "concurrently")
	})
}

func TestIsValidationRecognizesStructValidator(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	err := validator.New().Struct(payload{})
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("validation failed: %w", err)))
	assert.False(t, IsValidation(errors.New("plain failure")))
}
