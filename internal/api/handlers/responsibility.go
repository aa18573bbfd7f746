package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResponsibilityHandler handles HTTP requests for responsibility assignments
type ResponsibilityHandler struct {
	service *service.ResponsibilityService
}

// NewResponsibilityHandler creates a new responsibility handler
func NewResponsibilityHandler(service *service.ResponsibilityService) *ResponsibilityHandler {
	return &ResponsibilityHandler{service: service}
}

// AssignResponsibility handles POST /responsibilities
// @Summary Assign a route responsibility
// @Description Grant a user a role on a route; assignees receive that route's alerts
// @Tags responsibilities
// @Accept json
// @Produce json
// @Param assignment body service.AssignRequest true "Assignment to create"
// @Success 201 {object} models.ResponsibilityAssignment "Successfully created assignment"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Route or user not found"
// @Failure 409 {object} map[string]interface{} "Assignment already exists"
// @Router /responsibilities [post]
func (h *ResponsibilityHandler) AssignResponsibility(c *gin.Context) {
	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	assignment, err := h.service.Assign(&req, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResponsibilityExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid responsibility role"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// ListRouteResponsibilities handles GET /routes/:id/responsibilities
// @Summary List active responsibilities for a route
// @Tags responsibilities
// @Produce json
// @Param id path string true "Route ID (UUID)"
// @Success 200 {object} map[string]interface{} "Successfully retrieved assignments"
// @Router /routes/{id}/responsibilities [get]
func (h *ResponsibilityHandler) ListRouteResponsibilities(c *gin.Context) {
	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID: invalid UUID format"})
		return
	}

	assignments, err := h.service.ListByRoute(routeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get assignments", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assignments, "count": len(assignments)})
}

// RevokeResponsibility handles DELETE /responsibilities/:id
// @Summary Revoke a responsibility assignment
// @Tags responsibilities
// @Produce json
// @Param id path string true "Assignment ID (UUID)"
// @Success 204 "Assignment revoked"
// @Failure 404 {object} map[string]interface{} "Assignment not found"
// @Router /responsibilities/{id} [delete]
func (h *ResponsibilityHandler) RevokeResponsibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID: invalid UUID format"})
		return
	}

	if err := h.service.Revoke(id, actor(c)); err != nil {
		if errors.Is(err, apperrors.ErrResponsibilityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke assignment", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
