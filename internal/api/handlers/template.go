package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TemplateHandler handles HTTP requests for route template operations
type TemplateHandler struct {
	service *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(service *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// CreateTemplate handles POST /templates
// @Summary Create a route template
// @Description Create a recurring schedule template for a route
// @Tags templates
// @Accept json
// @Produce json
// @Param template body service.CreateTemplateRequest true "Template to create"
// @Success 201 {object} models.RouteTemplate "Successfully created template"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Referenced entity not found"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req service.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	template, err := h.service.Create(&req, actor(c))
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrEmptyRecurrenceRule),
			errors.Is(err, apperrors.ErrInvalidTimeRange),
			errors.Is(err, apperrors.ErrInvalidTimeOfDay):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplate handles GET /templates/:id
// @Summary Get template by ID
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} models.RouteTemplate "Successfully retrieved template"
// @Failure 404 {object} map[string]interface{} "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID: invalid UUID format"})
		return
	}

	template, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get template", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTemplates handles GET /templates
// @Summary List route templates
// @Tags templates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved templates"
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	page, pageSize := pagination(c)

	templates, total, err := h.service.GetAll(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get templates", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: templates, Total: total, Page: page, PageSize: pageSize})
}

// UpdateTemplate handles PUT /templates/:id
// @Summary Update a route template
// @Description Update template fields; status transitions require expected_updated_at
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Param template body service.UpdateTemplateRequest true "Fields to update"
// @Success 200 {object} models.RouteTemplate "Successfully updated template"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Template not found"
// @Failure 409 {object} map[string]interface{} "Template was modified concurrently"
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID: invalid UUID format"})
		return
	}

	var req service.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	template, err := h.service.Update(id, &req, actor(c))
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStaleUpdate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTemplateCancelled),
			errors.Is(err, apperrors.ErrEmptyRecurrenceRule),
			errors.Is(err, apperrors.ErrInvalidTimeRange),
			errors.Is(err, apperrors.ErrInvalidTimeOfDay),
			errors.Is(err, apperrors.ErrInvalidStatus),
			apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// CancelTemplate handles POST /templates/:id/cancel
// @Summary Cancel a route template
// @Description Cancel a template; future occurrences are removed, past ones stay as history
// @Tags templates
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} models.RouteTemplate "Successfully cancelled template"
// @Failure 404 {object} map[string]interface{} "Template not found"
// @Router /templates/{id}/cancel [post]
func (h *TemplateHandler) CancelTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID: invalid UUID format"})
		return
	}

	template, err := h.service.Cancel(id, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel template", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, template)
}
