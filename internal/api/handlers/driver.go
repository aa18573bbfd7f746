package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DriverHandler handles HTTP requests for driver operations
type DriverHandler struct {
	service *service.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(service *service.DriverService) *DriverHandler {
	return &DriverHandler{service: service}
}

// CreateDriver handles POST /drivers
// @Summary Create a driver
// @Description Register a new driver
// @Tags drivers
// @Accept json
// @Produce json
// @Param driver body service.CreateDriverRequest true "Driver to create"
// @Success 201 {object} models.Driver "Successfully created driver"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Driver already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /drivers [post]
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req service.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	driver, err := h.service.Create(&req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrDriverExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// GetDriver handles GET /drivers/:id
// @Summary Get driver by ID
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID (UUID)"
// @Success 200 {object} models.Driver "Successfully retrieved driver"
// @Failure 400 {object} map[string]interface{} "Invalid driver ID"
// @Failure 404 {object} map[string]interface{} "Driver not found"
// @Router /drivers/{id} [get]
func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID: invalid UUID format"})
		return
	}

	driver, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get driver", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListDrivers handles GET /drivers
// @Summary List drivers
// @Tags drivers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved drivers"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /drivers [get]
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	page, pageSize := pagination(c)

	drivers, total, err := h.service.GetAll(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get drivers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: drivers, Total: total, Page: page, PageSize: pageSize})
}

// UpdateDriver handles PUT /drivers/:id
// @Summary Update a driver
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path string true "Driver ID (UUID)"
// @Param driver body service.UpdateDriverRequest true "Fields to update"
// @Success 200 {object} models.Driver "Successfully updated driver"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Driver not found"
// @Router /drivers/{id} [put]
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID: invalid UUID format"})
		return
	}

	var req service.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	driver, err := h.service.Update(id, &req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, driver)
}

// DeleteDriver handles DELETE /drivers/:id
// @Summary Delete a driver
// @Tags drivers
// @Produce json
// @Param id path string true "Driver ID (UUID)"
// @Success 204 "Successfully deleted driver"
// @Failure 400 {object} map[string]interface{} "Invalid driver ID"
// @Failure 404 {object} map[string]interface{} "Driver not found"
// @Router /drivers/{id} [delete]
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id, actor(c)); err != nil {
		if errors.Is(err, apperrors.ErrDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
