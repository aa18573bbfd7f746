package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VehicleHandler handles HTTP requests for vehicle operations
type VehicleHandler struct {
	service *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// CreateVehicle handles POST /vehicles
// @Summary Create a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body service.CreateVehicleRequest true "Vehicle to create"
// @Success 201 {object} models.Vehicle "Successfully created vehicle"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Vehicle already exists"
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	vehicle, err := h.service.Create(&req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicle handles GET /vehicles/:id
// @Summary Get vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Success 200 {object} models.Vehicle "Successfully retrieved vehicle"
// @Failure 404 {object} map[string]interface{} "Vehicle not found"
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID: invalid UUID format"})
		return
	}

	vehicle, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// ListVehicles handles GET /vehicles
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved vehicles"
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	page, pageSize := pagination(c)

	vehicles, total, err := h.service.GetAll(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vehicles", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: vehicles, Total: total, Page: page, PageSize: pageSize})
}

// UpdateVehicle handles PUT /vehicles/:id
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Param vehicle body service.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} models.Vehicle "Successfully updated vehicle"
// @Failure 404 {object} map[string]interface{} "Vehicle not found"
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID: invalid UUID format"})
		return
	}

	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	vehicle, err := h.service.Update(id, &req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:id
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Success 204 "Successfully deleted vehicle"
// @Failure 404 {object} map[string]interface{} "Vehicle not found"
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id, actor(c)); err != nil {
		if errors.Is(err, apperrors.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
