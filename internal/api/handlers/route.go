package handlers

import (
	"errors"
	"net/http"
	"strings"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RouteHandler handles HTTP requests for route and distance operations
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// CreateRoute handles POST /routes
// @Summary Create a route
// @Tags routes
// @Accept json
// @Produce json
// @Param route body service.CreateRouteRequest true "Route to create"
// @Success 201 {object} models.Route "Successfully created route"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Route already exists"
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req service.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	route, err := h.service.Create(&req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrRouteExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create route", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// GetRoute handles GET /routes/:id
// @Summary Get route by ID
// @Tags routes
// @Produce json
// @Param id path string true "Route ID (UUID)"
// @Success 200 {object} models.Route "Successfully retrieved route"
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /routes/{id} [get]
func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID: invalid UUID format"})
		return
	}

	route, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get route", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, route)
}

// ListRoutes handles GET /routes
// @Summary List routes
// @Tags routes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved routes"
// @Router /routes [get]
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	page, pageSize := pagination(c)

	routes, total, err := h.service.GetAll(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get routes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: routes, Total: total, Page: page, PageSize: pageSize})
}

// UpdateRoute handles PUT /routes/:id
// @Summary Update a route
// @Tags routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID (UUID)"
// @Param route body service.UpdateRouteRequest true "Fields to update"
// @Success 200 {object} models.Route "Successfully updated route"
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /routes/{id} [put]
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID: invalid UUID format"})
		return
	}

	var req service.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	route, err := h.service.Update(id, &req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, route)
}

// DeleteRoute handles DELETE /routes/:id
// @Summary Delete a route
// @Tags routes
// @Produce json
// @Param id path string true "Route ID (UUID)"
// @Success 204 "Successfully deleted route"
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /routes/{id} [delete]
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id, actor(c)); err != nil {
		if errors.Is(err, apperrors.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDistance handles PUT /route-distances
// @Summary Record the distance between two routes
// @Description Upsert the road distance for an ordered route pair used by the suggestion engine
// @Tags routes
// @Accept json
// @Produce json
// @Param distance body service.SetDistanceRequest true "Distance to record"
// @Success 200 {object} models.RouteDistance "Successfully recorded distance"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /route-distances [put]
func (h *RouteHandler) SetDistance(c *gin.Context) {
	var req service.SetDistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	dist, err := h.service.SetDistance(&req, actor(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrSameRoutePair) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record route distance", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dist)
}

// ListDistances handles GET /route-distances
// @Summary List recorded route distances
// @Tags routes
// @Produce json
// @Param route_ids query string false "Comma-separated route UUIDs to filter by"
// @Success 200 {object} map[string]interface{} "Successfully retrieved distances"
// @Router /route-distances [get]
func (h *RouteHandler) ListDistances(c *gin.Context) {
	var routeIDs []uuid.UUID
	if raw := c.Query("route_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID: invalid UUID format"})
				return
			}
			routeIDs = append(routeIDs, id)
		}
	}

	distances, err := h.service.GetDistances(routeIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get route distances", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": distances})
}
