package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AlertHandler handles HTTP requests for alerts
type AlertHandler struct {
	service *service.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// ListUserAlerts handles GET /users/:id/alerts
// @Summary List alerts for a user
// @Tags alerts
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param unread_only query bool false "Only unread alerts" default(false)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved alerts"
// @Router /users/{id}/alerts [get]
func (h *AlertHandler) ListUserAlerts(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID: invalid UUID format"})
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread_only", "false"))
	page, pageSize := pagination(c)

	alerts, total, err := h.service.ListByUser(userID, unreadOnly, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: alerts, Total: total, Page: page, PageSize: pageSize})
}

// MarkAlertRead handles POST /alerts/:id/read
// @Summary Mark an alert as read
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID (UUID)"
// @Success 204 "Alert marked as read"
// @Failure 404 {object} map[string]interface{} "Alert not found"
// @Router /alerts/{id}/read [post]
func (h *AlertHandler) MarkAlertRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID: invalid UUID format"})
		return
	}

	if err := h.service.MarkRead(id); err != nil {
		if errors.Is(err, apperrors.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark alert as read", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
