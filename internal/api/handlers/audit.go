package handlers

import (
	"net/http"

	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler handles HTTP requests for the audit trail
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListAuditLogs handles GET /audit
// @Summary List audit log entries
// @Description List change history filtered by entity kind and optionally a specific entity
// @Tags audit
// @Produce json
// @Param entity_kind query string true "Entity kind (e.g. route_template)"
// @Param entity_id query string false "Entity UUID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved audit entries"
// @Failure 400 {object} map[string]interface{} "Missing or invalid filter"
// @Router /audit [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	entityKind := c.Query("entity_kind")
	if entityKind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_kind is required"})
		return
	}

	page, pageSize := pagination(c)

	if raw := c.Query("entity_id"); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity_id: invalid UUID format"})
			return
		}
		logs, total, err := h.service.ListByEntity(entityKind, entityID, pageSize, (page-1)*pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit entries", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, listResponse{Data: logs, Total: total, Page: page, PageSize: pageSize})
		return
	}

	logs, total, err := h.service.ListByKind(entityKind, pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit entries", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listResponse{Data: logs, Total: total, Page: page, PageSize: pageSize})
}
