package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConflictHandler handles HTTP requests for conflict detection
type ConflictHandler struct {
	service *service.ConflictService
}

// NewConflictHandler creates a new conflict handler
func NewConflictHandler(service *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{service: service}
}

// DetectConflicts handles POST /conflicts/detect
// @Summary Run conflict detection for a date
// @Description Detect driver and vehicle double-bookings for all occurrences on the given date
// @Tags conflicts
// @Produce json
// @Param date query string true "Date to scan (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Detected conflicts"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Router /conflicts/detect [post]
func (h *ConflictHandler) DetectConflicts(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	conflicts, err := h.service.DetectConflicts(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect conflicts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conflicts, "count": len(conflicts)})
}

// ListConflicts handles GET /conflicts
// @Summary List conflicts for a date
// @Tags conflicts
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Conflicts for the date"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Router /conflicts [get]
func (h *ConflictHandler) ListConflicts(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	conflicts, err := h.service.GetByDate(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get conflicts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": conflicts, "count": len(conflicts)})
}

// ResolveConflict handles POST /conflicts/:id/resolve
// @Summary Mark a conflict as resolved
// @Tags conflicts
// @Produce json
// @Param id path string true "Conflict ID (UUID)"
// @Success 204 "Conflict resolved"
// @Failure 404 {object} map[string]interface{} "Conflict not found"
// @Router /conflicts/{id}/resolve [post]
func (h *ConflictHandler) ResolveConflict(c *gin.Context) {
	h.transition(c, h.service.Resolve, "resolve")
}

// IgnoreConflict handles POST /conflicts/:id/ignore
// @Summary Mark a conflict as ignored
// @Tags conflicts
// @Produce json
// @Param id path string true "Conflict ID (UUID)"
// @Success 204 "Conflict ignored"
// @Failure 404 {object} map[string]interface{} "Conflict not found"
// @Router /conflicts/{id}/ignore [post]
func (h *ConflictHandler) IgnoreConflict(c *gin.Context) {
	h.transition(c, h.service.Ignore, "ignore")
}

func (h *ConflictHandler) transition(c *gin.Context, fn func(uuid.UUID) error, verb string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conflict ID: invalid UUID format"})
		return
	}

	if err := fn(id); err != nil {
		if errors.Is(err, apperrors.ErrConflictNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + verb + " conflict", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
