package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OccurrenceHandler handles HTTP requests for the materialized calendar
type OccurrenceHandler struct {
	service *service.OccurrenceService
}

// NewOccurrenceHandler creates a new occurrence handler
func NewOccurrenceHandler(service *service.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{service: service}
}

// ListOccurrences handles GET /occurrences
// @Summary List materialized occurrences
// @Description Expand templates into concrete daily occurrences for a date range
// @Tags occurrences
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param template_id query string false "Filter by template UUID"
// @Param route_id query string false "Filter by route UUID"
// @Param driver_id query string false "Filter by driver UUID"
// @Param vehicle_id query string false "Filter by vehicle UUID"
// @Success 200 {object} map[string]interface{} "Successfully retrieved occurrences"
// @Failure 400 {object} map[string]interface{} "Invalid date range or filter"
// @Router /occurrences [get]
func (h *OccurrenceHandler) ListOccurrences(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	var filter service.OccurrenceFilter
	if filter.TemplateID, err = parseUUIDQuery(c, "template_id"); err != nil {
		return
	}
	if filter.RouteID, err = parseUUIDQuery(c, "route_id"); err != nil {
		return
	}
	if filter.DriverID, err = parseUUIDQuery(c, "driver_id"); err != nil {
		return
	}
	if filter.VehicleID, err = parseUUIDQuery(c, "vehicle_id"); err != nil {
		return
	}

	occurrences, err := h.service.ListOccurrences(from, to, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list occurrences", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": occurrences, "count": len(occurrences)})
}

// UpsertOverride handles PUT /templates/:id/occurrences/:date
// @Summary Override a single occurrence
// @Description Create or update the per-day deviation from the template defaults
// @Tags occurrences
// @Accept json
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Param date path string true "Occurrence date (YYYY-MM-DD)"
// @Param override body service.OverrideRequest true "Override fields"
// @Success 200 {object} models.ScheduleOccurrence "Successfully saved override"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Template not found"
// @Failure 409 {object} map[string]interface{} "Override was modified concurrently"
// @Router /templates/{id}/occurrences/{date} [put]
func (h *OccurrenceHandler) UpsertOverride(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID: invalid UUID format"})
		return
	}
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var req service.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	occurrence, err := h.service.UpsertOverride(templateID, date, &req, actor(c))
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStaleUpdate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTemplateCancelled),
			errors.Is(err, apperrors.ErrInvalidStatus),
			apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save override", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, occurrence)
}

// DeleteOccurrence handles DELETE /templates/:id/occurrences/:date
// @Summary Remove a single occurrence
// @Description Mark one day of a recurring schedule as not running
// @Tags occurrences
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Param date path string true "Occurrence date (YYYY-MM-DD)"
// @Success 204 "Successfully removed occurrence"
// @Failure 404 {object} map[string]interface{} "Template not found"
// @Router /templates/{id}/occurrences/{date} [delete]
func (h *OccurrenceHandler) DeleteOccurrence(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID: invalid UUID format"})
		return
	}
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	if err := h.service.DeleteOccurrence(templateID, date, actor(c)); err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove occurrence", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
