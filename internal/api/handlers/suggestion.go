package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuggestionHandler handles HTTP requests for consolidation suggestions
type SuggestionHandler struct {
	service *service.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// GenerateSuggestions handles POST /suggestions/generate
// @Summary Generate consolidation suggestions for a date
// @Description Score route pairs on the given date and store those above the efficiency threshold
// @Tags suggestions
// @Produce json
// @Param date query string true "Date to analyze (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Generated suggestions"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Router /suggestions/generate [post]
func (h *SuggestionHandler) GenerateSuggestions(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	suggestions, err := h.service.SuggestConsolidations(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate suggestions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": suggestions, "count": len(suggestions)})
}

// ListSuggestions handles GET /suggestions
// @Summary List suggestions for a date
// @Tags suggestions
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Suggestions for the date"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Router /suggestions [get]
func (h *SuggestionHandler) ListSuggestions(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	suggestions, err := h.service.GetByDate(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get suggestions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": suggestions, "count": len(suggestions)})
}

// AcceptSuggestion handles POST /suggestions/:id/accept
// @Summary Accept a suggestion
// @Tags suggestions
// @Produce json
// @Param id path string true "Suggestion ID (UUID)"
// @Success 204 "Suggestion accepted"
// @Failure 404 {object} map[string]interface{} "Suggestion not found"
// @Router /suggestions/{id}/accept [post]
func (h *SuggestionHandler) AcceptSuggestion(c *gin.Context) {
	h.transition(c, h.service.Accept, "accept")
}

// RejectSuggestion handles POST /suggestions/:id/reject
// @Summary Reject a suggestion
// @Tags suggestions
// @Produce json
// @Param id path string true "Suggestion ID (UUID)"
// @Success 204 "Suggestion rejected"
// @Failure 404 {object} map[string]interface{} "Suggestion not found"
// @Router /suggestions/{id}/reject [post]
func (h *SuggestionHandler) RejectSuggestion(c *gin.Context) {
	h.transition(c, h.service.Reject, "reject")
}

func (h *SuggestionHandler) transition(c *gin.Context, fn func(uuid.UUID) error, verb string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion ID: invalid UUID format"})
		return
	}

	if err := fn(id); err != nil {
		if errors.Is(err, apperrors.ErrSuggestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + verb + " suggestion", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
