package handlers

import (
	"net/http"

	"fleet-scheduler-backend/internal/config"

	"github.com/gin-gonic/gin"
)

// TuningHandler handles HTTP requests for suggestion tuning configuration
type TuningHandler struct {
	store *config.TuningStore
}

// NewTuningHandler creates a new tuning handler
func NewTuningHandler(store *config.TuningStore) *TuningHandler {
	return &TuningHandler{store: store}
}

// GetTuning handles GET /config/tuning
// @Summary Get the suggestion tuning configuration
// @Tags config
// @Produce json
// @Success 200 {object} config.SuggestionTuning "Current tuning values"
// @Router /config/tuning [get]
func (h *TuningHandler) GetTuning(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// UpdateTuning handles PUT /config/tuning
// @Summary Replace the suggestion tuning configuration
// @Description Update scoring weights and thresholds; takes effect on the next suggestion run
// @Tags config
// @Accept json
// @Produce json
// @Param tuning body config.SuggestionTuning true "New tuning values"
// @Success 200 {object} config.SuggestionTuning "Updated tuning values"
// @Failure 400 {object} map[string]interface{} "Invalid tuning values"
// @Router /config/tuning [put]
func (h *TuningHandler) UpdateTuning(c *gin.Context) {
	var tuning config.SuggestionTuning
	if err := c.ShouldBindJSON(&tuning); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.store.Set(tuning); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Get())
}
