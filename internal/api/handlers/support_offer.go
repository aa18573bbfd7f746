package handlers

import (
	"errors"
	"net/http"

	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupportOfferHandler handles HTTP requests for support offers
type SupportOfferHandler struct {
	service *service.SupportOfferService
}

// NewSupportOfferHandler creates a new support offer handler
func NewSupportOfferHandler(service *service.SupportOfferService) *SupportOfferHandler {
	return &SupportOfferHandler{service: service}
}

// CreateOffer handles POST /support-offers
// @Summary Open a support offer
// @Description Propose to transfer or share route resources; the offer expires after 24 hours if unanswered
// @Tags support-offers
// @Accept json
// @Produce json
// @Param offer body service.CreateOfferRequest true "Offer to create"
// @Success 201 {object} models.SupportOffer "Successfully created offer"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Referenced entity not found"
// @Router /support-offers [post]
func (h *SupportOfferHandler) CreateOffer(c *gin.Context) {
	var req service.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	offer, err := h.service.Create(&req, actor(c))
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTemplateCancelled),
			errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create support offer", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// GetOffer handles GET /support-offers/:id
// @Summary Get support offer by ID
// @Tags support-offers
// @Produce json
// @Param id path string true "Offer ID (UUID)"
// @Success 200 {object} models.SupportOffer "Successfully retrieved offer"
// @Failure 404 {object} map[string]interface{} "Offer not found"
// @Router /support-offers/{id} [get]
func (h *SupportOfferHandler) GetOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID: invalid UUID format"})
		return
	}

	offer, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSupportOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get support offer", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, offer)
}

// RespondToOffer handles POST /support-offers/:id/respond
// @Summary Accept or decline a pending offer
// @Description Accepting a transfer offer with a date applies the proposed resources as an override
// @Tags support-offers
// @Accept json
// @Produce json
// @Param id path string true "Offer ID (UUID)"
// @Param response body service.RespondRequest true "Decision"
// @Success 200 {object} models.SupportOffer "Successfully responded to offer"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Offer not addressed to this user"
// @Failure 404 {object} map[string]interface{} "Offer not found"
// @Failure 409 {object} map[string]interface{} "Offer is no longer pending"
// @Router /support-offers/{id}/respond [post]
func (h *SupportOfferHandler) RespondToOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID: invalid UUID format"})
		return
	}

	var req service.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	offer, err := h.service.Respond(id, &req, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSupportOfferNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOfferNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOfferNotAddressed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to respond to support offer", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, offer)
}

// ListUserOffers handles GET /users/:id/support-offers
// @Summary List support offers involving a user
// @Tags support-offers
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} map[string]interface{} "Successfully retrieved offers"
// @Router /users/{id}/support-offers [get]
func (h *SupportOfferHandler) ListUserOffers(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID: invalid UUID format"})
		return
	}

	page, pageSize := pagination(c)
	offers, total, err := h.service.ListByUser(userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get support offers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse{Data: offers, Total: total, Page: page, PageSize: pageSize})
}
