package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupportOfferRepository handles database operations for support offers
type SupportOfferRepository struct {
	db *gorm.DB
}

// NewSupportOfferRepository creates a new support offer repository
func NewSupportOfferRepository(db *gorm.DB) *SupportOfferRepository {
	return &SupportOfferRepository{db: db}
}

// Create creates a new support offer
func (r *SupportOfferRepository) Create(offer *models.SupportOffer) error {
	return r.db.Create(offer).Error
}

// GetByID retrieves a support offer by ID
func (r *SupportOfferRepository) GetByID(id uuid.UUID) (*models.SupportOffer, error) {
	var offer models.SupportOffer
	err := r.db.First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetByUser retrieves offers sent by or addressed to a user, newest first
func (r *SupportOfferRepository) GetByUser(userID uuid.UUID, limit, offset int) ([]models.SupportOffer, int64, error) {
	var offers []models.SupportOffer
	var total int64

	query := r.db.Model(&models.SupportOffer{}).Where("from_user_id = ? OR to_user_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&offers).Error
	return offers, total, err
}

// Update updates a support offer
func (r *SupportOfferRepository) Update(offer *models.SupportOffer) error {
	return r.db.Save(offer).Error
}

// ExpirePending transitions all pending offers past their deadline to
// expired. The status filter makes repeated sweeps mark each offer exactly
// once; returns the number of offers expired by this call.
func (r *SupportOfferRepository) ExpirePending(now time.Time) (int64, error) {
	res := r.db.Model(&models.SupportOffer{}).
		Where("status = ? AND expires_at <= ?", models.OfferStatusPending, now).
		Updates(map[string]interface{}{"status": models.OfferStatusExpired, "updated_at": now})
	return res.RowsAffected, res.Error
}
