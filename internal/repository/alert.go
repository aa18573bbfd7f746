package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertRepository handles database operations for alert records
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AlertRepository) WithTx(tx *gorm.DB) *AlertRepository {
	return &AlertRepository{db: tx}
}

// Create creates a single alert record
func (r *AlertRepository) Create(alert *models.AlertRecord) error {
	return r.db.Create(alert).Error
}

// CreateBatch creates a batch of alert records
func (r *AlertRepository) CreateBatch(alerts []models.AlertRecord) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.Create(&alerts).Error
}

// DeleteByDateAndTypes clears alerts of the given types on the given date.
// Detection passes call this before re-emitting so re-runs stay idempotent.
func (r *AlertRepository) DeleteByDateAndTypes(date time.Time, types []models.AlertType) error {
	return r.db.Where("date = ? AND type IN ?", date, types).Delete(&models.AlertRecord{}).Error
}

// GetByUser retrieves alerts addressed to a user, newest first
func (r *AlertRepository) GetByUser(userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.AlertRecord, int64, error) {
	var alerts []models.AlertRecord
	var total int64

	query := r.db.Model(&models.AlertRecord{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error
	return alerts, total, err
}

// GetByID retrieves an alert by ID
func (r *AlertRepository) GetByID(id uuid.UUID) (*models.AlertRecord, error) {
	var alert models.AlertRecord
	err := r.db.First(&alert, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// MarkRead flags an alert as read
func (r *AlertRepository) MarkRead(id uuid.UUID) error {
	res := r.db.Model(&models.AlertRecord{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
