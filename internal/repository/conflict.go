package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictRepository handles database operations for conflict records
type ConflictRepository struct {
	db *gorm.DB
}

// NewConflictRepository creates a new conflict repository
func NewConflictRepository(db *gorm.DB) *ConflictRepository {
	return &ConflictRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ConflictRepository) WithTx(tx *gorm.DB) *ConflictRepository {
	return &ConflictRepository{db: tx}
}

// ReplaceForDate deletes all conflict records for the date and inserts the
// new set. Callers run this inside a transaction so readers never observe
// the window between clear and rewrite.
func (r *ConflictRepository) ReplaceForDate(date time.Time, records []models.ConflictRecord) error {
	if err := r.db.Where("date = ?", date).Delete(&models.ConflictRecord{}).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return r.db.Create(&records).Error
}

// GetByDate retrieves all conflict records for a date
func (r *ConflictRepository) GetByDate(date time.Time) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord
	err := r.db.Where("date = ?", date).Order("resource_kind ASC, severity DESC").Find(&records).Error
	return records, err
}

// GetByID retrieves a conflict record by ID
func (r *ConflictRepository) GetByID(id uuid.UUID) (*models.ConflictRecord, error) {
	var record models.ConflictRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus sets the resolution status of a conflict record
func (r *ConflictRepository) UpdateStatus(id uuid.UUID, status models.ConflictStatus) error {
	res := r.db.Model(&models.ConflictRecord{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
