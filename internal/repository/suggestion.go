package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SuggestionRepository handles database operations for suggestion records
type SuggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *SuggestionRepository) WithTx(tx *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: tx}
}

// Upsert inserts or refreshes the record for (from, to, date). The score
// fields are updated in place; an existing decision status is preserved.
func (r *SuggestionRepository) Upsert(record *models.SuggestionRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_route_id"}, {Name: "to_route_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"gap_minutes", "distance_km", "efficiency", "updated_at"}),
	}).Create(record).Error
}

// GetByDate retrieves all suggestion records for a date, highest score first
func (r *SuggestionRepository) GetByDate(date time.Time) ([]models.SuggestionRecord, error) {
	var records []models.SuggestionRecord
	err := r.db.Preload("FromRoute").Preload("ToRoute").
		Where("date = ?", date).
		Order("efficiency DESC").
		Find(&records).Error
	return records, err
}

// GetByID retrieves a suggestion record by ID
func (r *SuggestionRepository) GetByID(id uuid.UUID) (*models.SuggestionRecord, error) {
	var record models.SuggestionRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus sets the decision status of a suggestion record
func (r *SuggestionRepository) UpdateStatus(id uuid.UUID, status models.SuggestionStatus) error {
	res := r.db.Model(&models.SuggestionRecord{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
