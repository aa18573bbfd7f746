package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleOccurrenceRepository handles database operations for persisted
// occurrence override rows
type ScheduleOccurrenceRepository struct {
	db *gorm.DB
}

// NewScheduleOccurrenceRepository creates a new schedule occurrence repository
func NewScheduleOccurrenceRepository(db *gorm.DB) *ScheduleOccurrenceRepository {
	return &ScheduleOccurrenceRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ScheduleOccurrenceRepository) WithTx(tx *gorm.DB) *ScheduleOccurrenceRepository {
	return &ScheduleOccurrenceRepository{db: tx}
}

// Upsert inserts or updates the override row for (template, date)
func (r *ScheduleOccurrenceRepository) Upsert(occurrence *models.ScheduleOccurrence) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "template_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"driver_id", "vehicle_id", "standby_at", "departure_at", "status", "deleted", "updated_at",
		}),
	}).Create(occurrence).Error
}

// GetByTemplateAndDate retrieves the override row for (template, date)
func (r *ScheduleOccurrenceRepository) GetByTemplateAndDate(templateID uuid.UUID, date time.Time) (*models.ScheduleOccurrence, error) {
	var occurrence models.ScheduleOccurrence
	err := r.db.First(&occurrence, "template_id = ? AND date = ?", templateID, date).Error
	if err != nil {
		return nil, err
	}
	return &occurrence, nil
}

// GetByID retrieves an override row by ID
func (r *ScheduleOccurrenceRepository) GetByID(id uuid.UUID) (*models.ScheduleOccurrence, error) {
	var occurrence models.ScheduleOccurrence
	err := r.db.First(&occurrence, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &occurrence, nil
}

// GetForTemplatesInWindow retrieves all override rows for the given
// templates with dates in [from, to]
func (r *ScheduleOccurrenceRepository) GetForTemplatesInWindow(templateIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleOccurrence, error) {
	if len(templateIDs) == 0 {
		return nil, nil
	}
	var occurrences []models.ScheduleOccurrence
	err := r.db.Where("template_id IN ?", templateIDs).
		Where("date >= ? AND date <= ?", from, to).
		Find(&occurrences).Error
	return occurrences, err
}

// UpdateCAS saves override fields only if the row has not been modified
// since expectedUpdatedAt
func (r *ScheduleOccurrenceRepository) UpdateCAS(occurrence *models.ScheduleOccurrence, expectedUpdatedAt time.Time) error {
	res := r.db.Model(&models.ScheduleOccurrence{}).
		Where("id = ? AND updated_at = ?", occurrence.ID, expectedUpdatedAt).
		Updates(map[string]interface{}{
			"driver_id":    occurrence.DriverID,
			"vehicle_id":   occurrence.VehicleID,
			"standby_at":   occurrence.StandbyAt,
			"departure_at": occurrence.DepartureAt,
			"status":       occurrence.Status,
			"deleted":      occurrence.Deleted,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkDeleted flags the (template, date) day as removed from the schedule,
// creating the override row if none exists
func (r *ScheduleOccurrenceRepository) MarkDeleted(templateID uuid.UUID, date time.Time) error {
	occurrence := &models.ScheduleOccurrence{
		TemplateID: templateID,
		Date:       date,
		Deleted:    true,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "template_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"deleted", "updated_at"}),
	}).Create(occurrence).Error
}

// MarkDeletedFrom flags all non-deleted override rows of a template on or
// after the given date as deleted. Used by the cancel cascade; past rows
// stay untouched as history.
func (r *ScheduleOccurrenceRepository) MarkDeletedFrom(templateID uuid.UUID, from time.Time) error {
	return r.db.Model(&models.ScheduleOccurrence{}).
		Where("template_id = ? AND date >= ? AND deleted = ?", templateID, from, false).
		Updates(map[string]interface{}{"deleted": true, "updated_at": time.Now()}).Error
}
