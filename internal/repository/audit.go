package repository

import (
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository handles database operations for the append-only audit log
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit log entry. The table is never updated or deleted
// by application code.
func (r *AuditRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// GetByEntity retrieves the audit trail for one entity, newest first
func (r *AuditRepository) GetByEntity(entityKind string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog
	var total int64

	query := r.db.Model(&models.AuditLog{}).Where("entity_kind = ? AND entity_id = ?", entityKind, entityID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

// GetByKind retrieves the audit trail for an entity kind, newest first
func (r *AuditRepository) GetByKind(entityKind string, limit, offset int) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog
	var total int64

	query := r.db.Model(&models.AuditLog{}).Where("entity_kind = ?", entityKind)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}
