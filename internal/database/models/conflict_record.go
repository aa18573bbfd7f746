package models

import (
	"time"

	"github.com/google/uuid"
)

// ConflictRecord is a detected double-booking of one resource on one date.
// Records for a date are fully replaced on every detection run, so the
// table never accumulates stale flags.
type ConflictRecord struct {
	BaseModel
	Date         time.Time        `json:"date" gorm:"type:date;not null;index" validate:"required"`
	ResourceKind ResourceKind     `json:"resource_kind" gorm:"type:varchar(20);not null" validate:"required"`
	ResourceID   uuid.UUID        `json:"resource_id" gorm:"type:uuid;not null;index" validate:"required"`
	// TemplateIDs identifies the conflicting occurrences by their template;
	// (template_id, date) is the stable identity of a lazily materialized day.
	TemplateIDs []uuid.UUID      `json:"template_ids" gorm:"serializer:json;not null"`
	Severity    ConflictSeverity `json:"severity" gorm:"type:varchar(20);not null"`
	Status      ConflictStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
}

// TableName returns the table name for ConflictRecord
func (ConflictRecord) TableName() string {
	return "conflict_records"
}
