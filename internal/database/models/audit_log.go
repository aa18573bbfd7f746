package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of one mutation to a tracked entity.
// Application logic never updates or deletes rows in this table.
type AuditLog struct {
	BaseModel
	EntityKind    string          `json:"entity_kind" gorm:"size:40;not null;index:idx_audit_entity" validate:"required"`
	EntityID      uuid.UUID       `json:"entity_id" gorm:"type:uuid;not null;index:idx_audit_entity" validate:"required"`
	Operation     AuditOperation  `json:"operation" gorm:"type:varchar(10);not null" validate:"required"`
	Before        json.RawMessage `json:"before,omitempty" gorm:"type:jsonb"`
	After         json.RawMessage `json:"after,omitempty" gorm:"type:jsonb"`
	ChangedFields []string        `json:"changed_fields,omitempty" gorm:"serializer:json"`
	Actor         string          `json:"actor,omitempty" gorm:"size:255"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
