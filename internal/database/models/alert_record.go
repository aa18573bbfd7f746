package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertRecord is a durable per-user notification produced by the detector,
// the suggestion engine or the collaboration flows.
type AlertRecord struct {
	BaseModel
	UserID       uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index" validate:"required"`
	Type         AlertType     `json:"type" gorm:"type:varchar(40);not null" validate:"required"`
	Severity     AlertSeverity `json:"severity" gorm:"type:varchar(20);not null;default:'info'"`
	Title        string        `json:"title" gorm:"size:200;not null"`
	Message      string        `json:"message" gorm:"type:text"`
	Read         bool          `json:"read" gorm:"default:false"`
	Date         *time.Time    `json:"date" gorm:"type:date;index"`
	TemplateID   *uuid.UUID    `json:"template_id" gorm:"type:uuid;index"`
	OccurrenceID *uuid.UUID    `json:"occurrence_id" gorm:"type:uuid"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for AlertRecord
func (AlertRecord) TableName() string {
	return "alert_records"
}
