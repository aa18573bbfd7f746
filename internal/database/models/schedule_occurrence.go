package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleOccurrence is a persisted per-day override of a route template.
// A row only exists when a day deviates from the template defaults; days
// without a row are materialized purely from the template. Unique per
// (template_id, date).
type ScheduleOccurrence struct {
	BaseModel
	TemplateID  uuid.UUID         `json:"template_id" gorm:"type:uuid;not null;uniqueIndex:idx_occurrence_template_date" validate:"required"`
	Date        time.Time         `json:"date" gorm:"type:date;not null;uniqueIndex:idx_occurrence_template_date" validate:"required"`
	DriverID    *uuid.UUID        `json:"driver_id" gorm:"type:uuid;index"`
	VehicleID   *uuid.UUID        `json:"vehicle_id" gorm:"type:uuid;index"`
	StandbyAt   *time.Time        `json:"standby_at"`
	DepartureAt *time.Time        `json:"departure_at"`
	Status      *OccurrenceStatus `json:"status" gorm:"type:varchar(20)"`
	Deleted     bool              `json:"deleted" gorm:"default:false"`

	Template RouteTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Driver   *Driver       `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Vehicle  *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

// TableName returns the table name for ScheduleOccurrence
func (ScheduleOccurrence) TableName() string {
	return "schedule_occurrences"
}
