package models

import (
	"time"

	"github.com/google/uuid"
)

// WeekdaySet is the set of weekdays a template recurs on (0 = Sunday)
type WeekdaySet []time.Weekday

// Contains reports whether the given weekday is part of the set
func (w WeekdaySet) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Valid reports whether the set is non-empty and all entries are real weekdays
func (w WeekdaySet) Valid() bool {
	if len(w) == 0 {
		return false
	}
	for _, d := range w {
		if d < time.Sunday || d > time.Saturday {
			return false
		}
	}
	return true
}

// RouteTemplate is a recurring route-schedule definition. Templates are never
// hard-deleted; cancellation is a status transition.
type RouteTemplate struct {
	BaseModel
	RouteID              uuid.UUID      `json:"route_id" gorm:"type:uuid;not null;index" validate:"required"`
	Weekdays             WeekdaySet     `json:"weekdays" gorm:"serializer:json;not null" validate:"required"`
	StartDate            time.Time      `json:"start_date" gorm:"type:date;not null" validate:"required"`
	EndDate              *time.Time     `json:"end_date" gorm:"type:date"`
	DefaultStandbyTime   string         `json:"default_standby_time" gorm:"size:5;not null" validate:"required"`
	DefaultDepartureTime string         `json:"default_departure_time" gorm:"size:5;not null" validate:"required"`
	DefaultDriverID      *uuid.UUID     `json:"default_driver_id" gorm:"type:uuid;index"`
	DefaultVehicleID     *uuid.UUID     `json:"default_vehicle_id" gorm:"type:uuid;index"`
	OwnerID              uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index" validate:"required"`
	Priority             int            `json:"priority" gorm:"default:0"`
	Status               TemplateStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`

	Route          Route    `json:"route,omitempty" gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	Owner          User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	DefaultDriver  *Driver  `json:"default_driver,omitempty" gorm:"foreignKey:DefaultDriverID"`
	DefaultVehicle *Vehicle `json:"default_vehicle,omitempty" gorm:"foreignKey:DefaultVehicleID"`
}

// TableName returns the table name for RouteTemplate
func (RouteTemplate) TableName() string {
	return "route_templates"
}

// EffectiveEndDate returns the end of the materialization horizon: the
// explicit end date when set, otherwise one year past the start date.
func (t *RouteTemplate) EffectiveEndDate() time.Time {
	if t.EndDate != nil {
		return *t.EndDate
	}
	return t.StartDate.AddDate(1, 0, 0)
}
