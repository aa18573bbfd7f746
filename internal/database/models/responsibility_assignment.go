package models

import "github.com/google/uuid"

// ResponsibilityAssignment grants a user a role on a route and governs who
// receives alerts for it. Unique per (route, user).
type ResponsibilityAssignment struct {
	BaseModel
	RouteID    uuid.UUID          `json:"route_id" gorm:"type:uuid;not null;uniqueIndex:idx_responsibility_route_user" validate:"required"`
	UserID     uuid.UUID          `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_responsibility_route_user" validate:"required"`
	Role       ResponsibilityRole `json:"role" gorm:"type:varchar(20);not null" validate:"required"`
	AssignedBy *uuid.UUID         `json:"assigned_by" gorm:"type:uuid"`
	Active     bool               `json:"active" gorm:"default:true"`

	Route Route `json:"route,omitempty" gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ResponsibilityAssignment
func (ResponsibilityAssignment) TableName() string {
	return "responsibility_assignments"
}
