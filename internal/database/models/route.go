package models

import "github.com/google/uuid"

// Route represents a transport route between two locations
type Route struct {
	BaseModel
	Code                     string     `json:"code" gorm:"size:40;uniqueIndex;not null" validate:"required,min=1,max=40"`
	Name                     string     `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	Origin                   string     `json:"origin" gorm:"size:200;not null" validate:"required,max=200"`
	Destination              string     `json:"destination" gorm:"size:200;not null" validate:"required,max=200"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes" gorm:"not null" validate:"required,min=1"`
	OwnerID                  *uuid.UUID `json:"owner_id" gorm:"type:uuid;index"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// TableName returns the table name for Route
func (Route) TableName() string {
	return "routes"
}

// RouteDistance stores the road distance between two routes, keyed by the
// ordered pair. Feeds the consolidation suggestion engine.
type RouteDistance struct {
	BaseModel
	FromRouteID uuid.UUID `json:"from_route_id" gorm:"type:uuid;not null;uniqueIndex:idx_route_distance_pair" validate:"required"`
	ToRouteID   uuid.UUID `json:"to_route_id" gorm:"type:uuid;not null;uniqueIndex:idx_route_distance_pair" validate:"required"`
	DistanceKm  float64   `json:"distance_km" gorm:"not null" validate:"min=0"`

	FromRoute Route `json:"from_route,omitempty" gorm:"foreignKey:FromRouteID;constraint:OnDelete:CASCADE"`
	ToRoute   Route `json:"to_route,omitempty" gorm:"foreignKey:ToRouteID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for RouteDistance
func (RouteDistance) TableName() string {
	return "route_distances"
}
