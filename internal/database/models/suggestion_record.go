package models

import (
	"time"

	"github.com/google/uuid"
)

// SuggestionRecord is a scored back-to-back consolidation proposal between
// two routes on one date. Unique per (from, to, date); re-running the
// engine upserts instead of duplicating.
type SuggestionRecord struct {
	BaseModel
	FromRouteID uuid.UUID        `json:"from_route_id" gorm:"type:uuid;not null;uniqueIndex:idx_suggestion_pair_date" validate:"required"`
	ToRouteID   uuid.UUID        `json:"to_route_id" gorm:"type:uuid;not null;uniqueIndex:idx_suggestion_pair_date" validate:"required"`
	Date        time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_suggestion_pair_date" validate:"required"`
	GapMinutes  int              `json:"gap_minutes" gorm:"not null"`
	DistanceKm  float64          `json:"distance_km" gorm:"not null"`
	Efficiency  float64          `json:"efficiency" gorm:"not null"`
	Status      SuggestionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`

	FromRoute Route `json:"from_route,omitempty" gorm:"foreignKey:FromRouteID;constraint:OnDelete:CASCADE"`
	ToRoute   Route `json:"to_route,omitempty" gorm:"foreignKey:ToRouteID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for SuggestionRecord
func (SuggestionRecord) TableName() string {
	return "suggestion_records"
}
