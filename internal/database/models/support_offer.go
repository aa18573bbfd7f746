package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportOffer is a time-limited proposal to transfer or share route
// execution resources between users. Unanswered offers expire 24 hours
// after creation via the background sweep; they are never deleted.
type SupportOffer struct {
	BaseModel
	TemplateID        uuid.UUID   `json:"template_id" gorm:"type:uuid;not null;index" validate:"required"`
	FromUserID        uuid.UUID   `json:"from_user_id" gorm:"type:uuid;not null;index" validate:"required"`
	ToUserID          *uuid.UUID  `json:"to_user_id" gorm:"type:uuid;index"`
	ProposedDriverID  *uuid.UUID  `json:"proposed_driver_id" gorm:"type:uuid"`
	ProposedVehicleID *uuid.UUID  `json:"proposed_vehicle_id" gorm:"type:uuid"`
	Date              *time.Time  `json:"date" gorm:"type:date"`
	Message           string      `json:"message" gorm:"type:text"`
	Type              OfferType   `json:"type" gorm:"type:varchar(20);not null" validate:"required"`
	Status            OfferStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt         time.Time   `json:"expires_at" gorm:"not null;index"`
	RespondedAt       *time.Time  `json:"responded_at"`

	Template RouteTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	FromUser User          `json:"from_user,omitempty" gorm:"foreignKey:FromUserID"`
	ToUser   *User         `json:"to_user,omitempty" gorm:"foreignKey:ToUserID"`
}

// TableName returns the table name for SupportOffer
func (SupportOffer) TableName() string {
	return "support_offers"
}
