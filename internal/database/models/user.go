package models

// User is a planner identity referenced by templates, responsibilities,
// offers and alerts. Authentication happens upstream; the core only stores
// the identity needed for addressing notifications.
type User struct {
	BaseModel
	DisplayName string `json:"display_name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	Email       string `json:"email" gorm:"size:255;uniqueIndex;not null" validate:"required,email"`
	Active      bool   `json:"active" gorm:"default:true"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
