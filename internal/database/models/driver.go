package models

// Driver represents a driver that can be assigned to route occurrences
type Driver struct {
	BaseModel
	Name          string `json:"name" gorm:"size:100;not null" validate:"required,min=1,max=100"`
	LicenseNumber string `json:"license_number" gorm:"size:40;uniqueIndex;not null" validate:"required,min=1,max=40"`
	Phone         string `json:"phone" gorm:"size:40" validate:"max=40"`
	Active        bool   `json:"active" gorm:"default:true"`
}

// TableName returns the table name for Driver
func (Driver) TableName() string {
	return "drivers"
}
