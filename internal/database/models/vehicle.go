package models

// Vehicle represents a vehicle that can be assigned to route occurrences
type Vehicle struct {
	BaseModel
	PlateNumber string `json:"plate_number" gorm:"size:20;uniqueIndex;not null" validate:"required,min=1,max=20"`
	Model       string `json:"model" gorm:"size:100" validate:"max=100"`
	Capacity    int    `json:"capacity" gorm:"default:0" validate:"min=0"`
	Active      bool   `json:"active" gorm:"default:true"`
}

// TableName returns the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}
