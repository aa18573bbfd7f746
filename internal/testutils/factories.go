package testutils

import (
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

// DriverFactory provides methods to create test Driver data
type DriverFactory struct{}

// NewDriverFactory creates a new DriverFactory
func NewDriverFactory() *DriverFactory {
	return &DriverFactory{}
}

// Create creates a test Driver with default values
func (f *DriverFactory) Create() *models.Driver {
	id := uuid.New()
	return &models.Driver{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:          "Test Driver",
		LicenseNumber: "LIC-" + id.String()[:8],
		Phone:         "+1-555-0100",
		Active:        true,
	}
}

// WithName sets a custom name for the driver
func (f *DriverFactory) WithName(name string) *models.Driver {
	driver := f.Create()
	driver.Name = name
	return driver
}

// VehicleFactory provides methods to create test Vehicle data
type VehicleFactory struct{}

// NewVehicleFactory creates a new VehicleFactory
func NewVehicleFactory() *VehicleFactory {
	return &VehicleFactory{}
}

// Create creates a test Vehicle with default values
func (f *VehicleFactory) Create() *models.Vehicle {
	id := uuid.New()
	return &models.Vehicle{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		PlateNumber: "PLT-" + id.String()[:8],
		Model:       "Test Van",
		Capacity:    16,
		Active:      true,
	}
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		DisplayName: "Test Planner",
		Email:       fmt.Sprintf("planner-%s@test.com", id.String()[:8]),
		Active:      true,
	}
}

// RouteFactory provides methods to create test Route data
type RouteFactory struct{}

// NewRouteFactory creates a new RouteFactory
func NewRouteFactory() *RouteFactory {
	return &RouteFactory{}
}

// Create creates a test Route with default values
func (f *RouteFactory) Create() *models.Route {
	id := uuid.New()
	return &models.Route{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Code:                     "RT-" + id.String()[:8],
		Name:                     "Test Route",
		Origin:                   "Depot North",
		Destination:              "Terminal South",
		EstimatedDurationMinutes: 60,
	}
}

// WithDuration sets a custom estimated duration
func (f *RouteFactory) WithDuration(minutes int) *models.Route {
	route := f.Create()
	route.EstimatedDurationMinutes = minutes
	return route
}

// TemplateFactory provides methods to create test RouteTemplate data
type TemplateFactory struct{}

// NewTemplateFactory creates a new TemplateFactory
func NewTemplateFactory() *TemplateFactory {
	return &TemplateFactory{}
}

// Create creates a confirmed test template recurring every day of the week
func (f *TemplateFactory) Create(routeID, ownerID uuid.UUID) *models.RouteTemplate {
	return &models.RouteTemplate{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		RouteID: routeID,
		Weekdays: models.WeekdaySet{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		StartDate:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DefaultStandbyTime:   "07:30",
		DefaultDepartureTime: "08:00",
		OwnerID:              ownerID,
		Status:               models.TemplateStatusConfirmed,
	}
}

// WithWeekdays sets a custom recurrence set
func (f *TemplateFactory) WithWeekdays(routeID, ownerID uuid.UUID, days ...time.Weekday) *models.RouteTemplate {
	template := f.Create(routeID, ownerID)
	template.Weekdays = models.WeekdaySet(days)
	return template
}
