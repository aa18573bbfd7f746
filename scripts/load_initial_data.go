package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/database"
	"fleet-scheduler-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Seed structures matching the YAML fixture files

type UserData struct {
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
}

type DriverData struct {
	Name          string `yaml:"name"`
	LicenseNumber string `yaml:"license_number"`
	Phone         string `yaml:"phone,omitempty"`
}

type VehicleData struct {
	PlateNumber string `yaml:"plate_number"`
	Model       string `yaml:"model"`
	Capacity    int    `yaml:"capacity"`
}

type RouteData struct {
	Code                     string `yaml:"code"`
	Name                     string `yaml:"name"`
	Origin                   string `yaml:"origin"`
	Destination              string `yaml:"destination"`
	EstimatedDurationMinutes int    `yaml:"estimated_duration_minutes"`
	OwnerEmail               string `yaml:"owner_email,omitempty"`
}

type DistanceData struct {
	FromRouteCode string  `yaml:"from_route_code"`
	ToRouteCode   string  `yaml:"to_route_code"`
	DistanceKm    float64 `yaml:"distance_km"`
}

type TemplateData struct {
	RouteCode            string   `yaml:"route_code"`
	OwnerEmail           string   `yaml:"owner_email"`
	Weekdays             []string `yaml:"weekdays"`
	StartDate            string   `yaml:"start_date"`
	EndDate              string   `yaml:"end_date,omitempty"`
	DefaultStandbyTime   string   `yaml:"default_standby_time"`
	DefaultDepartureTime string   `yaml:"default_departure_time"`
	DefaultDriverLicense string   `yaml:"default_driver_license,omitempty"`
	DefaultVehiclePlate  string   `yaml:"default_vehicle_plate,omitempty"`
	Priority             int      `yaml:"priority"`
	Status               string   `yaml:"status"`
}

type SeedFile struct {
	Users     []UserData     `yaml:"users"`
	Drivers   []DriverData   `yaml:"drivers"`
	Vehicles  []VehicleData  `yaml:"vehicles"`
	Routes    []RouteData    `yaml:"routes"`
	Distances []DistanceData `yaml:"route_distances"`
	Templates []TemplateData `yaml:"templates"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func main() {
	log.Println("Loading seed data...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	dataDir := "scripts/data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	if err := loadSeedData(db, dataDir); err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	log.Println("Seed data loaded")
}

// connectWithRetry waits for Postgres readiness when the database container
// starts alongside the loader
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel:    logger.Silent,
		AutoMigrate: true,
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		lastErr = err
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, lastErr
}

func loadSeedData(db *gorm.DB, dataDir string) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "fleet.yaml"))
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	usersByEmail := make(map[string]*models.User)
	created := 0
	for _, u := range seed.Users {
		user := &models.User{DisplayName: u.DisplayName, Email: u.Email, Active: true}
		isNew, err := firstOrCreate(db, user, "email = ?", u.Email)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		usersByEmail[u.Email] = user
		if isNew {
			created++
		}
	}
	log.Printf("Users: %d created, %d total", created, len(seed.Users))

	driversByLicense := make(map[string]*models.Driver)
	created = 0
	for _, d := range seed.Drivers {
		driver := &models.Driver{Name: d.Name, LicenseNumber: d.LicenseNumber, Phone: d.Phone, Active: true}
		isNew, err := firstOrCreate(db, driver, "license_number = ?", d.LicenseNumber)
		if err != nil {
			return fmt.Errorf("failed to create driver %s: %w", d.LicenseNumber, err)
		}
		driversByLicense[d.LicenseNumber] = driver
		if isNew {
			created++
		}
	}
	log.Printf("Drivers: %d created, %d total", created, len(seed.Drivers))

	vehiclesByPlate := make(map[string]*models.Vehicle)
	created = 0
	for _, v := range seed.Vehicles {
		vehicle := &models.Vehicle{PlateNumber: v.PlateNumber, Model: v.Model, Capacity: v.Capacity, Active: true}
		isNew, err := firstOrCreate(db, vehicle, "plate_number = ?", v.PlateNumber)
		if err != nil {
			return fmt.Errorf("failed to create vehicle %s: %w", v.PlateNumber, err)
		}
		vehiclesByPlate[v.PlateNumber] = vehicle
		if isNew {
			created++
		}
	}
	log.Printf("Vehicles: %d created, %d total", created, len(seed.Vehicles))

	routesByCode := make(map[string]*models.Route)
	created = 0
	for _, r := range seed.Routes {
		route := &models.Route{
			Code:                     r.Code,
			Name:                     r.Name,
			Origin:                   r.Origin,
			Destination:              r.Destination,
			EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		}
		if r.OwnerEmail != "" {
			owner, ok := usersByEmail[r.OwnerEmail]
			if !ok {
				return fmt.Errorf("route %s references unknown owner %s", r.Code, r.OwnerEmail)
			}
			route.OwnerID = &owner.ID
		}
		isNew, err := firstOrCreate(db, route, "code = ?", r.Code)
		if err != nil {
			return fmt.Errorf("failed to create route %s: %w", r.Code, err)
		}
		routesByCode[r.Code] = route
		if isNew {
			created++
		}
	}
	log.Printf("Routes: %d created, %d total", created, len(seed.Routes))

	created = 0
	for _, d := range seed.Distances {
		from, ok := routesByCode[d.FromRouteCode]
		if !ok {
			return fmt.Errorf("distance references unknown route %s", d.FromRouteCode)
		}
		to, ok := routesByCode[d.ToRouteCode]
		if !ok {
			return fmt.Errorf("distance references unknown route %s", d.ToRouteCode)
		}
		distance := &models.RouteDistance{FromRouteID: from.ID, ToRouteID: to.ID, DistanceKm: d.DistanceKm}
		isNew, err := firstOrCreate(db, distance, "from_route_id = ? AND to_route_id = ?", from.ID, to.ID)
		if err != nil {
			return fmt.Errorf("failed to create distance %s -> %s: %w", d.FromRouteCode, d.ToRouteCode, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("Route distances: %d created, %d total", created, len(seed.Distances))

	created = 0
	for i, tpl := range seed.Templates {
		template, err := buildTemplate(tpl, routesByCode, usersByEmail, driversByLicense, vehiclesByPlate)
		if err != nil {
			return fmt.Errorf("template %d: %w", i, err)
		}
		isNew, err := firstOrCreate(db, template,
			"route_id = ? AND owner_id = ? AND default_departure_time = ?",
			template.RouteID, template.OwnerID, template.DefaultDepartureTime)
		if err != nil {
			return fmt.Errorf("failed to create template for route %s: %w", tpl.RouteCode, err)
		}
		if isNew {
			created++
		}
	}
	log.Printf("Templates: %d created, %d total", created, len(seed.Templates))

	return nil
}

func buildTemplate(
	tpl TemplateData,
	routes map[string]*models.Route,
	users map[string]*models.User,
	drivers map[string]*models.Driver,
	vehicles map[string]*models.Vehicle,
) (*models.RouteTemplate, error) {
	route, ok := routes[tpl.RouteCode]
	if !ok {
		return nil, fmt.Errorf("unknown route %s", tpl.RouteCode)
	}
	owner, ok := users[tpl.OwnerEmail]
	if !ok {
		return nil, fmt.Errorf("unknown owner %s", tpl.OwnerEmail)
	}

	weekdays := make(models.WeekdaySet, 0, len(tpl.Weekdays))
	for _, name := range tpl.Weekdays {
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		weekdays = append(weekdays, day)
	}

	startDate, err := time.Parse("2006-01-02", tpl.StartDate)
	if err != nil {
		return nil, fmt.Errorf("bad start_date: %w", err)
	}

	template := &models.RouteTemplate{
		RouteID:              route.ID,
		Weekdays:             weekdays,
		StartDate:            startDate,
		DefaultStandbyTime:   tpl.DefaultStandbyTime,
		DefaultDepartureTime: tpl.DefaultDepartureTime,
		OwnerID:              owner.ID,
		Priority:             tpl.Priority,
		Status:               models.TemplateStatus(tpl.Status),
	}
	if !template.Status.IsValid() {
		return nil, fmt.Errorf("bad status %q", tpl.Status)
	}
	if tpl.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", tpl.EndDate)
		if err != nil {
			return nil, fmt.Errorf("bad end_date: %w", err)
		}
		template.EndDate = &endDate
	}
	if tpl.DefaultDriverLicense != "" {
		driver, ok := drivers[tpl.DefaultDriverLicense]
		if !ok {
			return nil, fmt.Errorf("unknown driver %s", tpl.DefaultDriverLicense)
		}
		template.DefaultDriverID = &driver.ID
	}
	if tpl.DefaultVehiclePlate != "" {
		vehicle, ok := vehicles[tpl.DefaultVehiclePlate]
		if !ok {
			return nil, fmt.Errorf("unknown vehicle %s", tpl.DefaultVehiclePlate)
		}
		template.DefaultVehicleID = &vehicle.ID
	}

	return template, nil
}

// firstOrCreate loads the row matching the condition into dest or creates it;
// reports whether a new row was created
func firstOrCreate(db *gorm.DB, dest interface{}, query string, args ...interface{}) (bool, error) {
	res := db.Where(query, args...).FirstOrCreate(dest)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
