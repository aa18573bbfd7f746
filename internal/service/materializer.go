package service

import (
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Occurrence is one materialized calendar-day realization of a template.
// Every field already has the override merge applied: an override value
// wins field-by-field, everything else falls back to the template default.
type Occurrence struct {
	TemplateID       uuid.UUID                `json:"template_id"`
	OverrideID       *uuid.UUID               `json:"override_id,omitempty"`
	RouteID          uuid.UUID                `json:"route_id"`
	RouteCode        string                   `json:"route_code"`
	Date             time.Time                `json:"date"`
	DriverID         *uuid.UUID               `json:"driver_id,omitempty"`
	VehicleID        *uuid.UUID               `json:"vehicle_id,omitempty"`
	StandbyAt        time.Time                `json:"standby_at"`
	DepartureAt      time.Time                `json:"departure_at"`
	EstimatedArrival time.Time                `json:"estimated_arrival"`
	Status           models.OccurrenceStatus  `json:"status"`
	Overridden       bool                     `json:"overridden"`
	OwnerID          uuid.UUID                `json:"owner_id"`
	Priority         int                      `json:"priority"`
	DurationMinutes  int                      `json:"duration_minutes"`
}

// CrossesMidnight reports whether standby and departure fall on different
// calendar days
func (o *Occurrence) CrossesMidnight() bool {
	return !sameDay(o.StandbyAt, o.DepartureAt)
}

// OccurrenceFilter narrows a materialization listing
type OccurrenceFilter struct {
	TemplateID *uuid.UUID
	RouteID    *uuid.UUID
	DriverID   *uuid.UUID
	VehicleID  *uuid.UUID
}

// Materializer expands route templates into concrete daily occurrences.
// It is the single materialization path: the calendar API, the conflict
// detector and the suggestion engine all read through it so the
// override-merge logic lives in exactly one place.
type Materializer struct {
	templates repositoryTemplateReader
	overrides repositoryOverrideReader
	tuning    *config.TuningStore
	cache     *gocache.Cache
}

type repositoryTemplateReader interface {
	GetActiveInWindow(from, to time.Time) ([]models.RouteTemplate, error)
}

type repositoryOverrideReader interface {
	GetForTemplatesInWindow(templateIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleOccurrence, error)
}

// NewMaterializer creates a materializer over the given readers
func NewMaterializer(templates repositoryTemplateReader, overrides repositoryOverrideReader, tuning *config.TuningStore) *Materializer {
	return &Materializer{
		templates: templates,
		overrides: overrides,
		tuning:    tuning,
		cache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// ListWindow materializes all occurrences with dates in [from, to],
// unfiltered. Results are memoized per window until the next mutation.
func (m *Materializer) ListWindow(from, to time.Time) ([]Occurrence, error) {
	from, to = dateOnly(from), dateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("invalid window: %s after %s", from.Format(DateFormat), to.Format(DateFormat))
	}

	key := from.Format(DateFormat) + "|" + to.Format(DateFormat)
	if v, found := m.cache.Get(key); found {
		return v.([]Occurrence), nil
	}

	templates, err := m.templates.GetActiveInWindow(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	templateIDs := make([]uuid.UUID, len(templates))
	for i, t := range templates {
		templateIDs[i] = t.ID
	}

	overrideRows, err := m.overrides.GetForTemplatesInWindow(templateIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	overrides := make(map[string]*models.ScheduleOccurrence, len(overrideRows))
	for i := range overrideRows {
		row := &overrideRows[i]
		overrides[overrideKey(row.TemplateID, row.Date)] = row
	}

	trafficFactor := m.tuning.Get().TrafficFactor

	var out []Occurrence
	for i := range templates {
		expanded, err := expandTemplate(&templates[i], overrides, from, to, trafficFactor)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}

	m.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

// List materializes occurrences in [from, to] matching the filter
func (m *Materializer) List(from, to time.Time, filter OccurrenceFilter) ([]Occurrence, error) {
	all, err := m.ListWindow(from, to)
	if err != nil {
		return nil, err
	}

	out := make([]Occurrence, 0, len(all))
	for _, o := range all {
		if filter.TemplateID != nil && o.TemplateID != *filter.TemplateID {
			continue
		}
		if filter.RouteID != nil && o.RouteID != *filter.RouteID {
			continue
		}
		if filter.DriverID != nil && (o.DriverID == nil || *o.DriverID != *filter.DriverID) {
			continue
		}
		if filter.VehicleID != nil && (o.VehicleID == nil || *o.VehicleID != *filter.VehicleID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// ForDate materializes all occurrences on a single date
func (m *Materializer) ForDate(date time.Time) ([]Occurrence, error) {
	return m.ListWindow(date, date)
}

// Invalidate drops all memoized windows. Called after every template or
// override mutation.
func (m *Materializer) Invalidate() {
	m.cache.Flush()
}

// expandTemplate produces one occurrence per recurring day of the template
// inside [from, to], merging any persisted override over the defaults.
// Days whose override carries the deletion flag are excluded entirely.
func expandTemplate(t *models.RouteTemplate, overrides map[string]*models.ScheduleOccurrence, from, to time.Time, trafficFactor float64) ([]Occurrence, error) {
	if !t.Status.IsActive() {
		return nil, nil
	}

	standbyHour, standbyMin, err := parseClock(t.DefaultStandbyTime)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.ID, err)
	}
	departureHour, departureMin, err := parseClock(t.DefaultDepartureTime)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.ID, err)
	}

	start := dateOnly(t.StartDate)
	end := dateOnly(t.EffectiveEndDate())
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}

	var out []Occurrence
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !t.Weekdays.Contains(day.Weekday()) {
			continue
		}

		override := overrides[overrideKey(t.ID, day)]
		if override != nil && override.Deleted {
			continue
		}

		o := Occurrence{
			TemplateID:      t.ID,
			RouteID:         t.RouteID,
			RouteCode:       t.Route.Code,
			Date:            day,
			DriverID:        t.DefaultDriverID,
			VehicleID:       t.DefaultVehicleID,
			StandbyAt:       atClock(day, standbyHour, standbyMin),
			DepartureAt:     atClock(day, departureHour, departureMin),
			Status:          models.OccurrenceStatusScheduled,
			OwnerID:         t.OwnerID,
			Priority:        t.Priority,
			DurationMinutes: t.Route.EstimatedDurationMinutes,
		}

		// A departure clock earlier than standby means the run leaves
		// after midnight of the next day.
		if o.DepartureAt.Before(o.StandbyAt) {
			o.DepartureAt = o.DepartureAt.AddDate(0, 0, 1)
		}

		if override != nil {
			o.Overridden = true
			id := override.ID
			o.OverrideID = &id
			if override.DriverID != nil {
				o.DriverID = override.DriverID
			}
			if override.VehicleID != nil {
				o.VehicleID = override.VehicleID
			}
			if override.StandbyAt != nil {
				o.StandbyAt = *override.StandbyAt
			}
			if override.DepartureAt != nil {
				o.DepartureAt = *override.DepartureAt
			}
			if override.Status != nil {
				o.Status = *override.Status
			}
		}

		travel := time.Duration(float64(o.DurationMinutes)*trafficFactor) * time.Minute
		o.EstimatedArrival = o.DepartureAt.Add(travel)

		out = append(out, o)
	}
	return out, nil
}

func overrideKey(templateID uuid.UUID, date time.Time) string {
	return templateID.String() + "|" + dateOnly(date).Format(DateFormat)
}
