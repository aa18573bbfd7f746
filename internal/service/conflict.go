package service

import (
	"errors"
	"fmt"
	"time"

	"fleet-scheduler-backend/internal/database/models"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/logger"
	"fleet-scheduler-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// detectionAlertTypes are the synthetic alert types a detection pass owns.
// They are cleared and re-emitted wholesale on every run for the date.
var detectionAlertTypes = []models.AlertType{
	models.AlertTypeConflictDetected,
	models.AlertTypeTimeCrossDay,
}

// ConflictService detects resource double-bookings on materialized
// occurrences and maintains the per-date conflict records
type ConflictService struct {
	db           *gorm.DB
	repo         *repository.ConflictRepository
	alertRepo    *repository.AlertRepository
	materializer *Materializer
	alerts       *AlertService
	log          *logger.Logger
}

// NewConflictService creates a new conflict service
func NewConflictService(
	db *gorm.DB,
	repo *repository.ConflictRepository,
	alertRepo *repository.AlertRepository,
	materializer *Materializer,
	alerts *AlertService,
) *ConflictService {
	return &ConflictService{
		db:           db,
		repo:         repo,
		alertRepo:    alertRepo,
		materializer: materializer,
		alerts:       alerts,
		log:          logger.New(),
	}
}

// DetectConflicts runs one detection pass for the date. Prior conflict
// records and detection alerts for the date are replaced, not appended,
// inside a single transaction, so a re-run after a fix clears stale flags
// and a reader never observes the half-cleared state.
func (s *ConflictService) DetectConflicts(date time.Time) ([]models.ConflictRecord, error) {
	date = dateOnly(date)

	occurrences, err := s.materializer.ForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize occurrences for %s: %w", date.Format(DateFormat), err)
	}

	records := s.findOverlaps(date, occurrences)

	alerts, err := s.buildAlerts(date, records, occurrences)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).ReplaceForDate(date, records); err != nil {
			return fmt.Errorf("failed to replace conflict records: %w", err)
		}
		alertRepo := s.alertRepo.WithTx(tx)
		if err := alertRepo.DeleteByDateAndTypes(date, detectionAlertTypes); err != nil {
			return fmt.Errorf("failed to clear detection alerts: %w", err)
		}
		if err := alertRepo.CreateBatch(alerts); err != nil {
			return fmt.Errorf("failed to emit detection alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"date":      date.Format(DateFormat),
		"conflicts": len(records),
		"alerts":    len(alerts),
	}).Info("conflict detection pass completed")

	return records, nil
}

// findOverlaps groups the date's occurrences by driver and by vehicle and
// flags every group larger than one
func (s *ConflictService) findOverlaps(date time.Time, occurrences []Occurrence) []models.ConflictRecord {
	byDriver := make(map[uuid.UUID][]Occurrence)
	byVehicle := make(map[uuid.UUID][]Occurrence)

	for _, o := range occurrences {
		if !o.Status.CountsForConflicts() {
			continue
		}
		if o.DriverID != nil {
			byDriver[*o.DriverID] = append(byDriver[*o.DriverID], o)
		}
		if o.VehicleID != nil {
			byVehicle[*o.VehicleID] = append(byVehicle[*o.VehicleID], o)
		}
	}

	var records []models.ConflictRecord
	records = append(records, overlapRecords(date, models.ResourceKindDriver, byDriver)...)
	records = append(records, overlapRecords(date, models.ResourceKindVehicle, byVehicle)...)
	return records
}

func overlapRecords(date time.Time, kind models.ResourceKind, groups map[uuid.UUID][]Occurrence) []models.ConflictRecord {
	var records []models.ConflictRecord
	for resourceID, group := range groups {
		if len(group) < 2 {
			continue
		}
		severity := models.ConflictSeverityMedium
		if len(group) > 2 {
			severity = models.ConflictSeverityHigh
		}
		templateIDs := make([]uuid.UUID, len(group))
		for i, o := range group {
			templateIDs[i] = o.TemplateID
		}
		records = append(records, models.ConflictRecord{
			Date:         date,
			ResourceKind: kind,
			ResourceID:   resourceID,
			TemplateIDs:  templateIDs,
			Severity:     severity,
			Status:       models.ConflictStatusOpen,
		})
	}
	return records
}

// buildAlerts assembles the detection alerts for the date: one conflict
// alert per responsible user per conflict, and one cross-day alert per
// occurrence whose standby and departure fall on different days, addressed
// to the template owner. Emission is deduplicated per (event, user).
func (s *ConflictService) buildAlerts(date time.Time, records []models.ConflictRecord, occurrences []Occurrence) ([]models.AlertRecord, error) {
	routeByTemplate := make(map[uuid.UUID]uuid.UUID, len(occurrences))
	for _, o := range occurrences {
		routeByTemplate[o.TemplateID] = o.RouteID
	}

	var alerts []models.AlertRecord

	for _, record := range records {
		routeIDs := make([]uuid.UUID, 0, len(record.TemplateIDs))
		for _, tid := range record.TemplateIDs {
			if rid, ok := routeByTemplate[tid]; ok {
				routeIDs = append(routeIDs, rid)
			}
		}
		recipients, err := s.alerts.RecipientsForRoutes(routeIDs)
		if err != nil {
			return nil, err
		}

		severity := models.AlertSeverityWarning
		if record.Severity == models.ConflictSeverityHigh {
			severity = models.AlertSeverityHigh
		}
		d := date
		for _, userID := range recipients {
			alerts = append(alerts, models.AlertRecord{
				UserID:   userID,
				Type:     models.AlertTypeConflictDetected,
				Severity: severity,
				Title:    fmt.Sprintf("%s double-booked on %s", record.ResourceKind, date.Format(DateFormat)),
				Message:  fmt.Sprintf("%d runs share the same %s on %s", len(record.TemplateIDs), record.ResourceKind, date.Format(DateFormat)),
				Date:     &d,
			})
		}
	}

	crossDaySeen := make(map[string]struct{})
	for _, o := range occurrences {
		if !o.CrossesMidnight() {
			continue
		}
		key := o.OwnerID.String() + "|" + o.TemplateID.String()
		if _, ok := crossDaySeen[key]; ok {
			continue
		}
		crossDaySeen[key] = struct{}{}

		d := date
		tid := o.TemplateID
		alerts = append(alerts, models.AlertRecord{
			UserID:     o.OwnerID,
			Type:       models.AlertTypeTimeCrossDay,
			Severity:   models.AlertSeverityWarning,
			Title:      fmt.Sprintf("route %s departs after midnight", o.RouteCode),
			Message:    fmt.Sprintf("standby on %s but departure on %s", o.StandbyAt.Format(DateFormat), o.DepartureAt.Format(DateFormat)),
			Date:       &d,
			TemplateID: &tid,
		})
	}

	return alerts, nil
}

// GetByDate returns the persisted conflict records for a date
func (s *ConflictService) GetByDate(date time.Time) ([]models.ConflictRecord, error) {
	records, err := s.repo.GetByDate(dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	return records, nil
}

// Resolve marks a conflict record resolved
func (s *ConflictService) Resolve(id uuid.UUID) error {
	return s.setStatus(id, models.ConflictStatusResolved)
}

// Ignore marks a conflict record ignored
func (s *ConflictService) Ignore(id uuid.UUID) error {
	return s.setStatus(id, models.ConflictStatusIgnored)
}

func (s *ConflictService) setStatus(id uuid.UUID, status models.ConflictStatus) error {
	if err := s.repo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrConflictNotFound
		}
		return fmt.Errorf("failed to update conflict status: %w", err)
	}
	return nil
}
