package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/distance"
	apperrors "fleet-scheduler-backend/internal/errors"
	"fleet-scheduler-backend/internal/logger"
	"fleet-scheduler-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionService scores pairs of routes for back-to-back feasibility
// and maintains the per-date consolidation suggestions
type SuggestionService struct {
	db           *gorm.DB
	repo         *repository.SuggestionRepository
	alertRepo    *repository.AlertRepository
	materializer *Materializer
	alerts       *AlertService
	distances    distance.Provider
	tuning       *config.TuningStore
	log          *logger.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	db *gorm.DB,
	repo *repository.SuggestionRepository,
	alertRepo *repository.AlertRepository,
	materializer *Materializer,
	alerts *AlertService,
	distances distance.Provider,
	tuning *config.TuningStore,
) *SuggestionService {
	return &SuggestionService{
		db:           db,
		repo:         repo,
		alertRepo:    alertRepo,
		materializer: materializer,
		alerts:       alerts,
		distances:    distances,
		tuning:       tuning,
		log:          logger.New(),
	}
}

type candidate struct {
	record        models.SuggestionRecord
	fromRouteCode string
	toRouteCode   string
}

// SuggestConsolidations scores every ordered pair of distinct routes with
// occurrences on the date and upserts the qualifying suggestions, capped
// per source route. Re-runs refresh scores instead of duplicating rows.
func (s *SuggestionService) SuggestConsolidations(date time.Time) ([]models.SuggestionRecord, error) {
	date = dateOnly(date)
	tuning := s.tuning.Get()

	occurrences, err := s.materializer.ForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize occurrences for %s: %w", date.Format(DateFormat), err)
	}

	// One representative per route: the earliest-departing occurrence.
	byRoute := make(map[uuid.UUID]Occurrence)
	for _, o := range occurrences {
		if !o.Status.CountsForConflicts() {
			continue
		}
		if cur, ok := byRoute[o.RouteID]; !ok || o.DepartureAt.Before(cur.DepartureAt) {
			byRoute[o.RouteID] = o
		}
	}

	var candidates []candidate
	for fromID, from := range byRoute {
		for toID, to := range byRoute {
			if fromID == toID {
				continue
			}

			gap := int(to.DepartureAt.Sub(from.EstimatedArrival).Minutes())
			if gap < tuning.MinGapMinutes || gap > tuning.MaxGapMinutes {
				continue
			}

			km, err := s.distances.BetweenKm(fromID, toID)
			if errors.Is(err, distance.ErrUnknownPair) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to resolve route distance: %w", err)
			}
			if km > tuning.MaxDistanceKm {
				continue
			}

			efficiency := tuning.DistanceWeight*(1-km/tuning.MaxDistanceKm) +
				tuning.TimeWeight*(1-float64(gap)/float64(tuning.MaxGapMinutes))
			if efficiency < tuning.EfficiencyThreshold {
				continue
			}

			candidates = append(candidates, candidate{
				record: models.SuggestionRecord{
					FromRouteID: fromID,
					ToRouteID:   toID,
					Date:        date,
					GapMinutes:  gap,
					DistanceKm:  km,
					Efficiency:  efficiency,
					Status:      models.SuggestionStatusPending,
				},
				fromRouteCode: from.RouteCode,
				toRouteCode:   to.RouteCode,
			})
		}
	}

	records := capPerRoute(candidates, tuning.MaxSuggestionsPerRoute)

	alerts, err := s.buildAlerts(date, records)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for i := range records {
			if err := repo.Upsert(&records[i]); err != nil {
				return fmt.Errorf("failed to upsert suggestion: %w", err)
			}
		}
		alertRepo := s.alertRepo.WithTx(tx)
		if err := alertRepo.DeleteByDateAndTypes(date, []models.AlertType{models.AlertTypeConsolidationSuggested}); err != nil {
			return fmt.Errorf("failed to clear suggestion alerts: %w", err)
		}
		if err := alertRepo.CreateBatch(alerts); err != nil {
			return fmt.Errorf("failed to emit suggestion alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"date":        date.Format(DateFormat),
		"suggestions": len(records),
	}).Info("consolidation suggestion pass completed")

	return records, nil
}

// capPerRoute keeps the best suggestions per source route: highest
// efficiency first, ties broken by lower gap, then by destination route
// code lexical order
func capPerRoute(candidates []candidate, maxPerRoute int) []models.SuggestionRecord {
	perRoute := make(map[uuid.UUID][]candidate)
	for _, c := range candidates {
		perRoute[c.record.FromRouteID] = append(perRoute[c.record.FromRouteID], c)
	}

	fromIDs := make([]uuid.UUID, 0, len(perRoute))
	for id := range perRoute {
		fromIDs = append(fromIDs, id)
	}
	sort.Slice(fromIDs, func(i, j int) bool { return fromIDs[i].String() < fromIDs[j].String() })

	var out []models.SuggestionRecord
	for _, fromID := range fromIDs {
		group := perRoute[fromID]
		sort.Slice(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.record.Efficiency != b.record.Efficiency {
				return a.record.Efficiency > b.record.Efficiency
			}
			if a.record.GapMinutes != b.record.GapMinutes {
				return a.record.GapMinutes < b.record.GapMinutes
			}
			return a.toRouteCode < b.toRouteCode
		})
		if len(group) > maxPerRoute {
			group = group[:maxPerRoute]
		}
		for _, c := range group {
			out = append(out, c.record)
		}
	}
	return out
}

// buildAlerts assembles one suggestion alert per responsible user per
// emitted suggestion
func (s *SuggestionService) buildAlerts(date time.Time, records []models.SuggestionRecord) ([]models.AlertRecord, error) {
	var alerts []models.AlertRecord
	for _, record := range records {
		recipients, err := s.alerts.RecipientsForRoutes([]uuid.UUID{record.FromRouteID, record.ToRouteID})
		if err != nil {
			return nil, err
		}
		d := date
		for _, userID := range recipients {
			alerts = append(alerts, models.AlertRecord{
				UserID:   userID,
				Type:     models.AlertTypeConsolidationSuggested,
				Severity: models.AlertSeverityInfo,
				Title:    fmt.Sprintf("consolidation opportunity on %s", date.Format(DateFormat)),
				Message: fmt.Sprintf("back-to-back pairing scores %.2f with a %d minute gap over %.1f km",
					record.Efficiency, record.GapMinutes, record.DistanceKm),
				Date: &d,
			})
		}
	}
	return alerts, nil
}

// GetByDate returns the persisted suggestion records for a date
func (s *SuggestionService) GetByDate(date time.Time) ([]models.SuggestionRecord, error) {
	records, err := s.repo.GetByDate(dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return records, nil
}

// Accept marks a suggestion accepted
func (s *SuggestionService) Accept(id uuid.UUID) error {
	return s.setStatus(id, models.SuggestionStatusAccepted)
}

// Reject marks a suggestion rejected
func (s *SuggestionService) Reject(id uuid.UUID) error {
	return s.setStatus(id, models.SuggestionStatusRejected)
}

func (s *SuggestionService) setStatus(id uuid.UUID, status models.SuggestionStatus) error {
	if err := s.repo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSuggestionNotFound
		}
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}
	return nil
}
