package scheduler

import (
	"sync"
	"time"

	"fleet-scheduler-backend/internal/logger"
	"fleet-scheduler-backend/internal/service"
)

// Scheduler runs the periodic maintenance sweep: expiring stale support
// offers and refreshing conflict and suggestion state for the upcoming days.
type Scheduler struct {
	offers      *service.SupportOfferService
	conflicts   *service.ConflictService
	suggestions *service.SuggestionService
	interval    time.Duration
	log         *logger.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a scheduler that sweeps at the given interval
func New(
	offers *service.SupportOfferService,
	conflicts *service.ConflictService,
	suggestions *service.SuggestionService,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		offers:      offers,
		conflicts:   conflicts,
		suggestions: suggestions,
		interval:    interval,
		log:         logger.New(),
		stop:        make(chan struct{}),
	}
}

// Start launches the sweep loop in the background. The first sweep runs
// immediately so a restart does not leave stale offers pending for a full
// interval.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.RunNow()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunNow()
			case <-s.stop:
				return
			}
		}
	}()

	s.log.WithField("interval", s.interval.String()).Info("Background sweep started")
}

// Stop signals the loop to exit and waits for an in-flight sweep to finish
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	s.log.Info("Background sweep stopped")
}

// RunNow executes one sweep. Each step is independent: a failure is logged
// and the remaining steps still run.
func (s *Scheduler) RunNow() {
	now := time.Now().UTC()

	if _, err := s.offers.ExpireStale(now); err != nil {
		s.log.WithError(err).Error("Sweep failed to expire support offers")
	}

	// Refresh today and tomorrow so planners see overnight edits reflected
	// before the morning review
	for _, date := range []time.Time{now, now.AddDate(0, 0, 1)} {
		if _, err := s.conflicts.DetectConflicts(date); err != nil {
			s.log.WithError(err).WithField("date", date.Format("2006-01-02")).Error("Sweep failed to detect conflicts")
			continue
		}
		if _, err := s.suggestions.SuggestConsolidations(date); err != nil {
			s.log.WithError(err).WithField("date", date.Format("2006-01-02")).Error("Sweep failed to refresh suggestions")
		}
	}
}
