package config

import "sync"

// TuningStore holds the live suggestion tuning so operators can adjust the
// scoring thresholds at runtime without a redeploy.
type TuningStore struct {
	mu sync.RWMutex
	t  SuggestionTuning
}

// NewTuningStore creates a store seeded with the given tuning
func NewTuningStore(t SuggestionTuning) *TuningStore {
	return &TuningStore{t: t}
}

// Get returns the current tuning snapshot
func (s *TuningStore) Get() SuggestionTuning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t
}

// Set validates and swaps in a new tuning snapshot
func (s *TuningStore) Set(t SuggestionTuning) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.t = t
	s.mu.Unlock()
	return nil
}
