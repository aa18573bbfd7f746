package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"fleet-scheduler-backend/internal/database/models"
	"fleet-scheduler-backend/internal/logger"
	"fleet-scheduler-backend/internal/repository"

	"github.com/google/uuid"
)

// AuditService captures before/after snapshots of mutations to tracked
// entities. Recording is best-effort: a failed write is logged and never
// blocks or rolls back the mutation it describes.
type AuditService struct {
	repo *repository.AuditRepository
	log  *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{
		repo: repo,
		log:  logger.New(),
	}
}

// Record appends one audit entry. before is nil for inserts, after is nil
// for deletes; actor is empty when the mutation was unauthenticated.
func (s *AuditService) Record(entityKind string, entityID uuid.UUID, op models.AuditOperation, before, after interface{}, actor string) {
	entry := &models.AuditLog{
		EntityKind: entityKind,
		EntityID:   entityID,
		Operation:  op,
		Actor:      actor,
	}

	var beforeMap, afterMap map[string]interface{}
	var err error

	if before != nil {
		if entry.Before, beforeMap, err = snapshot(before); err != nil {
			s.log.WithField("entity_kind", entityKind).Warnf("audit: failed to snapshot prior state: %v", err)
		}
	}
	if after != nil {
		if entry.After, afterMap, err = snapshot(after); err != nil {
			s.log.WithField("entity_kind", entityKind).Warnf("audit: failed to snapshot new state: %v", err)
		}
	}

	if op == models.AuditOperationUpdate {
		entry.ChangedFields = changedFields(beforeMap, afterMap)
	}

	if err := s.repo.Create(entry); err != nil {
		s.log.WithFields(map[string]interface{}{
			"entity_kind": entityKind,
			"entity_id":   entityID,
		}).Errorf("audit: failed to record %s: %v", op, err)
	}
}

// ListByEntity returns the audit trail for one entity
func (s *AuditService) ListByEntity(entityKind string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, int64, error) {
	entries, total, err := s.repo.GetByEntity(entityKind, entityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get audit trail: %w", err)
	}
	return entries, total, nil
}

// ListByKind returns the audit trail for an entity kind
func (s *AuditService) ListByKind(entityKind string, limit, offset int) ([]models.AuditLog, int64, error) {
	entries, total, err := s.repo.GetByKind(entityKind, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get audit trail: %w", err)
	}
	return entries, total, nil
}

func snapshot(v interface{}) (json.RawMessage, map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw, nil, err
	}
	return raw, m, nil
}

// changedFields computes the field-wise difference between two snapshots
func changedFields(before, after map[string]interface{}) []string {
	fields := make(map[string]struct{})
	for k, bv := range before {
		if av, ok := after[k]; !ok || !reflect.DeepEqual(bv, av) {
			fields[k] = struct{}{}
		}
	}
	for k := range after {
		if _, ok := before[k]; !ok {
			fields[k] = struct{}{}
		}
	}
	// updated_at moves on every update and carries no signal
	delete(fields, "updated_at")

	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
