package repository

import (
	"time"

	"fleet-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

// TemplateReader is the read seam the materializer needs from the template
// repository
type TemplateReader interface {
	GetByID(id uuid.UUID) (*models.RouteTemplate, error)
	GetActiveInWindow(from, to time.Time) ([]models.RouteTemplate, error)
}

// OverrideReader is the read seam the materializer needs from the
// occurrence repository
type OverrideReader interface {
	GetForTemplatesInWindow(templateIDs []uuid.UUID, from, to time.Time) ([]models.ScheduleOccurrence, error)
}

// AuditWriter is the append-only seam mutation paths record through
type AuditWriter interface {
	Create(entry *models.AuditLog) error
}
