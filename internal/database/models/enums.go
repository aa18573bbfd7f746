package models

// TemplateStatus defines the lifecycle states of a route template
type TemplateStatus string

const (
	TemplateStatusPending   TemplateStatus = "pending"
	TemplateStatusConfirmed TemplateStatus = "confirmed"
	TemplateStatusChanged   TemplateStatus = "changed"
	TemplateStatusCancelled TemplateStatus = "cancelled"
)

// IsValid checks if the TemplateStatus is valid
func (s TemplateStatus) IsValid() bool {
	switch s {
	case TemplateStatusPending, TemplateStatusConfirmed, TemplateStatusChanged, TemplateStatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether occurrences are materialized for this status
func (s TemplateStatus) IsActive() bool {
	return s == TemplateStatusConfirmed || s == TemplateStatusChanged
}

// OccurrenceStatus defines the states of a single schedule occurrence
type OccurrenceStatus string

const (
	OccurrenceStatusScheduled OccurrenceStatus = "scheduled"
	OccurrenceStatusConfirmed OccurrenceStatus = "confirmed"
	OccurrenceStatusCancelled OccurrenceStatus = "cancelled"
	OccurrenceStatusCompleted OccurrenceStatus = "completed"
)

// IsValid checks if the OccurrenceStatus is valid
func (s OccurrenceStatus) IsValid() bool {
	switch s {
	case OccurrenceStatusScheduled, OccurrenceStatusConfirmed, OccurrenceStatusCancelled, OccurrenceStatusCompleted:
		return true
	}
	return false
}

// CountsForConflicts reports whether an occurrence in this status can
// participate in a double-booking
func (s OccurrenceStatus) CountsForConflicts() bool {
	return s == OccurrenceStatusScheduled || s == OccurrenceStatusConfirmed
}

// ResourceKind identifies the resource a conflict was detected on
type ResourceKind string

const (
	ResourceKindDriver  ResourceKind = "driver"
	ResourceKindVehicle ResourceKind = "vehicle"
)

// IsValid checks if the ResourceKind is valid
func (k ResourceKind) IsValid() bool {
	return k == ResourceKindDriver || k == ResourceKindVehicle
}

// ConflictSeverity defines the severity tiers of a detected conflict
type ConflictSeverity string

const (
	ConflictSeverityMedium ConflictSeverity = "medium"
	ConflictSeverityHigh   ConflictSeverity = "high"
)

// ConflictStatus defines the resolution states of a conflict record
type ConflictStatus string

const (
	ConflictStatusOpen     ConflictStatus = "open"
	ConflictStatusResolved ConflictStatus = "resolved"
	ConflictStatusIgnored  ConflictStatus = "ignored"
)

// IsValid checks if the ConflictStatus is valid
func (s ConflictStatus) IsValid() bool {
	switch s {
	case ConflictStatusOpen, ConflictStatusResolved, ConflictStatusIgnored:
		return true
	}
	return false
}

// SuggestionStatus defines the decision states of a consolidation suggestion
type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusAccepted SuggestionStatus = "accepted"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// IsValid checks if the SuggestionStatus is valid
func (s SuggestionStatus) IsValid() bool {
	switch s {
	case SuggestionStatusPending, SuggestionStatusAccepted, SuggestionStatusRejected:
		return true
	}
	return false
}

// AlertType defines the kinds of notifications the system emits
type AlertType string

const (
	AlertTypeConflictDetected       AlertType = "conflict_detected"
	AlertTypeConsolidationSuggested AlertType = "consolidation_suggested"
	AlertTypeTimeCrossDay           AlertType = "time_cross_day"
	AlertTypeReminder               AlertType = "reminder"
	AlertTypeSupportOffer           AlertType = "support_offer"
)

// IsValid checks if the AlertType is valid
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeConflictDetected, AlertTypeConsolidationSuggested, AlertTypeTimeCrossDay, AlertTypeReminder, AlertTypeSupportOffer:
		return true
	}
	return false
}

// AlertSeverity defines the severity of an alert
type AlertSeverity string

const (
	AlertSeverityInfo    AlertSeverity = "info"
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityHigh    AlertSeverity = "high"
)

// ResponsibilityRole defines the roles a user can hold on a route
type ResponsibilityRole string

const (
	ResponsibilityRolePrimary  ResponsibilityRole = "primary"
	ResponsibilityRoleBackup   ResponsibilityRole = "backup"
	ResponsibilityRoleObserver ResponsibilityRole = "observer"
)

// IsValid checks if the ResponsibilityRole is valid
func (r ResponsibilityRole) IsValid() bool {
	switch r {
	case ResponsibilityRolePrimary, ResponsibilityRoleBackup, ResponsibilityRoleObserver:
		return true
	}
	return false
}

// OfferType defines the kinds of support offers
type OfferType string

const (
	OfferTypeTransfer OfferType = "transfer"
	OfferTypeShare    OfferType = "share"
)

// IsValid checks if the OfferType is valid
func (t OfferType) IsValid() bool {
	return t == OfferTypeTransfer || t == OfferTypeShare
}

// OfferStatus defines the lifecycle states of a support offer
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
	OfferStatusExpired  OfferStatus = "expired"
)

// IsValid checks if the OfferStatus is valid
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusDeclined, OfferStatusExpired:
		return true
	}
	return false
}

// AuditOperation defines the kinds of audited mutations
type AuditOperation string

const (
	AuditOperationInsert AuditOperation = "insert"
	AuditOperationUpdate AuditOperation = "update"
	AuditOperationDelete AuditOperation = "delete"
)

// IsValid checks if the AuditOperation is valid
func (o AuditOperation) IsValid() bool {
	switch o {
	case AuditOperationInsert, AuditOperationUpdate, AuditOperationDelete:
		return true
	}
	return false
}
