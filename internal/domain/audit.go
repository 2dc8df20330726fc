package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction classifies a sensitive action.
type AuditAction string

const (
	AuditActionCreateCase AuditAction = "CREATE_CASE"
	AuditActionUploadFile AuditAction = "UPLOAD_FILE"
	AuditActionViewRaw    AuditAction = "VIEW_RAW"
	AuditActionExport     AuditAction = "EXPORT"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreateCase, AuditActionUploadFile, AuditActionViewRaw, AuditActionExport:
		return true
	}
	return false
}

// AuditRecord is one immutable entry in the append-only audit trail.
// Records are never mutated or deleted, and queries are always scoped to the
// acting user's own records.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Action     AuditAction
	ResourceID uuid.UUID
	Origin     string
	CreatedAt  time.Time
}
