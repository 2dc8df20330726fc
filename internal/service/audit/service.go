// Package audit provides the user-scoped audit trail service. Every
// sensitive action (case creation, file upload, raw-content view) passes
// through Record before the action is considered complete; skipping the
// audit call for a sensitive action is a correctness bug.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

const defaultQueryLimit = 100

type auditStore interface {
	Append(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	QueryByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Service wraps the audit store with user scoping and record assembly.
type Service struct {
	store auditStore
	log   *slog.Logger
}

// NewService creates a new audit service.
func NewService(log *slog.Logger, store auditStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "audit"),
	}
}

// Record appends one audit record for the acting user. The origin address is
// taken from the context when the transport layer has put one there.
func (s *Service) Record(ctx context.Context, action domain.AuditAction, resourceID uuid.UUID) (domain.AuditRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.AuditRecord{}, domain.ErrUnauthorized
	}
	if !action.IsValid() {
		return domain.AuditRecord{}, domain.NewValidationError("action", "unknown audit action")
	}

	record, err := s.store.Append(ctx, domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		ResourceID: resourceID,
		Origin:     ctxutil.OriginFromCtx(ctx),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("append audit record: %w", err)
	}

	s.log.InfoContext(ctx, "audit record appended",
		slog.String("user_id", userID.String()),
		slog.String("action", action.String()),
		slog.String("resource_id", resourceID.String()),
	)

	return record, nil
}

// Query returns the acting user's own audit records, newest-first. Records of
// other users are never visible through this call.
func (s *Service) Query(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.store.QueryByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	return records, nil
}
