package cases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// CreateCase creates a new active case for the caller and records a
// CREATE_CASE audit entry. Creation is refused with domain.ErrQuotaExceeded
// once the caller has reached the configured per-user limit.
func (s *Service) CreateCase(ctx context.Context, in CreateCaseInput) (*domain.Case, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if s.maxCases >= 0 {
		count, err := s.store.CountByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("count cases: %w", err)
		}
		if count >= s.maxCases {
			return nil, fmt.Errorf("%w: limit of %d cases reached", domain.ErrQuotaExceeded, s.maxCases)
		}
	}

	now := time.Now().UTC()
	c := &domain.Case{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       in.Title,
		ClientName:  in.ClientName,
		Status:      domain.CaseStatusActive,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.CreateCase(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	if _, err := s.auditor.Record(ctx, domain.AuditActionCreateCase, created.ID); err != nil {
		return nil, fmt.Errorf("audit case creation: %w", err)
	}

	s.log.InfoContext(ctx, "case created", "case_id", created.ID)
	return created, nil
}
