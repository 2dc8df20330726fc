package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// UpdateCase applies a partial update to a case owned by the caller.
func (s *Service) UpdateCase(ctx context.Context, caseID uuid.UUID, in UpdateCaseInput) (*domain.Case, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if caseID == uuid.Nil {
		return nil, domain.NewValidationError("caseId", "must not be empty")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateCase(ctx, userID, caseID, in.patch())
	if err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}
	return updated, nil
}
