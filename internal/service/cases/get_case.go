package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// GetCase returns a single case owned by the caller.
func (s *Service) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if caseID == uuid.Nil {
		return nil, domain.NewValidationError("caseId", "must not be empty")
	}

	c, err := s.store.GetCase(ctx, userID, caseID)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}
