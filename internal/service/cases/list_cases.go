package cases

import (
	"context"
	"fmt"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// ListCases returns the caller's cases, most recently updated first.
func (s *Service) ListCases(ctx context.Context) ([]domain.Case, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	list, err := s.store.ListCases(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return list, nil
}
