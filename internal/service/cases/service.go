// Package cases provides the case management service: listing, creation
// under a per-user quota, partial updates, document upload intake, and
// privacy-gated content views. Every operation is scoped to the user found
// in the context; ownership violations surface as domain.ErrNotFound.
package cases

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/service/ingest"
)

type caseStore interface {
	ListCases(ctx context.Context, userID uuid.UUID) ([]domain.Case, error)
	GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	CreateCase(ctx context.Context, c *domain.Case) (*domain.Case, error)
	UpdateCase(ctx context.Context, userID, caseID uuid.UUID, patch domain.CasePatch) (*domain.Case, error)
	AddDocument(ctx context.Context, userID, caseID uuid.UUID, doc domain.Document) error
}

type auditor interface {
	Record(ctx context.Context, action domain.AuditAction, resourceID uuid.UUID) (domain.AuditRecord, error)
}

type pipeline interface {
	Schedule(ctx context.Context, job ingest.Job) bool
}

// Service provides case management operations.
type Service struct {
	store    caseStore
	auditor  auditor
	pipeline pipeline
	log      *slog.Logger

	// maxCases caps cases per user; -1 means unlimited.
	maxCases int
}

// NewService creates a new case service.
func NewService(log *slog.Logger, store caseStore, auditor auditor, pipeline pipeline, maxCases int) *Service {
	return &Service{
		store:    store,
		auditor:  auditor,
		pipeline: pipeline,
		log:      log.With("service", "cases"),
		maxCases: maxCases,
	}
}
