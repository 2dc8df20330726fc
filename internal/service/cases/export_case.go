package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/privacy"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// ExportCase returns a privacy-safe projection of a case for handover outside
// the system. Document raw content is stripped and activity results are run
// through the masker; the export is recorded in the audit log before any
// content is released.
func (s *Service) ExportCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	_, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if caseID == uuid.Nil {
		return nil, domain.NewValidationError("caseID", "must not be empty")
	}

	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.auditor.Record(ctx, domain.AuditActionExport, caseID); err != nil {
		return nil, fmt.Errorf("audit export: %w", err)
	}

	out := *c
	out.Documents = make([]domain.Document, len(c.Documents))
	for i, d := range c.Documents {
		d.RawContent = ""
		out.Documents[i] = d
	}
	out.Activity = make([]domain.ActivityEntry, len(c.Activity))
	for i, e := range c.Activity {
		e.Result = privacy.Mask(e.Result)
		out.Activity[i] = e
	}

	s.log.InfoContext(ctx, "case exported", "case_id", caseID)

	return &out, nil
}
