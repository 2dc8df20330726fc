package cases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// DocumentView is the content of a document as served to the caller.
type DocumentView struct {
	Document *domain.Document
	Content  string
	Masked   bool
}

// ViewDocument returns a document's content. Masked content is served by
// default; the raw original is released only when raw is set, and never
// before a VIEW_RAW audit entry has been recorded against the case.
func (s *Service) ViewDocument(ctx context.Context, caseID, documentID uuid.UUID, raw bool) (*DocumentView, error) {
	_, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if caseID == uuid.Nil || documentID == uuid.Nil {
		return nil, domain.NewValidationError("id", "must not be empty")
	}

	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	doc := c.DocumentByID(documentID)
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	if !raw {
		return &DocumentView{Document: doc, Content: doc.MaskedContent, Masked: true}, nil
	}

	if _, err := s.auditor.Record(ctx, domain.AuditActionViewRaw, caseID); err != nil {
		return nil, fmt.Errorf("audit raw access: %w", err)
	}
	s.log.InfoContext(ctx, "raw document content accessed",
		"case_id", caseID, "document_id", documentID)

	return &DocumentView{Document: doc, Content: doc.RawContent, Masked: false}, nil
}
