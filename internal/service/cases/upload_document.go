package cases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/privacy"
	"github.com/lexatlas/lexatlas-backend/internal/service/ingest"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// UploadDocument registers a new document on a case in the Uploading state,
// records an UPLOAD_FILE audit entry, and hands the payload to the ingestion
// pipeline. The returned document reflects the state at intake; ingestion
// advances it asynchronously.
func (s *Service) UploadDocument(ctx context.Context, in UploadDocumentInput) (*domain.Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	doc := domain.Document{
		ID:         uuid.New(),
		Name:       in.Name,
		MediaType:  in.MediaType,
		Size:       int64(len(in.Payload)),
		Status:     domain.DocumentStatusUploading,
		UploadedAt: time.Now().UTC(),
	}
	doc.StoragePath = privacy.SecureStoragePath(userID, in.CaseID, doc.ID)

	if err := s.store.AddDocument(ctx, userID, in.CaseID, doc); err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}

	if _, err := s.auditor.Record(ctx, domain.AuditActionUploadFile, doc.ID); err != nil {
		return nil, fmt.Errorf("audit document upload: %w", err)
	}

	s.pipeline.Schedule(ctx, ingest.Job{
		UserID:     userID,
		CaseID:     in.CaseID,
		DocumentID: doc.ID,
		Name:       in.Name,
		MediaType:  in.MediaType,
		Payload:    in.Payload,
	})

	s.log.InfoContext(ctx, "document uploaded",
		"case_id", in.CaseID, "document_id", doc.ID, "size", doc.Size)
	return &doc, nil
}
