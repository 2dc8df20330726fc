// Package ingest drives the per-document processing state machine:
// Uploading -> Processing -> {Completed|Failed}. Each stage boundary models
// a backend latency (queue handoff, then OCR/extraction) behind an injected
// clock, so tests advance simulated time instead of sleeping.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lexatlas/lexatlas-backend/internal/config"
	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/privacy"
)

type caseStore interface {
	SetDocumentStatus(ctx context.Context, userID, caseID, docID uuid.UUID, status domain.DocumentStatus) error
	CompleteDocument(ctx context.Context, userID, caseID, docID uuid.UUID, raw, masked, summary string) error
}

// Job carries everything the pipeline needs to process one uploaded document.
type Job struct {
	UserID     uuid.UUID
	CaseID     uuid.UUID
	DocumentID uuid.UUID
	Name       string
	MediaType  string
	Payload    []byte
}

const completedSummary = "Document successfully parsed and PII masked."

// Pipeline schedules and runs document processing. Scheduling is idempotent
// per document ID: a duplicate Schedule call is a no-op, so re-entry can
// never double-append content or fire duplicate transitions.
type Pipeline struct {
	store     caseStore
	extractor Extractor
	clock     clockwork.Clock
	log       *slog.Logger

	uploadDelay     time.Duration
	processingDelay time.Duration

	mu        sync.Mutex
	scheduled map[uuid.UUID]struct{}
	wg        sync.WaitGroup
}

// NewPipeline creates a pipeline with the given stage delays.
func NewPipeline(log *slog.Logger, store caseStore, extractor Extractor, clock clockwork.Clock, cfg config.IngestConfig) *Pipeline {
	return &Pipeline{
		store:           store,
		extractor:       extractor,
		clock:           clock,
		log:             log.With("service", "ingest"),
		uploadDelay:     cfg.UploadDelay,
		processingDelay: cfg.ProcessingDelay,
		scheduled:       make(map[uuid.UUID]struct{}),
	}
}

// Schedule queues asynchronous processing for an uploaded document and
// returns immediately. Returns false when the document was already
// scheduled. The job keeps running after the caller's request context is
// done; only its values (user identity, origin) are retained.
func (p *Pipeline) Schedule(ctx context.Context, job Job) bool {
	p.mu.Lock()
	if _, dup := p.scheduled[job.DocumentID]; dup {
		p.mu.Unlock()
		p.log.WarnContext(ctx, "duplicate schedule ignored",
			slog.String("document_id", job.DocumentID.String()),
		)
		return false
	}
	p.scheduled[job.DocumentID] = struct{}{}
	p.mu.Unlock()

	jobCtx := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.process(jobCtx, job)
	}()
	return true
}

// Wait blocks until every scheduled job has reached a terminal state.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

func (p *Pipeline) process(ctx context.Context, job Job) {
	// Stage 1: queue handoff, then extraction starts.
	p.clock.Sleep(p.uploadDelay)

	if err := p.store.SetDocumentStatus(ctx, job.UserID, job.CaseID, job.DocumentID, domain.DocumentStatusProcessing); err != nil {
		p.log.ErrorContext(ctx, "transition to Processing failed",
			slog.String("document_id", job.DocumentID.String()),
			slog.Any("error", err),
		)
		return
	}

	// Stage 2: extraction latency, then the terminal transition.
	p.clock.Sleep(p.processingDelay)

	raw, err := p.extractor.Extract(ctx, job)
	if err != nil {
		p.fail(ctx, job, err)
		return
	}

	masked := privacy.Mask(raw)
	if err := p.store.CompleteDocument(ctx, job.UserID, job.CaseID, job.DocumentID, raw, masked, completedSummary); err != nil {
		p.log.ErrorContext(ctx, "transition to Completed failed",
			slog.String("document_id", job.DocumentID.String()),
			slog.Any("error", err),
		)
		return
	}

	p.log.InfoContext(ctx, "document processed",
		slog.String("document_id", job.DocumentID.String()),
		slog.String("name", job.Name),
	)
}

// fail moves the document to the terminal Failed state. Content fields are
// never set on this path, and sibling documents are unaffected.
func (p *Pipeline) fail(ctx context.Context, job Job, cause error) {
	extractErr := fmt.Errorf("%w: %v", domain.ErrIngestionFailed, cause)
	p.log.ErrorContext(ctx, "document extraction failed",
		slog.String("document_id", job.DocumentID.String()),
		slog.Any("error", extractErr),
	)

	if err := p.store.SetDocumentStatus(ctx, job.UserID, job.CaseID, job.DocumentID, domain.DocumentStatusFailed); err != nil {
		p.log.ErrorContext(ctx, "transition to Failed failed",
			slog.String("document_id", job.DocumentID.String()),
			slog.Any("error", err),
		)
	}
}
