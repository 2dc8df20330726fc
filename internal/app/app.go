package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lexatlas/lexatlas-backend/internal/adapter/anthropic"
	"github.com/lexatlas/lexatlas-backend/internal/adapter/memory"
	"github.com/lexatlas/lexatlas-backend/internal/adapter/postgres"
	"github.com/lexatlas/lexatlas-backend/internal/config"
	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/service/audit"
	"github.com/lexatlas/lexatlas-backend/internal/service/cases"
	"github.com/lexatlas/lexatlas-backend/internal/service/ingest"
	"github.com/lexatlas/lexatlas-backend/internal/service/workflow"
	"github.com/lexatlas/lexatlas-backend/internal/transport/middleware"
	"github.com/lexatlas/lexatlas-backend/internal/transport/rest"
)

// caseStorage is the full persistence surface the services need for cases,
// satisfied by both the memory and postgres adapters.
type caseStorage interface {
	ListCases(ctx context.Context, userID uuid.UUID) ([]domain.Case, error)
	GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	CreateCase(ctx context.Context, c *domain.Case) (*domain.Case, error)
	UpdateCase(ctx context.Context, userID, caseID uuid.UUID, patch domain.CasePatch) (*domain.Case, error)
	AddDocument(ctx context.Context, userID, caseID uuid.UUID, doc domain.Document) error
	SetDocumentStatus(ctx context.Context, userID, caseID, docID uuid.UUID, status domain.DocumentStatus) error
	CompleteDocument(ctx context.Context, userID, caseID, docID uuid.UUID, raw, masked, summary string) error
	AppendActivity(ctx context.Context, userID, caseID uuid.UUID, entry domain.ActivityEntry) error
}

type auditStorage interface {
	Append(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	QueryByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

// Run is the application entry point. It loads configuration, wires the
// selected store backend into the services, and serves HTTP until ctx is
// cancelled, then shuts down draining in-flight ingestion jobs.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("store_backend", cfg.Store.Backend),
		slog.String("log_level", cfg.Log.Level),
	)

	var (
		caseStore  caseStorage
		auditStore auditStorage
		pinger     interface{ Ping(ctx context.Context) error }
	)

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		caseStore = postgres.NewCaseStore(pool)
		auditStore = postgres.NewAuditStore(pool)
		pinger = pool
	default:
		caseStore = memory.NewCaseStore()
		auditStore = memory.NewAuditStore()
	}

	auditSvc := audit.NewService(logger, auditStore)
	pipeline := ingest.NewPipeline(logger, caseStore, ingest.TextExtractor{}, clockwork.NewRealClock(), cfg.Ingest)
	caseSvc := cases.NewService(logger, caseStore, auditSvc, pipeline, cfg.Cases.MaxCasesPerUser)
	gateway := anthropic.NewGateway(cfg.LLM, logger)
	workflowSvc := workflow.NewService(logger, caseStore, gateway, workflow.NewBoard())

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pinger, BuildVersion()),
		Cases:    rest.NewCaseHandler(caseSvc, logger),
		Workflow: rest.NewWorkflowHandler(workflowSvc, logger),
		Audit:    rest.NewAuditHandler(auditSvc, logger),
	})

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
	}
	mws = append(mws, middleware.Identity)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	pipeline.Wait()
	logger.Info("shutdown complete")
	return nil
}
