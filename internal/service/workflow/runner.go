// Package workflow orchestrates the multi-agent analysis run over a case.
// A run executes the standard four-phase plan against the case's ready
// documents, appending one activity entry per completed agent and exposing
// per-agent progress on a status board.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

type caseStore interface {
	GetCase(ctx context.Context, userID, caseID uuid.UUID) (*domain.Case, error)
	AppendActivity(ctx context.Context, userID, caseID uuid.UUID, entry domain.ActivityEntry) error
}

type gateway interface {
	Invoke(ctx context.Context, agent domain.AgentType, docs []domain.Document, caseDescription, upstream string) (string, error)
}

// Service runs workflows. A single Service executes at most one run at a
// time; a second Run while one is active fails with domain.ErrRunInProgress.
type Service struct {
	store   caseStore
	gateway gateway
	board   *Board
	log     *slog.Logger

	runMu   sync.Mutex
	running bool
}

// NewService creates a new workflow service.
func NewService(log *slog.Logger, store caseStore, gateway gateway, board *Board) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		board:   board,
		log:     log.With("service", "workflow"),
	}
}

// Board exposes the status board for polling and watch subscriptions.
func (s *Service) Board() *Board { return s.board }

// Run executes the standard plan against the case's ready documents.
// Completed agents leave an activity entry even when a later agent fails;
// the first gateway failure aborts the remainder of the run and is reported
// as a domain.GatewayError naming the failed agent.
func (s *Service) Run(ctx context.Context, caseID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if caseID == uuid.Nil {
		return domain.NewValidationError("caseId", "must not be empty")
	}

	if !s.acquire() {
		return domain.ErrRunInProgress
	}
	defer s.release()

	c, err := s.store.GetCase(ctx, userID, caseID)
	if err != nil {
		return fmt.Errorf("load case: %w", err)
	}
	docs := c.ReadyDocuments()
	if len(docs) == 0 {
		return fmt.Errorf("case %s: %w", caseID, domain.ErrNoReadyDocuments)
	}

	s.board.Reset()
	run := &runState{
		userID:      userID,
		caseID:      caseID,
		docs:        docs,
		description: c.Description,
		outputs:     make(outputs),
	}

	s.log.InfoContext(ctx, "workflow run started", "case_id", caseID, "ready_documents", len(docs))

	for _, phase := range standardPlan() {
		if err := s.runPhase(ctx, run, phase); err != nil {
			s.log.ErrorContext(ctx, "workflow run failed", "case_id", caseID, "error", err)
			return err
		}
	}

	s.log.InfoContext(ctx, "workflow run completed", "case_id", caseID)
	return nil
}

type runState struct {
	userID      uuid.UUID
	caseID      uuid.UUID
	docs        []domain.Document
	description string

	mu      sync.Mutex
	outputs outputs
}

func (r *runState) input(n node) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return n.input(r.outputs)
}

func (r *runState) setOutput(agent domain.AgentType, out string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[agent] = out
}

func (s *Service) runPhase(ctx context.Context, run *runState, phase []node) error {
	for _, n := range phase {
		s.board.Set(n.agent, domain.AgentStatusQueued)
	}

	if len(phase) == 1 {
		return s.runNode(ctx, run, phase[0])
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, n := range phase {
		g.Go(func() error {
			return s.runNode(ctx, run, n)
		})
	}
	return g.Wait()
}

func (s *Service) runNode(ctx context.Context, run *runState, n node) error {
	s.board.Set(n.agent, domain.AgentStatusThinking)

	result, err := s.gateway.Invoke(ctx, n.agent, run.docs, run.description, run.input(n))
	if err != nil {
		s.board.Set(n.agent, domain.AgentStatusError)
		return domain.NewGatewayError(n.agent, err)
	}

	s.board.Set(n.agent, domain.AgentStatusWorking)
	entry := domain.ActivityEntry{
		ID:        uuid.New(),
		Agent:     n.agent,
		Message:   fmt.Sprintf("%s completed task.", n.agent),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendActivity(ctx, run.userID, run.caseID, entry); err != nil {
		s.board.Set(n.agent, domain.AgentStatusError)
		return fmt.Errorf("append activity for %s: %w", n.agent, err)
	}

	run.setOutput(n.agent, result)
	s.board.Set(n.agent, domain.AgentStatusCompleted)
	return nil
}

func (s *Service) acquire() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Service) release() {
	s.runMu.Lock()
	s.running = false
	s.runMu.Unlock()
}
