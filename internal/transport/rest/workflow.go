package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/service/workflow"
)

// workflowService defines the minimal interface needed by WorkflowHandler.
type workflowService interface {
	Run(ctx context.Context, caseID uuid.UUID) error
	Board() *workflow.Board
}

// WorkflowHandler serves workflow REST endpoints.
type WorkflowHandler struct {
	svc workflowService
	log *slog.Logger
}

// NewWorkflowHandler creates a WorkflowHandler.
func NewWorkflowHandler(svc workflowService, logger *slog.Logger) *WorkflowHandler {
	return &WorkflowHandler{svc: svc, log: logger.With("handler", "workflow")}
}

// Run handles POST /api/cases/{caseID}/workflow/run. The run executes
// synchronously; progress is observable on the status endpoints while it
// is in flight.
func (h *WorkflowHandler) Run(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	if err := h.svc.Run(r.Context(), caseID); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// Status handles GET /api/workflow/status with a snapshot of every agent.
func (h *WorkflowHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Board().Statuses())
}

// Watch handles GET /api/workflow/watch as a server-sent event stream.
// Each event carries the full board snapshot; the stream ends when the
// client disconnects.
func (h *WorkflowHandler) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates := h.svc.Board().Watch(r.Context())
	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			payload, err := json.Marshal(snap)
			if err != nil {
				h.log.ErrorContext(r.Context(), "marshal status snapshot", slog.String("error", err.Error()))
				return
			}
			if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
