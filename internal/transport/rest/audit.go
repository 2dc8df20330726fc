package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// auditService defines the minimal interface needed by AuditHandler.
type auditService interface {
	Query(ctx context.Context, limit, offset int) ([]domain.AuditRecord, error)
}

// AuditHandler serves the caller's audit trail.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

type auditRecordResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId"`
	Origin     string    `json:"origin,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// List handles GET /api/audit?limit=50&offset=0, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	records, err := h.svc.Query(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]auditRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, auditRecordResponse{
			ID:         rec.ID.String(),
			Action:     rec.Action.String(),
			ResourceID: rec.ResourceID.String(),
			Origin:     rec.Origin,
			CreatedAt:  rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
