package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
	"github.com/lexatlas/lexatlas-backend/internal/service/cases"
)

// casesService defines the minimal interface needed by CaseHandler.
type casesService interface {
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
	CreateCase(ctx context.Context, in cases.CreateCaseInput) (*domain.Case, error)
	UpdateCase(ctx context.Context, caseID uuid.UUID, in cases.UpdateCaseInput) (*domain.Case, error)
	UploadDocument(ctx context.Context, in cases.UploadDocumentInput) (*domain.Document, error)
	ViewDocument(ctx context.Context, caseID, documentID uuid.UUID, raw bool) (*cases.DocumentView, error)
	ExportCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error)
}

// CaseHandler serves case REST endpoints.
type CaseHandler struct {
	svc casesService
	log *slog.Logger
}

// NewCaseHandler creates a CaseHandler.
func NewCaseHandler(svc casesService, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{svc: svc, log: logger.With("handler", "cases")}
}

type createCaseRequest struct {
	Title       string `json:"title"`
	ClientName  string `json:"clientName"`
	Description string `json:"description"`
}

type updateCaseRequest struct {
	Title       *string `json:"title"`
	ClientName  *string `json:"clientName"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

type caseResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ClientName  string             `json:"clientName"`
	Status      string             `json:"status"`
	Description string             `json:"description"`
	Documents   []documentResponse `json:"documents"`
	Activity    []activityResponse `json:"activity"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type caseListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ClientName    string    `json:"clientName"`
	Status        string    `json:"status"`
	DocumentCount int       `json:"documentCount"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MediaType  string    `json:"mediaType"`
	Size       int64     `json:"size"`
	Status     string    `json:"status"`
	Summary    string    `json:"summary,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type activityResponse struct {
	ID        string    `json:"id"`
	Agent     string    `json:"agent"`
	Message   string    `json:"message"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// List handles GET /api/cases.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCases(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]caseListItem, 0, len(list))
	for _, c := range list {
		items = append(items, caseListItem{
			ID:            c.ID.String(),
			Title:         c.Title,
			ClientName:    c.ClientName,
			Status:        c.Status.String(),
			DocumentCount: len(c.Documents),
			UpdatedAt:     c.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCase(r.Context(), cases.CreateCaseInput{
		Title:       req.Title,
		ClientName:  req.ClientName,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCaseResponse(created))
}

// Get handles GET /api/cases/{caseID}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	c, err := h.svc.GetCase(r.Context(), caseID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseResponse(c))
}

// Update handles PATCH /api/cases/{caseID}.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	var req updateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := cases.UpdateCaseInput{
		Title:       req.Title,
		ClientName:  req.ClientName,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.CaseStatus(*req.Status)
		in.Status = &status
	}

	updated, err := h.svc.UpdateCase(r.Context(), caseID, in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseResponse(updated))
}

// Export handles GET /api/cases/{caseID}/export.
func (h *CaseHandler) Export(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	exported, err := h.svc.ExportCase(r.Context(), caseID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseResponse(exported))
}

func toCaseResponse(c *domain.Case) caseResponse {
	resp := caseResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		ClientName:  c.ClientName,
		Status:      c.Status.String(),
		Description: c.Description,
		Documents:   make([]documentResponse, 0, len(c.Documents)),
		Activity:    make([]activityResponse, 0, len(c.Activity)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, d := range c.Documents {
		resp.Documents = append(resp.Documents, toDocumentResponse(&d))
	}
	for _, a := range c.Activity {
		resp.Activity = append(resp.Activity, activityResponse{
			ID:        a.ID.String(),
			Agent:     a.Agent.String(),
			Message:   a.Message,
			Result:    a.Result,
			CreatedAt: a.CreatedAt,
		})
	}
	return resp
}

func toDocumentResponse(d *domain.Document) documentResponse {
	return documentResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		MediaType:  d.MediaType,
		Size:       d.Size,
		Status:     d.Status.String(),
		Summary:    d.Summary,
		UploadedAt: d.UploadedAt,
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
