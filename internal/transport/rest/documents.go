package rest

import (
	"io"
	"net/http"

	"github.com/lexatlas/lexatlas-backend/internal/service/cases"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// Upload handles POST /api/cases/{caseID}/documents. The document arrives as
// multipart/form-data with the payload in the "file" field.
func (h *CaseHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable file payload")
		return
	}

	doc, err := h.svc.UploadDocument(r.Context(), cases.UploadDocumentInput{
		CaseID:    caseID,
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Payload:   payload,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toDocumentResponse(doc))
}

type documentViewResponse struct {
	Document documentResponse `json:"document"`
	Content  string           `json:"content"`
	Masked   bool             `json:"masked"`
}

// ViewDocument handles GET /api/cases/{caseID}/documents/{documentID}.
// Content is masked unless ?raw=true is passed; raw access is audited.
func (h *CaseHandler) ViewDocument(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathUUID(w, r, "caseID")
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentID")
	if !ok {
		return
	}

	raw := r.URL.Query().Get("raw") == "true"
	view, err := h.svc.ViewDocument(r.Context(), caseID, documentID, raw)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, documentViewResponse{
		Document: toDocumentResponse(view.Document),
		Content:  view.Content,
		Masked:   view.Masked,
	})
}
