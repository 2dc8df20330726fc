package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the ingestion state of an uploaded document.
// Transitions are strictly ordered: Uploading -> Processing -> {Completed|Failed}.
// No transition is ever rolled back.
type DocumentStatus string

const (
	DocumentStatusUploading  DocumentStatus = "Uploading"
	DocumentStatusProcessing DocumentStatus = "Processing"
	DocumentStatusCompleted  DocumentStatus = "Completed"
	DocumentStatusFailed     DocumentStatus = "Failed"
)

func (s DocumentStatus) String() string { return string(s) }

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusUploading, DocumentStatusProcessing,
		DocumentStatusCompleted, DocumentStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentStatusCompleted || s == DocumentStatusFailed
}

// Document is one uploaded artifact, owned exclusively by its parent case.
//
// RawContent and MaskedContent stay empty until Status reaches Completed;
// both are set atomically with that transition, so a reader must never
// observe Completed with empty content fields.
type Document struct {
	ID          uuid.UUID
	Name        string
	MediaType   string
	Size        int64
	StoragePath string
	Status      DocumentStatus

	RawContent    string
	MaskedContent string
	Summary       string

	UploadedAt time.Time
}

// GatewayContent returns the projection the gateway is allowed to see:
// masked content when available, raw only as a fallback.
func (d Document) GatewayContent() string {
	if d.MaskedContent != "" {
		return d.MaskedContent
	}
	return d.RawContent
}
