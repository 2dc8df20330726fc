package cases

import (
	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

const (
	maxTitleLen       = 200
	maxClientNameLen  = 200
	maxDescriptionLen = 10000
	maxDocumentName   = 255
)

// CreateCaseInput carries the fields for creating a new case.
type CreateCaseInput struct {
	Title       string
	ClientName  string
	Description string
}

func (in CreateCaseInput) Validate() error {
	var fields []domain.FieldError
	if in.Title == "" {
		fields = append(fields, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if len(in.Title) > maxTitleLen {
		fields = append(fields, domain.FieldError{Field: "title", Message: "too long"})
	}
	if len(in.ClientName) > maxClientNameLen {
		fields = append(fields, domain.FieldError{Field: "clientName", Message: "too long"})
	}
	if len(in.Description) > maxDescriptionLen {
		fields = append(fields, domain.FieldError{Field: "description", Message: "too long"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateCaseInput carries a partial update. Nil fields are left unchanged.
type UpdateCaseInput struct {
	Title       *string
	ClientName  *string
	Status      *domain.CaseStatus
	Description *string
}

func (in UpdateCaseInput) Validate() error {
	var fields []domain.FieldError
	if in.Title != nil {
		if *in.Title == "" {
			fields = append(fields, domain.FieldError{Field: "title", Message: "must not be empty"})
		}
		if len(*in.Title) > maxTitleLen {
			fields = append(fields, domain.FieldError{Field: "title", Message: "too long"})
		}
	}
	if in.ClientName != nil && len(*in.ClientName) > maxClientNameLen {
		fields = append(fields, domain.FieldError{Field: "clientName", Message: "too long"})
	}
	if in.Status != nil && !in.Status.IsValid() {
		fields = append(fields, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		fields = append(fields, domain.FieldError{Field: "description", Message: "too long"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

func (in UpdateCaseInput) patch() domain.CasePatch {
	return domain.CasePatch{
		Title:       in.Title,
		ClientName:  in.ClientName,
		Status:      in.Status,
		Description: in.Description,
	}
}

// UploadDocumentInput carries a document payload for intake into a case.
type UploadDocumentInput struct {
	CaseID    uuid.UUID
	Name      string
	MediaType string
	Payload   []byte
}

func (in UploadDocumentInput) Validate() error {
	var fields []domain.FieldError
	if in.CaseID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "caseId", Message: "must not be empty"})
	}
	if in.Name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if len(in.Name) > maxDocumentName {
		fields = append(fields, domain.FieldError{Field: "name", Message: "too long"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}
