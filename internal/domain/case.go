package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the lifecycle state of a litigation matter.
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "Active"
	CaseStatusPending  CaseStatus = "Pending"
	CaseStatusClosed   CaseStatus = "Closed"
	CaseStatusArchived CaseStatus = "Archived"
)

func (s CaseStatus) String() string { return string(s) }

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusActive, CaseStatusPending, CaseStatusClosed, CaseStatusArchived:
		return true
	}
	return false
}

// Case is a litigation matter owned by exactly one user. Every read and write
// is scoped by UserID; a case is never visible to a different user.
type Case struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	ClientName  string
	Status      CaseStatus
	Description string

	// Documents keeps upload order (display order only; processing does not
	// depend on it).
	Documents []Document

	// Activity is the agent activity log, newest-first. Entries are immutable
	// once appended.
	Activity []ActivityEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentByID returns a pointer into Documents, or nil if absent.
func (c *Case) DocumentByID(id uuid.UUID) *Document {
	for i := range c.Documents {
		if c.Documents[i].ID == id {
			return &c.Documents[i]
		}
	}
	return nil
}

// ReadyDocuments returns the documents whose ingestion has completed, in
// upload order. Only these participate in a workflow run.
func (c *Case) ReadyDocuments() []Document {
	var ready []Document
	for _, d := range c.Documents {
		if d.Status == DocumentStatusCompleted {
			ready = append(ready, d)
		}
	}
	return ready
}

// ActivityEntry records one agent's completed contribution to a case.
type ActivityEntry struct {
	ID        uuid.UUID
	Agent     AgentType
	Message   string
	Result    string
	CreatedAt time.Time
}

// CasePatch carries partial updates for a case. nil fields are left unchanged.
type CasePatch struct {
	Title       *string
	ClientName  *string
	Status      *CaseStatus
	Description *string
}
