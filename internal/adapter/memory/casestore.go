// Package memory provides in-process implementations of the case and audit
// stores. A store instance is the single source of truth shared by every
// reader and writer in the process; all mutations are serialized behind one
// mutex, and reads return deep copies so pollers never observe a partially
// applied write.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// CaseStore holds all cases in memory, keyed by case ID. Every operation is
// scoped by the owning user; a case is never visible or mutable across users.
type CaseStore struct {
	mu    sync.RWMutex
	cases map[uuid.UUID]*domain.Case
}

// NewCaseStore creates an empty in-memory case store.
func NewCaseStore() *CaseStore {
	return &CaseStore{
		cases: make(map[uuid.UUID]*domain.Case),
	}
}

// ListCases returns copies of all cases owned by userID, most recently
// updated first.
func (s *CaseStore) ListCases(_ context.Context, userID uuid.UUID) ([]domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Case
	for _, c := range s.cases {
		if c.UserID == userID {
			out = append(out, cloneCase(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetCase returns a copy of the case, or domain.ErrNotFound when the case
// does not exist or belongs to a different user. The two situations are
// deliberately indistinguishable to the caller.
func (s *CaseStore) GetCase(_ context.Context, userID, caseID uuid.UUID) (*domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return nil, err
	}
	cp := cloneCase(c)
	return &cp, nil
}

// CountByUser returns the number of cases owned by userID.
func (s *CaseStore) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.cases {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

// CreateCase stores a new case and returns a copy of the stored value.
func (s *CaseStore) CreateCase(_ context.Context, c *domain.Case) (*domain.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cases[c.ID]; ok {
		return nil, fmt.Errorf("case %s: %w", c.ID, domain.ErrAlreadyExists)
	}
	stored := cloneCase(c)
	s.cases[c.ID] = &stored

	cp := cloneCase(&stored)
	return &cp, nil
}

// UpdateCase applies the patch to an owned case. Non-owned or nonexistent
// case IDs produce domain.ErrNotFound with no mutation.
func (s *CaseStore) UpdateCase(_ context.Context, userID, caseID uuid.UUID, patch domain.CasePatch) (*domain.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.ClientName != nil {
		c.ClientName = *patch.ClientName
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	c.UpdatedAt = time.Now().UTC()

	cp := cloneCase(c)
	return &cp, nil
}

// AddDocument attaches a document to an owned case. The document becomes
// visible to readers immediately, even before any content is extracted.
func (s *CaseStore) AddDocument(_ context.Context, userID, caseID uuid.UUID, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return err
	}
	if c.DocumentByID(doc.ID) != nil {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrAlreadyExists)
	}
	c.Documents = append(c.Documents, doc)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// SetDocumentStatus transitions a document to the given status without
// touching its content fields. Used for the Uploading -> Processing hop and
// the terminal Failed state.
func (s *CaseStore) SetDocumentStatus(_ context.Context, userID, caseID, docID uuid.UUID, status domain.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return err
	}
	doc := c.DocumentByID(docID)
	if doc == nil {
		return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}
	doc.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// CompleteDocument sets the extracted content projections and the Completed
// status in one critical section, so a reader can never observe Completed
// with empty content fields.
func (s *CaseStore) CompleteDocument(_ context.Context, userID, caseID, docID uuid.UUID, raw, masked, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return err
	}
	doc := c.DocumentByID(docID)
	if doc == nil {
		return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}
	doc.RawContent = raw
	doc.MaskedContent = masked
	doc.Summary = summary
	doc.Status = domain.DocumentStatusCompleted
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendActivity prepends an activity entry to an owned case's log.
// The append is atomic; newest-first ordering is an invariant consumers
// rely on.
func (s *CaseStore) AppendActivity(_ context.Context, userID, caseID uuid.UUID, entry domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.owned(userID, caseID)
	if err != nil {
		return err
	}
	c.Activity = append([]domain.ActivityEntry{entry}, c.Activity...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// owned returns the live case pointer when caseID exists and belongs to
// userID. Callers must hold s.mu.
func (s *CaseStore) owned(userID, caseID uuid.UUID) (*domain.Case, error) {
	c, ok := s.cases[caseID]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("case %s: %w", caseID, domain.ErrNotFound)
	}
	return c, nil
}

func cloneCase(c *domain.Case) domain.Case {
	cp := *c
	cp.Documents = append([]domain.Document(nil), c.Documents...)
	cp.Activity = append([]domain.ActivityEntry(nil), c.Activity...)
	return cp
}
