package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// AuditStore is an append-only, in-memory audit trail. Records are prepended
// (newest-first), never mutated, never deleted. Append always succeeds.
type AuditStore struct {
	mu      sync.RWMutex
	records []domain.AuditRecord
}

// NewAuditStore creates an empty in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Append prepends a record to the trail and returns the stored value.
func (s *AuditStore) Append(_ context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]domain.AuditRecord{record}, s.records...)
	return record, nil
}

// QueryByUser returns records belonging to userID, newest-first. Records of
// other users are never returned.
func (s *AuditStore) QueryByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []domain.AuditRecord
	for _, r := range s.records {
		if r.UserID == userID {
			owned = append(owned, r)
		}
	}

	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}
