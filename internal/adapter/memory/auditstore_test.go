package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

func appendRecord(t *testing.T, store *AuditStore, userID uuid.UUID, action domain.AuditAction) domain.AuditRecord {
	t.Helper()
	rec, err := store.Append(context.Background(), domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		ResourceID: uuid.New(),
		Origin:     "127.0.0.1",
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return rec
}

func TestAuditStore_NewestFirst(t *testing.T) {
	t.Parallel()

	store := NewAuditStore()
	userID := uuid.New()

	first := appendRecord(t, store, userID, domain.AuditActionCreateCase)
	second := appendRecord(t, store, userID, domain.AuditActionUploadFile)
	third := appendRecord(t, store, userID, domain.AuditActionViewRaw)

	records, err := store.QueryByUser(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, third.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, first.ID, records[2].ID)
}

func TestAuditStore_UserScoping(t *testing.T) {
	t.Parallel()

	store := NewAuditStore()
	alice := uuid.New()
	bob := uuid.New()

	appendRecord(t, store, alice, domain.AuditActionCreateCase)
	appendRecord(t, store, bob, domain.AuditActionViewRaw)

	records, err := store.QueryByUser(context.Background(), alice, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, alice, records[0].UserID)

	records, err = store.QueryByUser(context.Background(), bob, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AuditActionViewRaw, records[0].Action)
}

func TestAuditStore_Pagination(t *testing.T) {
	t.Parallel()

	store := NewAuditStore()
	userID := uuid.New()
	for i := 0; i < 5; i++ {
		appendRecord(t, store, userID, domain.AuditActionUploadFile)
	}

	page, err := store.QueryByUser(context.Background(), userID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = store.QueryByUser(context.Background(), userID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = store.QueryByUser(context.Background(), userID, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}
