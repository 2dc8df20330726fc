package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

func newCase(userID uuid.UUID) *domain.Case {
	now := time.Now().UTC()
	return &domain.Case{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "TechCorp v. Innovate LLC",
		Status:    domain.CaseStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCaseStore_UserIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()

	owner := uuid.New()
	stranger := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	// The owner sees the case.
	cases, err := store.ListCases(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, created.ID, cases[0].ID)

	// A different user sees nothing and cannot read or mutate it.
	cases, err = store.ListCases(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, cases)

	_, err = store.GetCase(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	title := "hijacked"
	_, err = store.UpdateCase(ctx, stranger, created.ID, domain.CasePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The failed cross-user update must not have leaked through.
	got, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "TechCorp v. Innovate LLC", got.Title)
}

func TestCaseStore_UpdateCase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()
	owner := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	status := domain.CaseStatusClosed
	desc := "settled out of court"
	updated, err := store.UpdateCase(ctx, owner, created.ID, domain.CasePatch{
		Status:      &status,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusClosed, updated.Status)
	assert.Equal(t, desc, updated.Description)
	// Unpatched fields are untouched.
	assert.Equal(t, created.Title, updated.Title)

	_, err = store.UpdateCase(ctx, owner, uuid.New(), domain.CasePatch{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCaseStore_DocumentLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()
	owner := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	doc := domain.Document{
		ID:        uuid.New(),
		Name:      "complaint.pdf",
		MediaType: "application/pdf",
		Size:      2048,
		Status:    domain.DocumentStatusUploading,
	}
	require.NoError(t, store.AddDocument(ctx, owner, created.ID, doc))

	// Visible immediately, with empty content.
	got, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, domain.DocumentStatusUploading, got.Documents[0].Status)
	assert.Empty(t, got.Documents[0].RawContent)

	require.NoError(t, store.SetDocumentStatus(ctx, owner, created.ID, doc.ID, domain.DocumentStatusProcessing))

	require.NoError(t, store.CompleteDocument(ctx, owner, created.ID, doc.ID,
		"raw text", "masked text", "parsed"))

	got, err = store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusCompleted, got.Documents[0].Status)
	assert.Equal(t, "raw text", got.Documents[0].RawContent)
	assert.Equal(t, "masked text", got.Documents[0].MaskedContent)

	ready := got.ReadyDocuments()
	require.Len(t, ready, 1)
	assert.Equal(t, doc.ID, ready[0].ID)
}

func TestCaseStore_AppendActivity_NewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()
	owner := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	for _, agent := range []domain.AgentType{domain.AgentEvidenceAnalysis, domain.AgentDisputeIdentify} {
		require.NoError(t, store.AppendActivity(ctx, owner, created.ID, domain.ActivityEntry{
			ID:        uuid.New(),
			Agent:     agent,
			CreatedAt: time.Now().UTC(),
		}))
	}

	got, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Activity, 2)
	assert.Equal(t, domain.AgentDisputeIdentify, got.Activity[0].Agent)
	assert.Equal(t, domain.AgentEvidenceAnalysis, got.Activity[1].Agent)
}

func TestCaseStore_SnapshotReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()
	owner := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	snap, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not affect the stored case.
	snap.Title = "scribbled on"
	snap.Activity = append(snap.Activity, domain.ActivityEntry{ID: uuid.New()})

	got, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "TechCorp v. Innovate LLC", got.Title)
	assert.Empty(t, got.Activity)
}

func TestCaseStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCaseStore()
	owner := uuid.New()

	created, err := store.CreateCase(ctx, newCase(owner))
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.AppendActivity(ctx, owner, created.ID, domain.ActivityEntry{
				ID:    uuid.New(),
				Agent: domain.AgentQualityReview,
			})
		}()
	}
	wg.Wait()

	got, err := store.GetCase(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Activity, writers)
}
