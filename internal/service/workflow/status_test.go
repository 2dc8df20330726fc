package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

func TestBoard_StartsIdle(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	snap := b.Statuses()
	require.Len(t, snap, len(domain.AllAgents()))
	for agent, status := range snap {
		assert.Equal(t, domain.AgentStatusIdle, status, "agent %s", agent)
	}
}

func TestBoard_SetAndReset(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.Set(domain.AgentEvidenceAnalysis, domain.AgentStatusThinking)
	assert.Equal(t, domain.AgentStatusThinking, b.Status(domain.AgentEvidenceAnalysis))

	b.Reset()
	assert.Equal(t, domain.AgentStatusIdle, b.Status(domain.AgentEvidenceAnalysis))
}

func TestBoard_SnapshotIsDetached(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	snap := b.Statuses()
	b.Set(domain.AgentQualityReview, domain.AgentStatusCompleted)
	assert.Equal(t, domain.AgentStatusIdle, snap[domain.AgentQualityReview])
}

func TestBoard_WatchDeliversLatestSnapshot(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Watch(ctx)

	// initial snapshot arrives immediately
	select {
	case snap := <-ch:
		assert.Equal(t, domain.AgentStatusIdle, snap[domain.AgentEvidenceAnalysis])
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	// a burst of updates coalesces to the latest state
	b.Set(domain.AgentEvidenceAnalysis, domain.AgentStatusThinking)
	b.Set(domain.AgentEvidenceAnalysis, domain.AgentStatusWorking)
	b.Set(domain.AgentEvidenceAnalysis, domain.AgentStatusCompleted)

	select {
	case snap := <-ch:
		assert.Equal(t, domain.AgentStatusCompleted, snap[domain.AgentEvidenceAnalysis])
	case <-time.After(time.Second):
		t.Fatal("no snapshot after updates")
	}
}

func TestBoard_SetAfterWatchCancel(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	b.Watch(ctx)
	cancel()

	// give the unsubscribe goroutine a moment, then make sure updates
	// still go through without a live watcher
	time.Sleep(10 * time.Millisecond)
	b.Set(domain.AgentDisputeIdentify, domain.AgentStatusThinking)
	assert.Equal(t, domain.AgentStatusThinking, b.Status(domain.AgentDisputeIdentify))
}
