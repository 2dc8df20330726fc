package workflow

import (
	"context"
	"sync"

	"github.com/lexatlas/lexatlas-backend/internal/domain"
)

// Snapshot is a point-in-time view of every agent's status.
type Snapshot map[domain.AgentType]domain.AgentStatus

// Board tracks the ephemeral per-run status of every agent. Statuses are
// reset to Idle at the start of each run and are never persisted. Readers
// either poll Statuses or subscribe with Watch; watch channels coalesce,
// always carrying the latest snapshot.
type Board struct {
	mu       sync.RWMutex
	statuses Snapshot
	watchers map[int]chan Snapshot
	nextID   int
}

func NewBoard() *Board {
	b := &Board{
		statuses: make(Snapshot, len(domain.AllAgents())),
		watchers: make(map[int]chan Snapshot),
	}
	for _, a := range domain.AllAgents() {
		b.statuses[a] = domain.AgentStatusIdle
	}
	return b
}

// Statuses returns a copy of the current board.
func (b *Board) Statuses() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Status returns the current status of a single agent.
func (b *Board) Status(agent domain.AgentType) domain.AgentStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.statuses[agent]
}

// Set updates one agent's status and notifies watchers.
func (b *Board) Set(agent domain.AgentType, status domain.AgentStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[agent] = status
	b.notifyLocked()
}

// Reset returns every agent to Idle and notifies watchers.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range domain.AllAgents() {
		b.statuses[a] = domain.AgentStatusIdle
	}
	b.notifyLocked()
}

// Watch subscribes to board changes until ctx is done. The returned channel
// holds at most the latest snapshot: slow readers skip intermediate states
// rather than blocking the run.
func (b *Board) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = ch
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		b.mu.Unlock()
	}()

	return ch
}

func (b *Board) snapshotLocked() Snapshot {
	snap := make(Snapshot, len(b.statuses))
	for a, s := range b.statuses {
		snap[a] = s
	}
	return snap
}

func (b *Board) notifyLocked() {
	snap := b.snapshotLocked()
	for _, ch := range b.watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
