// Package checkpoint persists calculation progress: the per-round
// calculated markers, the latest published ranking snapshot, and the
// calculation state record a monitoring caller polls.
package checkpoint

import (
	"context"
	"sync"

	"github.com/openrec/skillrank/internal/domain/model"
)

// Store persists calculation progress and published results.
type Store interface {
	// CalculatedRounds returns every round already marked calculated.
	CalculatedRounds(ctx context.Context) (map[string]model.RoundRecord, error)

	// LatestSnapshot returns the most recently published ranking list.
	// Returns ErrSnapshotNotFound if nothing was ever published.
	LatestSnapshot(ctx context.Context) ([]model.PlayerRanking, error)

	// SaveState persists a calculation state record. Failures are
	// non-fatal to the caller; the in-memory computation stays correct.
	SaveState(ctx context.Context, state *model.CalculationState) error

	// SaveRound marks one round calculated.
	SaveRound(ctx context.Context, rec model.RoundRecord) error

	// Publish atomically stores the ranking snapshot together with the
	// terminal calculation state. Nothing is published on failure.
	Publish(ctx context.Context, rankings []model.PlayerRanking, state *model.CalculationState) error
}

// MemoryStore implements Store in memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	rounds   map[string]model.RoundRecord
	snapshot []model.PlayerRanking
	hasSnap  bool
	state    *model.CalculationState
}

// NewMemoryStore creates an empty in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rounds: make(map[string]model.RoundRecord),
	}
}

// CalculatedRounds returns every round already marked calculated.
func (m *MemoryStore) CalculatedRounds(ctx context.Context) (map[string]model.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]model.RoundRecord, len(m.rounds))
	for id, rec := range m.rounds {
		out[id] = rec
	}
	return out, nil
}

// LatestSnapshot returns the most recently published ranking list.
func (m *MemoryStore) LatestSnapshot(ctx context.Context) ([]model.PlayerRanking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasSnap {
		return nil, ErrSnapshotNotFound
	}
	out := make([]model.PlayerRanking, len(m.snapshot))
	copy(out, m.snapshot)
	return out, nil
}

// SaveState persists a calculation state record.
func (m *MemoryStore) SaveState(ctx context.Context, state *model.CalculationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *state
	m.state = &copied
	return nil
}

// State returns the last saved calculation state, if any.
func (m *MemoryStore) State() (*model.CalculationState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return nil, false
	}
	copied := *m.state
	return &copied, true
}

// SaveRound marks one round calculated.
func (m *MemoryStore) SaveRound(ctx context.Context, rec model.RoundRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rounds[rec.RoundID] = rec
	return nil
}

// Publish atomically stores the ranking snapshot and terminal state.
func (m *MemoryStore) Publish(ctx context.Context, rankings []model.PlayerRanking, state *model.CalculationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = make([]model.PlayerRanking, len(rankings))
	copy(m.snapshot, rankings)
	m.hasSnap = true
	copied := *state
	m.state = &copied
	return nil
}
