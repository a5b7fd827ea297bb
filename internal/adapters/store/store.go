// Package store provides the engine's data boundary: seasons, games, team
// rosters, and player identities, bulk-resolved into a plain in-memory value
// graph before any computation starts.
package store

import (
	"context"
	"sync"

	"github.com/openrec/skillrank/internal/domain/model"
)

// Dataset is the complete value graph for one league. Entities are
// addressed by id; once loaded, no further external lookups are needed.
type Dataset struct {
	Seasons []model.Season      `json:"seasons"`
	Games   []model.Game        `json:"games"`
	Rosters map[string][]string `json:"rosters"` // team id -> ordered player ids
	Players map[string]string   `json:"players"` // player id -> display name
}

// MemStore serves a Dataset from memory. It is safe for concurrent reads.
type MemStore struct {
	mu sync.RWMutex
	ds Dataset
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithDataset seeds the store with a dataset.
func WithDataset(ds Dataset) Option {
	return func(m *MemStore) {
		m.ds = ds
	}
}

// NewMemStore creates a new in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	m := &MemStore{}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Replace swaps the entire dataset.
func (m *MemStore) Replace(ds Dataset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds = ds
}

// Seasons returns all known seasons.
func (m *MemStore) Seasons(ctx context.Context) ([]model.Season, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Season, len(m.ds.Seasons))
	copy(out, m.ds.Seasons)
	return out, nil
}

// Games returns all games belonging to the given seasons. An empty season
// list returns every game.
func (m *MemStore) Games(ctx context.Context, seasonIDs []string) ([]model.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(seasonIDs) == 0 {
		out := make([]model.Game, len(m.ds.Games))
		copy(out, m.ds.Games)
		return out, nil
	}

	wanted := make(map[string]bool, len(seasonIDs))
	for _, id := range seasonIDs {
		wanted[id] = true
	}
	var out []model.Game
	for _, g := range m.ds.Games {
		if wanted[g.SeasonID] {
			out = append(out, g)
		}
	}
	return out, nil
}

// Roster returns the ordered player ids rostered on a team.
// Returns ErrUnknownTeam if the team is not in the dataset.
func (m *MemStore) Roster(ctx context.Context, teamID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	roster, ok := m.ds.Rosters[teamID]
	if !ok {
		return nil, ErrUnknownTeam
	}
	out := make([]string, len(roster))
	copy(out, roster)
	return out, nil
}

// DisplayName returns the display name for a player id.
// Returns ErrUnknownPlayer if the player is not in the dataset.
func (m *MemStore) DisplayName(ctx context.Context, playerID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.ds.Players[playerID]
	if !ok {
		return "", ErrUnknownPlayer
	}
	return name, nil
}
