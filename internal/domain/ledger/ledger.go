// Package ledger holds the in-memory mapping from player id to rating state
// owned by exactly one calculation run. Entries are created lazily on first
// roster sight and never removed while the run lives; the ledger is handed
// to the caller only once, as a ranked export at completion.
package ledger

import (
	"sort"

	"github.com/openrec/skillrank/internal/domain/model"
)

// NewStateFunc builds the initial rating state for a newly seen player.
// The rating algorithm provides it so the ledger stays variant-agnostic.
type NewStateFunc func(playerID, displayName string) *model.PlayerRatingState

// Ledger is the mutable per-run rating state. It is not safe for concurrent
// use; a run owns it exclusively.
type Ledger struct {
	states   map[string]*model.PlayerRatingState
	newState NewStateFunc
	baseline float64
}

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithBaseline sets the default team strength used when a roster has no
// rated members.
func WithBaseline(baseline float64) Option {
	return func(l *Ledger) {
		if baseline > 0 {
			l.baseline = baseline
		}
	}
}

// New creates an empty ledger. newState must not be nil.
func New(newState NewStateFunc, opts ...Option) *Ledger {
	l := &Ledger{
		states:   make(map[string]*model.PlayerRatingState),
		newState: newState,
		baseline: 1200,
	}

	// Apply all options
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Touch returns the state for playerID, creating it lazily on first sight.
// The display name is snapshotted at creation and never overwritten.
func (l *Ledger) Touch(playerID, displayName string) *model.PlayerRatingState {
	if s, ok := l.states[playerID]; ok {
		return s
	}
	s := l.newState(playerID, displayName)
	l.states[playerID] = s
	return s
}

// Get returns the state for playerID if present.
func (l *Ledger) Get(playerID string) (*model.PlayerRatingState, bool) {
	s, ok := l.states[playerID]
	return s, ok
}

// Len returns the number of players tracked.
func (l *Ledger) Len() int {
	return len(l.states)
}

// States returns every tracked state ordered by player id. The slice is
// rebuilt per call; the states themselves are shared, not copied.
func (l *Ledger) States() []*model.PlayerRatingState {
	out := make([]*model.PlayerRatingState, 0, len(l.states))
	for _, s := range l.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

// Snapshot captures the current means for strength evaluation. Games within
// one round read strengths from the snapshot taken at round start, so their
// deltas do not feed each other.
func (l *Ledger) Snapshot() Snapshot {
	mus := make(map[string]float64, len(l.states))
	for id, s := range l.states {
		mus[id] = s.Mu
	}
	return Snapshot{mus: mus, baseline: l.baseline}
}

// Snapshot is an immutable view of player means at one instant.
type Snapshot struct {
	mus      map[string]float64
	baseline float64
}

// Strength aggregates a roster into one team strength: the average mean of
// its rated members. A roster with no rated members yields the baseline.
func (s Snapshot) Strength(playerIDs []string) float64 {
	sum := 0.0
	n := 0
	for _, id := range playerIDs {
		if mu, ok := s.mus[id]; ok {
			sum += mu
			n++
		}
	}
	if n == 0 {
		return s.baseline
	}
	return sum / float64(n)
}
