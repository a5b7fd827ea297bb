// Package schedule assembles the chronological round schedule for a
// calculation run: it assigns each game its season recency order, derives
// round keys, and groups games into rounds sorted oldest-first.
package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/openrec/skillrank/internal/domain/model"
)

// Skip reasons reported for games excluded from rating.
const (
	ReasonMissingScore = "missing_score"
	ReasonMissingTeam  = "missing_team"
)

// Schedule is the fully resolved, ordered input to the round processor.
type Schedule struct {
	// Rounds are sorted ascending by start time. Every rateable game
	// belongs to exactly one round.
	Rounds []model.Round

	// Seasons included in the schedule, most recent first.
	Seasons []model.Season

	// Excluded lists games dropped from rating, for diagnostics.
	Excluded []model.SkippedGame
}

// TotalGames returns the number of rateable games across all rounds.
func (s *Schedule) TotalGames() int {
	n := 0
	for i := range s.Rounds {
		n += len(s.Rounds[i].Games)
	}
	return n
}

// Builder builds Schedules from raw season and game lists.
type Builder struct {
	// seasonDepth limits how many most-recent seasons are included.
	// 0 means all seasons.
	seasonDepth int
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSeasonDepth limits the schedule to the n most recent seasons.
// Zero or negative means no limit.
func WithSeasonDepth(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.seasonDepth = n
		}
	}
}

// NewBuilder creates a schedule builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}

	// Apply all options
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build partitions games into rounds. Games with a missing score or team
// reference are excluded from rounds and reported in Schedule.Excluded.
// Two games share a round iff their scheduled start timestamps are identical.
func (b *Builder) Build(ctx context.Context, seasons []model.Season, games []model.Game) (*Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("schedule build cancelled: %w", err)
	}
	if len(seasons) == 0 {
		return nil, ErrNoSeasons
	}

	// Most recent season first; seasonOrder 0 = most recent.
	ordered := make([]model.Season, len(seasons))
	copy(ordered, seasons)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartsAt.After(ordered[j].StartsAt)
	})
	if b.seasonDepth > 0 && len(ordered) > b.seasonDepth {
		ordered = ordered[:b.seasonDepth]
	}

	seasonOrder := make(map[string]int, len(ordered))
	for i, s := range ordered {
		seasonOrder[s.ID] = i
	}

	sched := &Schedule{Seasons: ordered}
	byStart := make(map[int64][]model.Game)

	for _, g := range games {
		order, ok := seasonOrder[g.SeasonID]
		if !ok {
			// Game belongs to a season beyond the depth limit.
			continue
		}

		switch {
		case !g.HasTeams():
			sched.Excluded = append(sched.Excluded, model.SkippedGame{GameID: g.ID, Reason: ReasonMissingTeam})
			continue
		case !g.HasResult():
			sched.Excluded = append(sched.Excluded, model.SkippedGame{GameID: g.ID, Reason: ReasonMissingScore})
			continue
		}

		g.SeasonOrder = order
		g.RoundKey = RoundKey(g.ScheduledAt)
		key := g.ScheduledAt.UTC().UnixNano()
		byStart[key] = append(byStart[key], g)
	}

	sched.Rounds = make([]model.Round, 0, len(byStart))
	for _, group := range byStart {
		// Deterministic game order inside a round.
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		sched.Rounds = append(sched.Rounds, model.Round{
			ID:        group[0].RoundKey,
			StartTime: group[0].ScheduledAt,
			Games:     group,
			GameCount: len(group),
		})
	}
	sort.Slice(sched.Rounds, func(i, j int) bool {
		return sched.Rounds[i].StartTime.Before(sched.Rounds[j].StartTime)
	})

	return sched, nil
}
