package engine

import (
	"context"
	"fmt"

	"github.com/openrec/skillrank/internal/domain/schedule"
)

// graph holds every roster and display name a schedule references,
// resolved up front so the round loop never touches the sources.
type graph struct {
	rosters map[string][]string
	names   map[string]string
}

// resolve bulk-loads the rosters and player names referenced by sched.
// Any missing reference aborts the run with ErrMissingData.
func (e *Engine) resolve(ctx context.Context, sched *schedule.Schedule) (*graph, error) {
	g := &graph{
		rosters: make(map[string][]string),
		names:   make(map[string]string),
	}

	for i := range sched.Rounds {
		for j := range sched.Rounds[i].Games {
			game := &sched.Rounds[i].Games[j]
			for _, teamID := range []string{game.HomeTeamID, game.AwayTeamID} {
				if _, ok := g.rosters[teamID]; ok {
					continue
				}
				roster, err := e.rosters.Roster(ctx, teamID)
				if err != nil {
					return nil, fmt.Errorf("%w: roster for team %q: %v", ErrMissingData, teamID, err)
				}
				g.rosters[teamID] = roster
			}
		}
	}

	for _, roster := range g.rosters {
		for _, playerID := range roster {
			if _, ok := g.names[playerID]; ok {
				continue
			}
			name, err := e.players.DisplayName(ctx, playerID)
			if err != nil {
				return nil, fmt.Errorf("%w: display name for player %q: %v", ErrMissingData, playerID, err)
			}
			g.names[playerID] = name
		}
	}

	return g, nil
}
