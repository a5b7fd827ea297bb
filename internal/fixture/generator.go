// Package fixture generates deterministic synthetic league datasets for
// local runs and benchmarks. The same seed always yields the same
// seasons, rosters and scores.
package fixture

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/openrec/skillrank/internal/adapters/store"
	"github.com/openrec/skillrank/internal/domain/model"
)

// Config controls the shape of the generated league.
type Config struct {
	// Seed drives the deterministic random source.
	Seed int64

	// Seasons is the number of consecutive seasons to generate.
	Seasons int

	// Teams is the number of teams in the league. Odd counts leave one
	// team idle per round.
	Teams int

	// PlayersPerTeam is the fixed roster size.
	PlayersPerTeam int

	// RoundsPerSeason is the number of weekly rounds in each season.
	RoundsPerSeason int

	// PlayoffRounds marks the final rounds of each season as playoffs.
	PlayoffRounds int

	// MalformedGames adds games with a missing score, to exercise the
	// exclusion path downstream.
	MalformedGames int

	// Start is the first season's start date.
	Start time.Time
}

const maxGoals = 7

var firstNames = []string{
	"Alex", "Bailey", "Casey", "Drew", "Emerson", "Finley", "Harper",
	"Jordan", "Kendall", "Logan", "Morgan", "Parker", "Quinn", "Riley",
	"Sawyer", "Taylor",
}

var lastNames = []string{
	"Adams", "Brooks", "Carter", "Diaz", "Ellis", "Foster", "Garcia",
	"Hayes", "Ibarra", "Jensen", "Kim", "Lopez", "Murphy", "Nguyen",
	"Ortiz", "Price",
}

// Generate builds a complete dataset from cfg.
func Generate(cfg Config) store.Dataset {
	rng := rand.New(rand.NewSource(cfg.Seed))

	ds := store.Dataset{
		Rosters: make(map[string][]string),
		Players: make(map[string]string),
	}

	teamIDs := make([]string, cfg.Teams)
	for t := 0; t < cfg.Teams; t++ {
		teamID := fmt.Sprintf("team-%02d", t+1)
		teamIDs[t] = teamID

		roster := make([]string, cfg.PlayersPerTeam)
		for p := 0; p < cfg.PlayersPerTeam; p++ {
			playerID := fmt.Sprintf("player-%02d-%02d", t+1, p+1)
			roster[p] = playerID
			ds.Players[playerID] = randomName(rng)
		}
		ds.Rosters[teamID] = roster
	}

	start := cfg.Start
	for s := 0; s < cfg.Seasons; s++ {
		seasonID := fmt.Sprintf("season-%d", s+1)
		ds.Seasons = append(ds.Seasons, model.Season{
			ID:       seasonID,
			Name:     fmt.Sprintf("Season %d", s+1),
			StartsAt: start,
		})

		for r := 0; r < cfg.RoundsPerSeason; r++ {
			kickoff := start.AddDate(0, 0, 7*r)
			gameType := model.GameTypeRegular
			if r >= cfg.RoundsPerSeason-cfg.PlayoffRounds {
				gameType = model.GameTypePlayoff
			}

			// Random pairings: shuffle and match consecutive teams.
			order := rng.Perm(cfg.Teams)
			for i := 0; i+1 < len(order); i += 2 {
				ds.Games = append(ds.Games, randomGame(rng, model.Game{
					ID:          fmt.Sprintf("game-%s-r%02d-%d", seasonID, r+1, i/2+1),
					HomeTeamID:  teamIDs[order[i]],
					AwayTeamID:  teamIDs[order[i+1]],
					ScheduledAt: kickoff,
					SeasonID:    seasonID,
					Type:        gameType,
				}))
			}
		}

		// Next season starts after this one ends.
		start = start.AddDate(0, 0, 7*cfg.RoundsPerSeason+14)
	}

	for i := 0; i < cfg.MalformedGames && len(ds.Seasons) > 0 && cfg.Teams > 1; i++ {
		season := ds.Seasons[rng.Intn(len(ds.Seasons))]
		ds.Games = append(ds.Games, model.Game{
			ID:          fmt.Sprintf("game-unscored-%d", i+1),
			HomeTeamID:  teamIDs[i%cfg.Teams],
			AwayTeamID:  teamIDs[(i+1)%cfg.Teams],
			ScheduledAt: season.StartsAt.AddDate(0, 0, rng.Intn(7*cfg.RoundsPerSeason)),
			SeasonID:    season.ID,
			Type:        model.GameTypeRegular,
		})
	}

	return ds
}

// randomGame fills in a decisive score. Draws are rerolled because the
// league settles ties on the field.
func randomGame(rng *rand.Rand, g model.Game) model.Game {
	home := rng.Intn(maxGoals + 1)
	away := rng.Intn(maxGoals + 1)
	for home == away {
		away = rng.Intn(maxGoals + 1)
	}
	g.HomeScore = &home
	g.AwayScore = &away
	return g
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}
