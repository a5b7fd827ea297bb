// Command gen-season writes a deterministic synthetic league dataset to
// a JSON file, for local engine runs and benchmarks.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/openrec/skillrank/internal/adapters/store"
	"github.com/openrec/skillrank/internal/fixture"
)

// Default generation constants.
const (
	defaultSeed         = 1
	defaultSeasons      = 3
	defaultTeams        = 8
	defaultRosterSize   = 7
	defaultRounds       = 10
	defaultPlayoffs     = 2
	defaultStartDate    = "2025-09-06"
	startDateLayout     = "2006-01-02"
	defaultOutput       = "dataset.json"
	defaultMalformedGen = 0
)

func main() {
	var (
		seed      = flag.Int64("seed", defaultSeed, "Random seed; the same seed always produces the same dataset")
		seasons   = flag.Int("seasons", defaultSeasons, "Number of consecutive seasons")
		teams     = flag.Int("teams", defaultTeams, "Number of teams in the league")
		roster    = flag.Int("roster", defaultRosterSize, "Players per team")
		rounds    = flag.Int("rounds", defaultRounds, "Rounds per season")
		playoffs  = flag.Int("playoffs", defaultPlayoffs, "Final rounds per season played as playoffs")
		malformed = flag.Int("malformed", defaultMalformedGen, "Unscored games to include")
		startStr  = flag.String("start", defaultStartDate, "First season start date (YYYY-MM-DD)")
		output    = flag.String("output", defaultOutput, "Output file path")
	)
	flag.Parse()

	start, err := time.Parse(startDateLayout, *startStr)
	if err != nil {
		os.Stderr.WriteString("invalid start date: " + err.Error() + "\n")
		os.Exit(1)
	}

	ds := fixture.Generate(fixture.Config{
		Seed:            *seed,
		Seasons:         *seasons,
		Teams:           *teams,
		PlayersPerTeam:  *roster,
		RoundsPerSeason: *rounds,
		PlayoffRounds:   *playoffs,
		MalformedGames:  *malformed,
		Start:           start,
	})

	if err := store.WriteFile(*output, ds); err != nil {
		os.Stderr.WriteString("failed to write dataset: " + err.Error() + "\n")
		os.Exit(1)
	}
}
