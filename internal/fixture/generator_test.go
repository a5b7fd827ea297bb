package fixture

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func baseConfig() Config {
	return Config{
		Seed:            42,
		Seasons:         2,
		Teams:           6,
		PlayersPerTeam:  5,
		RoundsPerSeason: 8,
		PlayoffRounds:   2,
		Start:           time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a fixture configuration", t, func() {
		cfg := baseConfig()

		Convey("When a dataset is generated", func() {
			ds := Generate(cfg)

			Convey("Then it has the requested shape", func() {
				So(ds.Seasons, ShouldHaveLength, 2)
				So(ds.Rosters, ShouldHaveLength, 6)
				So(ds.Players, ShouldHaveLength, 30)
				// 3 games per round, 8 rounds, 2 seasons.
				So(ds.Games, ShouldHaveLength, 48)
			})

			Convey("Then every game is decisive and complete", func() {
				for _, g := range ds.Games {
					So(g.HomeScore, ShouldNotBeNil)
					So(g.AwayScore, ShouldNotBeNil)
					So(*g.HomeScore, ShouldNotEqual, *g.AwayScore)
					So(g.HomeTeamID, ShouldNotEqual, g.AwayTeamID)
					So(ds.Rosters, ShouldContainKey, g.HomeTeamID)
					So(ds.Rosters, ShouldContainKey, g.AwayTeamID)
				}
			})

			Convey("Then the final rounds of each season are playoffs", func() {
				playoffs := 0
				for _, g := range ds.Games {
					if g.Type == "playoff" {
						playoffs++
					}
				}
				// 3 games per playoff round, 2 rounds, 2 seasons.
				So(playoffs, ShouldEqual, 12)
			})

			Convey("Then seasons do not overlap", func() {
				So(ds.Seasons[1].StartsAt.After(ds.Seasons[0].StartsAt), ShouldBeTrue)
			})
		})

		Convey("When the same seed is used twice", func() {
			first := Generate(cfg)
			second := Generate(cfg)

			Convey("Then the datasets are identical", func() {
				So(second.Games, ShouldResemble, first.Games)
				So(second.Rosters, ShouldResemble, first.Rosters)
				So(second.Players, ShouldResemble, first.Players)
			})
		})

		Convey("When a different seed is used", func() {
			other := cfg
			other.Seed = 43

			first := Generate(cfg)
			second := Generate(other)

			Convey("Then the schedules differ", func() {
				So(second.Games, ShouldNotResemble, first.Games)
			})
		})

		Convey("When malformed games are requested", func() {
			cfg.MalformedGames = 3
			ds := Generate(cfg)

			Convey("Then unscored games are appended", func() {
				So(ds.Games, ShouldHaveLength, 51)

				unscored := 0
				for _, g := range ds.Games {
					if g.HomeScore == nil && g.AwayScore == nil {
						unscored++
					}
				}
				So(unscored, ShouldEqual, 3)
			})
		})
	})
}
