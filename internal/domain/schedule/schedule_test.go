package schedule_test

import (
	"context"
	"testing"
	"time"

	model "github.com/openrec/skillrank/internal/domain/model"
	schedule "github.com/openrec/skillrank/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func game(id, seasonID string, start time.Time) model.Game {
	return model.Game{
		ID:          id,
		HomeTeamID:  "team-a",
		AwayTeamID:  "team-b",
		HomeScore:   intPtr(10),
		AwayScore:   intPtr(5),
		ScheduledAt: start,
		SeasonID:    seasonID,
		Type:        model.GameTypeRegular,
	}
}

func TestBuilderBuild(t *testing.T) {
	Convey("Given a schedule builder and two seasons", t, func() {
		builder := schedule.NewBuilder()
		ctx := context.Background()

		seasons := []model.Season{
			{ID: "s-2024", StartsAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "s-2025", StartsAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		}

		night1 := time.Date(2024, 5, 6, 19, 0, 0, 0, time.UTC)
		night2 := time.Date(2025, 5, 5, 19, 0, 0, 0, time.UTC)

		games := []model.Game{
			game("g-3", "s-2025", night2),
			game("g-1", "s-2024", night1),
			game("g-2", "s-2024", night1),
		}

		Convey("When building the schedule", func() {
			sched, err := builder.Build(ctx, seasons, games)

			Convey("Then rounds should be grouped by identical start time and sorted oldest-first", func() {
				So(err, ShouldBeNil)
				So(sched.Rounds, ShouldHaveLength, 2)
				So(sched.Rounds[0].StartTime, ShouldEqual, night1)
				So(sched.Rounds[0].GameCount, ShouldEqual, 2)
				So(sched.Rounds[1].StartTime, ShouldEqual, night2)
				So(sched.Rounds[1].GameCount, ShouldEqual, 1)
			})

			Convey("And games inside a round should be ordered deterministically by id", func() {
				So(err, ShouldBeNil)
				So(sched.Rounds[0].Games[0].ID, ShouldEqual, "g-1")
				So(sched.Rounds[0].Games[1].ID, ShouldEqual, "g-2")
			})

			Convey("And seasonOrder should be 0 for the most recent season", func() {
				So(err, ShouldBeNil)
				So(sched.Rounds[1].Games[0].SeasonOrder, ShouldEqual, 0)
				So(sched.Rounds[0].Games[0].SeasonOrder, ShouldEqual, 1)
			})

			Convey("And every game should carry a round key matching its round id", func() {
				So(err, ShouldBeNil)
				for _, r := range sched.Rounds {
					for _, g := range r.Games {
						So(g.RoundKey, ShouldEqual, r.ID)
					}
				}
			})

			Convey("And round keys should be stable across rebuilds", func() {
				So(err, ShouldBeNil)
				again, err2 := builder.Build(ctx, seasons, games)
				So(err2, ShouldBeNil)
				So(again.Rounds[0].ID, ShouldEqual, sched.Rounds[0].ID)
				So(again.Rounds[1].ID, ShouldEqual, sched.Rounds[1].ID)
			})
		})

		Convey("When two games are on the same day but not the same instant", func() {
			early := time.Date(2025, 5, 5, 18, 0, 0, 0, time.UTC)
			late := time.Date(2025, 5, 5, 20, 0, 0, 0, time.UTC)
			sched, err := builder.Build(ctx, seasons, []model.Game{
				game("g-a", "s-2025", early),
				game("g-b", "s-2025", late),
			})

			Convey("Then they should land in separate rounds", func() {
				So(err, ShouldBeNil)
				So(sched.Rounds, ShouldHaveLength, 2)
			})
		})

		Convey("When games are malformed", func() {
			noScore := game("g-ns", "s-2025", night2)
			noScore.AwayScore = nil
			noTeam := game("g-nt", "s-2025", night2)
			noTeam.HomeTeamID = ""
			selfRef := game("g-sr", "s-2025", night2)
			selfRef.AwayTeamID = selfRef.HomeTeamID

			sched, err := builder.Build(ctx, seasons, []model.Game{noScore, noTeam, selfRef, game("g-ok", "s-2025", night2)})

			Convey("Then they should be excluded from rounds but reported", func() {
				So(err, ShouldBeNil)
				So(sched.Rounds, ShouldHaveLength, 1)
				So(sched.Rounds[0].GameCount, ShouldEqual, 1)
				So(sched.Excluded, ShouldHaveLength, 3)

				reasons := map[string]string{}
				for _, s := range sched.Excluded {
					reasons[s.GameID] = s.Reason
				}
				So(reasons["g-ns"], ShouldEqual, schedule.ReasonMissingScore)
				So(reasons["g-nt"], ShouldEqual, schedule.ReasonMissingTeam)
				So(reasons["g-sr"], ShouldEqual, schedule.ReasonMissingTeam)
			})
		})

		Convey("When a season depth limit is set", func() {
			limited := schedule.NewBuilder(schedule.WithSeasonDepth(1))
			sched, err := limited.Build(ctx, seasons, games)

			Convey("Then only games from the most recent season should remain", func() {
				So(err, ShouldBeNil)
				So(sched.Seasons, ShouldHaveLength, 1)
				So(sched.Seasons[0].ID, ShouldEqual, "s-2025")
				So(sched.Rounds, ShouldHaveLength, 1)
				So(sched.TotalGames(), ShouldEqual, 1)
			})
		})

		Convey("When no seasons are provided", func() {
			_, err := builder.Build(ctx, nil, games)

			Convey("Then it should return ErrNoSeasons", func() {
				So(err, ShouldEqual, schedule.ErrNoSeasons)
			})
		})
	})
}
