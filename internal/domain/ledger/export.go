package ledger

import (
	"sort"

	"github.com/openrec/skillrank/internal/domain/model"
)

// Rankings converts the ledger into the ranked export list: ordered by
// rating descending, ties broken by player id ascending. The conversion is
// one-way; mutating the result never touches the ledger.
func (l *Ledger) Rankings() []model.PlayerRanking {
	out := make([]model.PlayerRanking, 0, len(l.states))
	for _, s := range l.states {
		out = append(out, exportState(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Seed reconstructs ledger state from a persisted ranking snapshot,
// preserving rating, uncertainty, game and season totals exactly. It is
// the inverse of Rankings up to rank assignment.
func (l *Ledger) Seed(rankings []model.PlayerRanking) {
	for i := range rankings {
		r := &rankings[i]
		s := &model.PlayerRatingState{
			PlayerID:     r.PlayerID,
			DisplayName:  r.DisplayName,
			Mu:           r.Rating,
			Sigma:        r.Sigma,
			TotalGames:   r.TotalGames,
			LastSeasonID: r.LastSeasonID,
		}
		if len(r.PerSeason) > 0 {
			s.PerSeason = make(map[string]*model.SeasonStats, len(r.PerSeason))
			for _, stats := range r.PerSeason {
				copied := stats
				s.PerSeason[stats.SeasonID] = &copied
			}
		}
		l.states[r.PlayerID] = s
	}
}

func exportState(s *model.PlayerRatingState) model.PlayerRanking {
	r := model.PlayerRanking{
		PlayerID:     s.PlayerID,
		DisplayName:  s.DisplayName,
		Rating:       s.Mu,
		Sigma:        s.Sigma,
		TotalGames:   s.TotalGames,
		TotalSeasons: s.TotalSeasons(),
		LastSeasonID: s.LastSeasonID,
	}
	if len(s.PerSeason) > 0 {
		r.PerSeason = make([]model.SeasonStats, 0, len(s.PerSeason))
		for _, stats := range s.PerSeason {
			r.PerSeason = append(r.PerSeason, *stats)
		}
		sort.Slice(r.PerSeason, func(i, j int) bool {
			return r.PerSeason[i].SeasonID < r.PerSeason[j].SeasonID
		})
	}
	return r
}
