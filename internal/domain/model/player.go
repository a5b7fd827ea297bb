package model

import "time"

// SeasonStats accumulates one player's results within a single season.
type SeasonStats struct {
	SeasonID string `json:"season_id"`
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// PlayerRatingState is the engine's central mutable entity. One state exists
// per player seen in any roster during a run; states are created lazily and
// never removed while the run lives.
type PlayerRatingState struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`

	// Mu is the skill estimate mean; Sigma is the uncertainty. The scalar
	// rating variant uses Mu alone and leaves Sigma at its initial value.
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`

	// TotalGames counts only games explicitly marked counted.
	TotalGames int `json:"total_games"`

	PerSeason    map[string]*SeasonStats `json:"per_season,omitempty"`
	LastSeasonID string                  `json:"last_season_id,omitempty"`
	LastGameAt   time.Time               `json:"last_game_at,omitempty"`

	// RoundsSinceLastGame is reset to 0 each round the player appears in a
	// roster and incremented otherwise.
	RoundsSinceLastGame int `json:"rounds_since_last_game"`
}

// RecordGame registers one counted game result for the player.
func (p *PlayerRatingState) RecordGame(seasonID string, won bool, playedAt time.Time) {
	p.TotalGames++
	if p.PerSeason == nil {
		p.PerSeason = make(map[string]*SeasonStats)
	}
	stats, ok := p.PerSeason[seasonID]
	if !ok {
		stats = &SeasonStats{SeasonID: seasonID}
		p.PerSeason[seasonID] = stats
	}
	stats.Games++
	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}
	p.LastSeasonID = seasonID
	if playedAt.After(p.LastGameAt) {
		p.LastGameAt = playedAt
	}
}

// TotalSeasons returns the number of seasons the player participated in.
func (p *PlayerRatingState) TotalSeasons() int {
	return len(p.PerSeason)
}

// PlayerRanking is the read-only export of a PlayerRatingState produced at
// run completion.
type PlayerRanking struct {
	PlayerID     string        `json:"player_id"`
	DisplayName  string        `json:"display_name"`
	Rating       float64       `json:"rating"`
	Sigma        float64       `json:"sigma"`
	Rank         int           `json:"rank"`
	TotalGames   int           `json:"total_games"`
	TotalSeasons int           `json:"total_seasons"`
	LastSeasonID string        `json:"last_season_id,omitempty"`
	PerSeason    []SeasonStats `json:"per_season,omitempty"`
}
