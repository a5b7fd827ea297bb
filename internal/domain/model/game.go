// Package model contains domain models passed between layers.
package model

import "time"

// GameType distinguishes regular-season games from elimination games.
type GameType string

// Known game types.
const (
	GameTypeRegular GameType = "regular"
	GameTypePlayoff GameType = "playoff"
)

// Season identifies one league season. Seasons are handed to the loader
// ordered by start date descending (most recent first).
type Season struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at"`
}

// Game represents a single scheduled game. It is an immutable input to the
// engine; score corrections happen upstream.
type Game struct {
	ID          string    `json:"id"`
	HomeTeamID  string    `json:"home_team_id"`
	AwayTeamID  string    `json:"away_team_id"`
	HomeScore   *int      `json:"home_score"`
	AwayScore   *int      `json:"away_score"`
	ScheduledAt time.Time `json:"scheduled_at"`
	SeasonID    string    `json:"season_id"`
	Type        GameType  `json:"type"`

	// SeasonOrder is the 0-based recency index of the game's season
	// (0 = most recent). Derived by the loader, never stored upstream.
	SeasonOrder int `json:"season_order,omitempty"`

	// RoundKey groups games sharing the identical scheduled start time.
	// Derived by the loader from ScheduledAt.
	RoundKey string `json:"round_key,omitempty"`
}

// HasResult reports whether both scores are present.
func (g *Game) HasResult() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// HasTeams reports whether both team references are present and distinct.
func (g *Game) HasTeams() bool {
	return g.HomeTeamID != "" && g.AwayTeamID != "" && g.HomeTeamID != g.AwayTeamID
}

// Rateable reports whether the game can be fed to the rating algorithm.
func (g *Game) Rateable() bool {
	return g.HasResult() && g.HasTeams()
}

// HomeWon reports whether the home team won. Draws do not occur in this
// domain, so the comparison is strict.
func (g *Game) HomeWon() bool {
	return g.HomeScore != nil && g.AwayScore != nil && *g.HomeScore > *g.AwayScore
}

// Round is the maximal set of games sharing one scheduled start time. It is
// the atomic unit of sequential processing and decay.
type Round struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	Games        []Game    `json:"games"`
	Calculated   bool      `json:"calculated"`
	CalculatedAt time.Time `json:"calculated_at,omitempty"`
	GameCount    int       `json:"game_count"`
}

// MarkCalculated stamps the round as processed and returns the persisted
// marker derived from it.
func (r *Round) MarkCalculated(now time.Time) RoundRecord {
	r.Calculated = true
	r.CalculatedAt = now
	return RoundRecord{
		RoundID:      r.ID,
		CalculatedAt: now,
		GameCount:    r.GameCount,
	}
}

// RoundRecord is the persisted marker for a processed round.
type RoundRecord struct {
	RoundID      string    `json:"round_id"`
	CalculatedAt time.Time `json:"calculated_at"`
	GameCount    int       `json:"game_count"`
}
