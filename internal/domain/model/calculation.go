package model

import "time"

// RunType distinguishes a full recomputation from an incremental continuation.
type RunType string

// Known run types.
const (
	RunTypeFull        RunType = "full"
	RunTypeIncremental RunType = "incremental"
)

// RunStatus is the lifecycle status of a calculation run.
type RunStatus string

// Known run statuses.
const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Progress describes how far a running calculation has advanced.
type Progress struct {
	CurrentStep     string  `json:"current_step"`
	PercentComplete float64 `json:"percent_complete"`
	RoundsTotal     int     `json:"rounds_total"`
	RoundsProcessed int     `json:"rounds_processed"`
	SeasonsTotal    int     `json:"seasons_total"`
	GamesProcessed  int     `json:"games_processed"`
	GamesSkipped    int     `json:"games_skipped"`
}

// Parameters echoes the exact numeric configuration a run was executed with,
// so exported rankings are reproducible.
type Parameters struct {
	Algorithm         string  `json:"algorithm"`
	Baseline          float64 `json:"baseline"`
	InitialSigma      float64 `json:"initial_sigma"`
	SigmaFloor        float64 `json:"sigma_floor"`
	SigmaShrink       float64 `json:"sigma_shrink"`
	SigmaGrowth       float64 `json:"sigma_growth"`
	SigmaMax          float64 `json:"sigma_max"`
	BaseRate          float64 `json:"base_rate"`
	RatingScale       float64 `json:"rating_scale"`
	SeasonDecayFactor float64 `json:"season_decay_factor"`
	PlayoffMultiplier float64 `json:"playoff_multiplier"`
	DecaySlowFactor   float64 `json:"decay_slow_factor"`
	DecayFastFactor   float64 `json:"decay_fast_factor"`
}

// SkippedGame records one game excluded from rating, for diagnostics.
type SkippedGame struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

// CalculationState tracks one calculation run from start to terminal state.
type CalculationState struct {
	ID          string        `json:"id"`
	Type        RunType       `json:"type"`
	Status      RunStatus     `json:"status"`
	StartedAt   time.Time     `json:"started_at,omitempty"`
	CompletedAt time.Time     `json:"completed_at,omitempty"`
	Progress    Progress      `json:"progress"`
	Parameters  Parameters    `json:"parameters"`
	Error       string        `json:"error,omitempty"`
	Skipped     []SkippedGame `json:"skipped,omitempty"`
}

// MarkRunning transitions the state to running and stamps the start time.
func (c *CalculationState) MarkRunning(now time.Time) {
	c.Status = StatusRunning
	c.StartedAt = now
}

// MarkCompleted transitions the state to its terminal completed status.
func (c *CalculationState) MarkCompleted(now time.Time) {
	c.Status = StatusCompleted
	c.CompletedAt = now
	c.Progress.PercentComplete = 100
	c.Progress.CurrentStep = "completed"
}

// MarkFailed transitions the state to its terminal failed status, retaining
// partial progress for diagnostics.
func (c *CalculationState) MarkFailed(now time.Time, err error) {
	c.Status = StatusFailed
	c.CompletedAt = now
	if err != nil {
		c.Error = err.Error()
	}
}

// Terminal reports whether the state can no longer change.
func (c *CalculationState) Terminal() bool {
	return c.Status == StatusCompleted || c.Status == StatusFailed
}
