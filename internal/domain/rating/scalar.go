package rating

import (
	"math"

	"github.com/openrec/skillrank/internal/domain/model"
)

// ScalarRater implements Rater with a single scalar rating per player, the
// classic logistic expected-score curve. Uncertainty is carried but never
// shrunk by game results.
type ScalarRater struct {
	settings
}

// NewScalarRater creates a scalar rater with configuration options.
func NewScalarRater(opts ...Option) *ScalarRater {
	r := &ScalarRater{settings: defaultSettings()}

	// Apply all options
	for _, opt := range opts {
		opt(&r.settings)
	}

	return r
}

// Name identifies the algorithm variant.
func (r *ScalarRater) Name() string { return AlgorithmScalar }

// Baseline returns the configured baseline strength.
func (r *ScalarRater) Baseline() float64 { return r.baseline }

// NewState builds the initial state for a newly seen player.
func (r *ScalarRater) NewState(playerID, displayName string) *model.PlayerRatingState {
	return &model.PlayerRatingState{
		PlayerID:    playerID,
		DisplayName: displayName,
		Mu:          r.baseline,
		Sigma:       r.initialSigma,
	}
}

// Evaluate computes per-player deltas for one game from team strengths.
func (r *ScalarRater) Evaluate(g *model.Game, homeStrength, awayStrength float64) Update {
	// Logistic expected score: a team rated `scale` points higher is
	// expected to win ten times as often.
	expected := 1.0 / (1.0 + math.Pow(10, (awayStrength-homeStrength)/r.scale))
	return r.evaluate(g, expected)
}

// ApplyDelta shifts the scalar rating; uncertainty is left untouched.
func (r *ScalarRater) ApplyDelta(s *model.PlayerRatingState, delta float64) {
	s.Mu += delta
}
