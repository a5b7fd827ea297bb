package rating

import (
	"math"

	"github.com/openrec/skillrank/internal/domain/model"
)

// GaussianRater implements Rater with a mean/uncertainty skill estimate.
// The expected outcome comes from the Gaussian win-probability curve over
// the strength difference; applying a game shrinks the updated players'
// uncertainty toward a floor.
type GaussianRater struct {
	settings
}

// NewGaussianRater creates a Gaussian rater with configuration options.
func NewGaussianRater(opts ...Option) *GaussianRater {
	r := &GaussianRater{settings: defaultSettings()}

	// Apply all options
	for _, opt := range opts {
		opt(&r.settings)
	}

	return r
}

// Name identifies the algorithm variant.
func (r *GaussianRater) Name() string { return AlgorithmGaussian }

// Baseline returns the configured baseline strength.
func (r *GaussianRater) Baseline() float64 { return r.baseline }

// NewState builds the initial state for a newly seen player.
func (r *GaussianRater) NewState(playerID, displayName string) *model.PlayerRatingState {
	return &model.PlayerRatingState{
		PlayerID:    playerID,
		DisplayName: displayName,
		Mu:          r.baseline,
		Sigma:       r.initialSigma,
	}
}

// Evaluate computes per-player deltas for one game from team strengths.
func (r *GaussianRater) Evaluate(g *model.Game, homeStrength, awayStrength float64) Update {
	diff := homeStrength - awayStrength
	// Gaussian CDF of the strength difference.
	expected := 0.5 * (1 + math.Erf(diff/(r.scale*math.Sqrt2)))
	return r.evaluate(g, expected)
}

// ApplyDelta shifts the mean and shrinks uncertainty toward the floor,
// reflecting increased confidence from having played.
func (r *GaussianRater) ApplyDelta(s *model.PlayerRatingState, delta float64) {
	s.Mu += delta
	s.Sigma = r.sigmaFloor + (s.Sigma-r.sigmaFloor)*r.sigmaShrink
	if s.Sigma < r.sigmaFloor {
		s.Sigma = r.sigmaFloor
	}
}
