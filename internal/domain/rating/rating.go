// Package rating implements the pairwise skill-update rule applied to one
// game between two teams. Two variants exist: a Gaussian mean/uncertainty
// rater and a scalar Elo-style fallback. Every player rostered on the
// winning side receives the identical positive delta and every player on
// the losing side the identical negative delta; there is no per-player
// box-score weighting in this domain.
package rating

import (
	"math"

	"github.com/openrec/skillrank/internal/domain/model"
)

// Default rating configuration constants.
const (
	defaultBaseline          = 1200.0
	defaultInitialSigma      = 200.0
	defaultSigmaFloor        = 40.0
	defaultSigmaShrink       = 0.94
	defaultBaseRate          = 32.0
	defaultScale             = 400.0
	defaultSeasonDecayFactor = 0.82
	defaultPlayoffMultiplier = 1.8
)

// Algorithm names accepted by New.
const (
	AlgorithmGaussian = "gaussian"
	AlgorithmScalar   = "scalar"
)

// settings holds the numeric knobs shared by both rater variants.
type settings struct {
	baseline          float64
	initialSigma      float64
	sigmaFloor        float64
	sigmaShrink       float64
	baseRate          float64
	scale             float64
	seasonDecayFactor float64
	playoffMultiplier float64
}

func defaultSettings() settings {
	return settings{
		baseline:          defaultBaseline,
		initialSigma:      defaultInitialSigma,
		sigmaFloor:        defaultSigmaFloor,
		sigmaShrink:       defaultSigmaShrink,
		baseRate:          defaultBaseRate,
		scale:             defaultScale,
		seasonDecayFactor: defaultSeasonDecayFactor,
		playoffMultiplier: defaultPlayoffMultiplier,
	}
}

// Option applies a configuration option to a rater.
type Option func(*settings)

// WithBaseline sets the baseline rating used for new players and empty teams.
func WithBaseline(baseline float64) Option {
	return func(s *settings) {
		if baseline > 0 {
			s.baseline = baseline
		}
	}
}

// WithInitialSigma sets the uncertainty assigned to newly seen players.
func WithInitialSigma(sigma float64) Option {
	return func(s *settings) {
		if sigma > 0 {
			s.initialSigma = sigma
		}
	}
}

// WithSigmaFloor sets the minimum uncertainty a player can shrink to.
func WithSigmaFloor(floor float64) Option {
	return func(s *settings) {
		if floor > 0 {
			s.sigmaFloor = floor
		}
	}
}

// WithSigmaShrink sets the per-game shrink factor applied to uncertainty.
func WithSigmaShrink(shrink float64) Option {
	return func(s *settings) {
		if shrink > 0 && shrink < 1 {
			s.sigmaShrink = shrink
		}
	}
}

// WithBaseRate sets the base learning rate (the K factor).
func WithBaseRate(rate float64) Option {
	return func(s *settings) {
		if rate > 0 {
			s.baseRate = rate
		}
	}
}

// WithScale sets the rating-difference scale of the win-probability curve.
func WithScale(scale float64) Option {
	return func(s *settings) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithSeasonDecayFactor sets the exponential weight applied per season of age.
func WithSeasonDecayFactor(factor float64) Option {
	return func(s *settings) {
		if factor > 0 && factor <= 1 {
			s.seasonDecayFactor = factor
		}
	}
}

// WithPlayoffMultiplier sets the learning-rate multiplier for playoff games.
func WithPlayoffMultiplier(mult float64) Option {
	return func(s *settings) {
		if mult >= 1 {
			s.playoffMultiplier = mult
		}
	}
}

// Update is the outcome of evaluating one game. HomeDelta is applied
// identically to every home-roster player, AwayDelta to every away-roster
// player; the two are always equal in magnitude and opposite in sign.
type Update struct {
	ExpectedHome float64
	HomeDelta    float64
	AwayDelta    float64
}

// Rater evaluates games and mutates player rating states.
type Rater interface {
	// Name identifies the algorithm variant.
	Name() string

	// NewState builds the initial rating state for a newly seen player.
	NewState(playerID, displayName string) *model.PlayerRatingState

	// Evaluate computes the per-player deltas for one game given the two
	// aggregate team strengths. It does not mutate anything.
	Evaluate(g *model.Game, homeStrength, awayStrength float64) Update

	// ApplyDelta applies one delta to a player state, adjusting
	// uncertainty as the variant prescribes.
	ApplyDelta(s *model.PlayerRatingState, delta float64)

	// Baseline returns the configured baseline strength.
	Baseline() float64
}

// New builds a Rater for the named algorithm.
func New(algorithm string, opts ...Option) (Rater, error) {
	switch algorithm {
	case AlgorithmGaussian, "":
		return NewGaussianRater(opts...), nil
	case AlgorithmScalar:
		return NewScalarRater(opts...), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// learningRate combines the base rate with season-age decay and the playoff
// multiplier for one game.
func (s *settings) learningRate(g *model.Game) float64 {
	rate := s.baseRate * math.Pow(s.seasonDecayFactor, float64(g.SeasonOrder))
	if g.Type == model.GameTypePlayoff {
		rate *= s.playoffMultiplier
	}
	return rate
}

// evaluate derives the symmetric home/away deltas from an expected home win
// probability.
func (s *settings) evaluate(g *model.Game, expectedHome float64) Update {
	actualHome := 0.0
	if g.HomeWon() {
		actualHome = 1.0
	}
	delta := s.learningRate(g) * (actualHome - expectedHome)
	return Update{
		ExpectedHome: expectedHome,
		HomeDelta:    delta,
		AwayDelta:    -delta,
	}
}
