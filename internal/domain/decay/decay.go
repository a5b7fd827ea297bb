// Package decay applies the per-round gravity pulling every known player's
// rating toward the baseline. The pull is asymmetric: staying above average
// is only rewarded while playing, and recovery from below average is only
// fast while playing.
package decay

import (
	"github.com/openrec/skillrank/internal/domain/model"
)

// Default decay configuration constants.
const (
	defaultBaseline    = 1200.0
	defaultSlowFactor  = 0.98
	defaultFastFactor  = 0.90
	defaultSigmaGrowth = 6.0
	defaultSigmaMax    = 350.0
)

// Decayer applies baseline gravity and uncertainty growth once per round.
type Decayer struct {
	baseline    float64
	slowFactor  float64
	fastFactor  float64
	sigmaGrowth float64
	sigmaMax    float64
}

// Option applies a configuration option to the Decayer.
type Option func(*Decayer)

// WithBaseline sets the rating baseline the gravity pulls toward.
func WithBaseline(baseline float64) Option {
	return func(d *Decayer) {
		if baseline > 0 {
			d.baseline = baseline
		}
	}
}

// WithFactors sets the slow and fast decay factors. Both must be in (0,1)
// and slow must not decay harder than fast.
func WithFactors(slow, fast float64) Option {
	return func(d *Decayer) {
		if slow > 0 && slow < 1 && fast > 0 && fast < 1 && fast <= slow {
			d.slowFactor = slow
			d.fastFactor = fast
		}
	}
}

// WithSigmaGrowth sets the per-round uncertainty growth for inactive players.
func WithSigmaGrowth(growth float64) Option {
	return func(d *Decayer) {
		if growth > 0 {
			d.sigmaGrowth = growth
		}
	}
}

// WithSigmaMax caps how large an inactive player's uncertainty can grow.
func WithSigmaMax(maxSigma float64) Option {
	return func(d *Decayer) {
		if maxSigma > 0 {
			d.sigmaMax = maxSigma
		}
	}
}

// New creates a Decayer with configuration options.
func New(opts ...Option) *Decayer {
	d := &Decayer{
		baseline:    defaultBaseline,
		slowFactor:  defaultSlowFactor,
		fastFactor:  defaultFastFactor,
		sigmaGrowth: defaultSigmaGrowth,
		sigmaMax:    defaultSigmaMax,
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Baseline returns the configured baseline.
func (d *Decayer) Baseline() float64 { return d.baseline }

// Factor selects the decay factor for one player-round:
//
//	above baseline, active   -> slow decay (keep the earned advantage)
//	above baseline, inactive -> fast decay (erode the unearned advantage)
//	below baseline, active   -> fast recovery (reward participation)
//	below baseline, inactive -> slow recovery (penalize absence)
func (d *Decayer) Factor(mu float64, active bool) float64 {
	above := mu >= d.baseline
	if above == active {
		return d.slowFactor
	}
	return d.fastFactor
}

// ApplyRound pulls every state toward the baseline and adjusts uncertainty
// and activity counters. It must be invoked with the full ledger, not just
// the round's participants: inactive players decay too, and active players
// have their absence counter reset here.
func (d *Decayer) ApplyRound(states []*model.PlayerRatingState, active map[string]bool) {
	for _, s := range states {
		isActive := active[s.PlayerID]

		delta := s.Mu - d.baseline
		s.Mu = d.baseline + delta*d.Factor(s.Mu, isActive)

		if isActive {
			s.RoundsSinceLastGame = 0
			continue
		}
		s.RoundsSinceLastGame++
		s.Sigma += d.sigmaGrowth
		if s.Sigma > d.sigmaMax {
			s.Sigma = d.sigmaMax
		}
	}
}
