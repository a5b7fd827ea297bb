// Package engine runs rating calculations: it loads seasons and games,
// partitions them into rounds, replays the rounds through the configured
// rating algorithm and decay model, and publishes the resulting rankings.
package engine

import (
	"context"
	"time"

	"github.com/openrec/skillrank/internal/adapters/checkpoint"
	"github.com/openrec/skillrank/internal/domain/decay"
	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/internal/domain/rating"
	"github.com/openrec/skillrank/internal/domain/schedule"
	"github.com/openrec/skillrank/pkg/logger"
)

// GameSource supplies the seasons and games to rate.
type GameSource interface {
	Seasons(ctx context.Context) ([]model.Season, error)
	Games(ctx context.Context, seasonIDs []string) ([]model.Game, error)
}

// RosterSource resolves a team to its player IDs.
type RosterSource interface {
	Roster(ctx context.Context, teamID string) ([]string, error)
}

// PlayerSource resolves a player ID to a display name.
type PlayerSource interface {
	DisplayName(ctx context.Context, playerID string) (string, error)
}

// ProgressRecorder accepts advisory progress records without blocking.
type ProgressRecorder interface {
	Record(ctx context.Context, state *model.CalculationState) bool
}

// Engine executes calculation runs against a fixed set of sources.
type Engine struct {
	// Data sources
	games       GameSource
	rosters     RosterSource
	players     PlayerSource
	checkpoints checkpoint.Store

	// Calculation components
	rater    rating.Rater
	decayer  *decay.Decayer
	builder  *schedule.Builder
	progress ProgressRecorder

	// Configuration
	params model.Parameters
	now    func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRater sets the rating algorithm.
func WithRater(r rating.Rater) Option {
	return func(e *Engine) {
		if r != nil {
			e.rater = r
		}
	}
}

// WithDecayer sets the baseline decay model.
func WithDecayer(d *decay.Decayer) Option {
	return func(e *Engine) {
		if d != nil {
			e.decayer = d
		}
	}
}

// WithScheduleBuilder sets the schedule builder.
func WithScheduleBuilder(b *schedule.Builder) Option {
	return func(e *Engine) {
		if b != nil {
			e.builder = b
		}
	}
}

// WithProgressRecorder sets the async progress recorder. Without one,
// progress is saved synchronously through the checkpoint store.
func WithProgressRecorder(p ProgressRecorder) Option {
	return func(e *Engine) {
		if p != nil {
			e.progress = p
		}
	}
}

// WithParameters sets the parameter echo attached to every run record.
func WithParameters(p model.Parameters) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an engine bound to the given sources.
func New(games GameSource, rosters RosterSource, players PlayerSource, checkpoints checkpoint.Store, opts ...Option) (*Engine, error) {
	if games == nil || rosters == nil || players == nil || checkpoints == nil {
		return nil, ErrValidation
	}

	e := &Engine{
		games:       games,
		rosters:     rosters,
		players:     players,
		checkpoints: checkpoints,
		now:         time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	if e.rater == nil {
		r, err := rating.New(rating.AlgorithmGaussian)
		if err != nil {
			return nil, err
		}
		e.rater = r
	}
	if e.decayer == nil {
		e.decayer = decay.New()
	}
	if e.builder == nil {
		e.builder = schedule.NewBuilder()
	}
	if e.logger == nil {
		e.logger = logger.Named("engine")
	}
	if e.params.Algorithm == "" {
		e.params.Algorithm = e.rater.Name()
	}

	return e, nil
}
