package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openrec/skillrank/internal/adapters/checkpoint"
	"github.com/openrec/skillrank/internal/domain/ledger"
	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/pkg/logger"
	"github.com/openrec/skillrank/pkg/metrics"
)

// Progress step names.
const (
	stepLoading    = "loading"
	stepResolving  = "resolving"
	stepProcessing = "processing"
	stepExporting  = "exporting"
)

// Result is the outcome of one calculation run.
type Result struct {
	// State is the terminal calculation record, also persisted through
	// the checkpoint store.
	State *model.CalculationState

	// Rankings is the published ranking list, rating descending. Nil
	// when the run failed.
	Rankings []model.PlayerRanking

	// Rounds is the number of rounds processed by this run. For an
	// incremental run this excludes rounds skipped as already
	// calculated.
	Rounds int

	// Excluded lists games dropped from rating with their reasons.
	Excluded []model.SkippedGame
}

// Run executes one calculation run. The returned Result carries the
// terminal state even when an error is returned; callers inspect
// Result.State for partial progress diagnostics.
func (e *Engine) Run(ctx context.Context, runType model.RunType) (*Result, error) {
	state := &model.CalculationState{
		ID:         uuid.NewString(),
		Type:       runType,
		Status:     model.StatusPending,
		Parameters: e.params,
	}
	state.MarkRunning(e.now())
	metrics.RecordRunStarted(string(runType))
	start := time.Now()

	e.logger.Info(ctx, "calculation run started",
		logger.String("run_id", state.ID),
		logger.String("run_type", string(runType)))

	res, err := e.run(ctx, runType, state)
	metrics.RecordRunDuration(time.Since(start).Seconds())

	if err != nil {
		state.MarkFailed(e.now(), err)
		// Persist the terminal state even when ctx itself was cancelled.
		e.saveState(context.WithoutCancel(ctx), state)
		metrics.RecordRunFailed(string(runType))
		e.logger.Error(ctx, "calculation run failed",
			logger.String("run_id", state.ID),
			logger.Error(err))
		return &Result{State: state}, err
	}

	state.MarkCompleted(e.now())
	if err := e.checkpoints.Publish(ctx, res.Rankings, state); err != nil {
		state.MarkFailed(e.now(), err)
		e.saveState(ctx, state)
		metrics.RecordRunFailed(string(runType))
		e.logger.Error(ctx, "failed to publish rankings",
			logger.String("run_id", state.ID),
			logger.Error(err))
		return &Result{State: state}, err
	}

	metrics.RecordRunCompleted(string(runType))
	metrics.UpdateRankingsExported(len(res.Rankings))
	e.logger.Info(ctx, "calculation run completed",
		logger.String("run_id", state.ID),
		logger.Int("rounds", res.Rounds),
		logger.Int("players", len(res.Rankings)),
		logger.Duration("took", time.Since(start)))

	res.State = state
	return res, nil
}

// run loads, resolves and replays the schedule, returning the exported
// rankings. The caller owns terminal state transitions and publishing.
func (e *Engine) run(ctx context.Context, runType model.RunType, state *model.CalculationState) (*Result, error) {
	state.Progress.CurrentStep = stepLoading
	e.recordProgress(ctx, state)

	seasons, err := e.games.Seasons(ctx)
	if err != nil {
		return nil, err
	}
	seasonIDs := make([]string, len(seasons))
	for i, s := range seasons {
		seasonIDs[i] = s.ID
	}
	games, err := e.games.Games(ctx, seasonIDs)
	if err != nil {
		return nil, err
	}

	sched, err := e.builder.Build(ctx, seasons, games)
	if err != nil {
		return nil, err
	}

	state.Progress.SeasonsTotal = len(sched.Seasons)
	state.Progress.RoundsTotal = len(sched.Rounds)
	state.Progress.GamesSkipped = len(sched.Excluded)
	state.Skipped = sched.Excluded
	for _, skipped := range sched.Excluded {
		metrics.RecordGameSkipped(skipped.Reason)
		e.logger.Debug(ctx, "game excluded from rating",
			logger.String("game_id", skipped.GameID),
			logger.String("reason", skipped.Reason))
	}

	state.Progress.CurrentStep = stepResolving
	e.recordProgress(ctx, state)

	g, err := e.resolve(ctx, sched)
	if err != nil {
		return nil, err
	}

	led := ledger.New(e.rater.NewState, ledger.WithBaseline(e.rater.Baseline()))
	calculated, err := e.seed(ctx, runType, led)
	if err != nil {
		return nil, err
	}

	state.Progress.CurrentStep = stepProcessing
	processed := 0
	for i := range sched.Rounds {
		// Cancellation is honored at round boundaries only, so a round
		// is always applied in full or not at all.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		round := &sched.Rounds[i]
		if _, done := calculated[round.ID]; done {
			continue
		}

		e.processRound(round, led, g, state)
		processed++

		rec := round.MarkCalculated(e.now())
		if err := e.checkpoints.SaveRound(ctx, rec); err != nil {
			metrics.RecordCheckpointFailure()
			e.logger.Warn(ctx, "failed to checkpoint round",
				logger.String("round_id", round.ID),
				logger.Error(err))
		}

		state.Progress.RoundsProcessed = processed
		if len(sched.Rounds) > 0 {
			state.Progress.PercentComplete = float64(i+1) / float64(len(sched.Rounds)) * 100
		}
		metrics.UpdateProgressPercent(state.Progress.PercentComplete)
		e.recordProgress(ctx, state)
	}

	state.Progress.CurrentStep = stepExporting
	e.recordProgress(ctx, state)

	return &Result{
		Rankings: led.Rankings(),
		Rounds:   processed,
		Excluded: sched.Excluded,
	}, nil
}

// seed prepares the ledger for the run. Incremental runs resume from the
// last published snapshot and return the set of rounds to skip; a full
// run, or an incremental run with no prior snapshot, starts empty.
func (e *Engine) seed(ctx context.Context, runType model.RunType, led *ledger.Ledger) (map[string]model.RoundRecord, error) {
	if runType != model.RunTypeIncremental {
		return nil, nil
	}

	snapshot, err := e.checkpoints.LatestSnapshot(ctx)
	if errors.Is(err, checkpoint.ErrSnapshotNotFound) {
		e.logger.Info(ctx, "no prior snapshot, running from scratch")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	calculated, err := e.checkpoints.CalculatedRounds(ctx)
	if err != nil {
		return nil, err
	}

	led.Seed(snapshot)
	e.logger.Info(ctx, "resuming from snapshot",
		logger.Int("players", led.Len()),
		logger.Int("calculated_rounds", len(calculated)))
	return calculated, nil
}

// processRound rates every game in the round against team strengths
// frozen at round start, then applies one decay step to the full ledger.
func (e *Engine) processRound(round *model.Round, led *ledger.Ledger, g *graph, state *model.CalculationState) {
	start := time.Now()

	snap := led.Snapshot()
	active := make(map[string]bool)

	for i := range round.Games {
		game := &round.Games[i]
		home := g.rosters[game.HomeTeamID]
		away := g.rosters[game.AwayTeamID]

		upd := e.rater.Evaluate(game, snap.Strength(home), snap.Strength(away))

		for _, playerID := range home {
			s := led.Touch(playerID, g.names[playerID])
			e.rater.ApplyDelta(s, upd.HomeDelta)
			s.RecordGame(game.SeasonID, game.HomeWon(), game.ScheduledAt)
			active[playerID] = true
		}
		for _, playerID := range away {
			s := led.Touch(playerID, g.names[playerID])
			e.rater.ApplyDelta(s, upd.AwayDelta)
			s.RecordGame(game.SeasonID, !game.HomeWon(), game.ScheduledAt)
			active[playerID] = true
		}

		state.Progress.GamesProcessed++
		metrics.RecordGameRated()
	}

	e.decayer.ApplyRound(led.States(), active)

	metrics.RecordRoundProcessed()
	metrics.RecordRoundLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLedgerSize(led.Len())
}

// recordProgress hands the state to the async recorder when one is
// configured, otherwise saves it synchronously. Never fatal.
func (e *Engine) recordProgress(ctx context.Context, state *model.CalculationState) {
	if e.progress != nil {
		e.progress.Record(ctx, state)
		return
	}
	e.saveState(ctx, state)
}

// saveState persists the state best-effort.
func (e *Engine) saveState(ctx context.Context, state *model.CalculationState) {
	if err := e.checkpoints.SaveState(ctx, state); err != nil {
		metrics.RecordCheckpointFailure()
		e.logger.Warn(ctx, "failed to save calculation state",
			logger.String("run_id", state.ID),
			logger.Error(err))
	}
}
