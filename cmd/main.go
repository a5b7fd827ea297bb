package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openrec/skillrank/internal/adapters/checkpoint"
	"github.com/openrec/skillrank/internal/adapters/store"
	"github.com/openrec/skillrank/internal/config"
	"github.com/openrec/skillrank/internal/domain/decay"
	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/internal/domain/rating"
	"github.com/openrec/skillrank/internal/domain/schedule"
	"github.com/openrec/skillrank/internal/engine"
	"github.com/openrec/skillrank/pkg/logger"
	"github.com/openrec/skillrank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 10 * time.Second
	systemMetricsInterval = 10 * time.Second
	outputFileMode        = 0o644
)

// report is the exported run artifact: the ranking table plus the run
// record that produced it.
type report struct {
	State    *model.CalculationState `json:"state"`
	Rankings []model.PlayerRanking   `json:"rankings"`
}

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the dataset behind the in-memory store.
	ds, err := store.LoadFile(cfg.DatasetPath)
	if err != nil {
		log.Error(ctx, "failed to load dataset", logger.String("path", cfg.DatasetPath), logger.Error(err))
		return
	}
	st := store.NewMemStore(store.WithDataset(ds))
	log.Info(ctx, "dataset loaded",
		logger.String("path", cfg.DatasetPath),
		logger.Int("seasons", len(ds.Seasons)),
		logger.Int("games", len(ds.Games)))

	// Checkpoints go to disk when a path is configured.
	var checkpoints checkpoint.Store
	if cfg.CheckpointPath != "" {
		fileStore, err := checkpoint.NewFileStore(cfg.CheckpointPath)
		if err != nil {
			log.Error(ctx, "failed to open checkpoint file", logger.String("path", cfg.CheckpointPath), logger.Error(err))
			return
		}
		checkpoints = fileStore
	} else {
		checkpoints = checkpoint.NewMemoryStore()
	}

	// Async progress journal so the round loop never blocks on disk.
	journal := checkpoint.NewJournal(checkpoints, checkpoint.WithCapacity(cfg.JournalCapacity))
	journal.Start(ctx)
	defer func() { _ = journal.Close() }()

	rater, err := rating.New(cfg.Algorithm,
		rating.WithBaseline(cfg.Baseline),
		rating.WithInitialSigma(cfg.InitialSigma),
		rating.WithSigmaFloor(cfg.SigmaFloor),
		rating.WithSigmaShrink(cfg.SigmaShrink),
		rating.WithBaseRate(cfg.BaseRate),
		rating.WithScale(cfg.RatingScale),
		rating.WithSeasonDecayFactor(cfg.SeasonDecayFactor),
		rating.WithPlayoffMultiplier(cfg.PlayoffMultiplier),
	)
	if err != nil {
		log.Error(ctx, "failed to build rater", logger.String("algorithm", cfg.Algorithm), logger.Error(err))
		return
	}

	decayer := decay.New(
		decay.WithBaseline(cfg.Baseline),
		decay.WithFactors(cfg.DecaySlowFactor, cfg.DecayFastFactor),
		decay.WithSigmaGrowth(cfg.SigmaGrowth),
		decay.WithSigmaMax(cfg.SigmaMax),
	)

	eng, err := engine.New(st, st, st, checkpoints,
		engine.WithRater(rater),
		engine.WithDecayer(decayer),
		engine.WithScheduleBuilder(schedule.NewBuilder(schedule.WithSeasonDepth(cfg.SeasonDepth))),
		engine.WithProgressRecorder(journal),
		engine.WithParameters(cfg.Parameters()),
		engine.WithLogger(log),
	)
	if err != nil {
		log.Error(ctx, "failed to build engine", logger.Error(err))
		return
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Diagnostics HTTP server: /metrics and /healthz.
	srv := startDiagnosticsServer(ctx, cfg.MetricsAddr, log)

	res, err := eng.Run(ctx, model.RunType(cfg.RunType))
	if err != nil {
		log.Error(ctx, "calculation failed", logger.Error(err))
		_ = journal.Close()
		shutdown(srv, log)
		os.Exit(1)
	}

	if err := writeReport(cfg.OutputPath, res); err != nil {
		log.Error(ctx, "failed to write rankings", logger.String("path", cfg.OutputPath), logger.Error(err))
		_ = journal.Close()
		shutdown(srv, log)
		os.Exit(1)
	}

	log.Info(ctx, "rankings exported",
		logger.Int("players", len(res.Rankings)),
		logger.Int("rounds", res.Rounds),
		logger.Int("skipped_games", len(res.Excluded)))

	shutdown(srv, log)
}

// startDiagnosticsServer serves Prometheus metrics and a liveness probe.
func startDiagnosticsServer(ctx context.Context, addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting diagnostics server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "diagnostics server failed", logger.Error(err))
		}
	}()

	return srv
}

// shutdown stops the diagnostics server gracefully.
func shutdown(srv *http.Server, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(ctx, "diagnostics server shutdown failed", logger.Error(err))
	}
}

// writeReport writes the run artifact to path, or stdout when path is empty.
func writeReport(path string, res *engine.Result) error {
	raw, err := json.MarshalIndent(report{State: res.State, Rankings: res.Rankings}, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')

	if path == "" {
		_, err := os.Stdout.Write(raw)
		return err
	}
	return os.WriteFile(path, raw, outputFileMode)
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
