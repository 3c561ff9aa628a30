// Package sim drives the orchard state machine through large batches of
// independent Monte Carlo trials and aggregates the outcomes into a win-rate
// estimate. Trials are partitioned across a fork-join worker pool; the only
// shared state is an atomic progress counter and the final tally merge.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/orchard/internal/config"
	"github.com/cory-johannsen/orchard/internal/game/dice"
	"github.com/cory-johannsen/orchard/internal/game/orchard"
)

// ErrNoTrials is returned when an estimate is requested with zero trials,
// which would otherwise divide by zero in the win-rate computation.
var ErrNoTrials = errors.New("sim: trial count must be positive")

// checkStride is the number of trials a worker runs between context polls and
// progress-counter updates, keeping atomics off the per-trial hot path.
const checkStride = 1 << 12

// Report is the result of one completed estimate run.
type Report struct {
	// RunID identifies the run in logs and trace spans.
	RunID uuid.UUID
	// Difficulty is the setting the run estimated.
	Difficulty Difficulty
	// Tally holds the aggregated outcome counts.
	Tally Tally
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Estimator runs Monte Carlo win-rate estimates with a fixed trial budget and
// worker pool size.
type Estimator struct {
	trials           uint64
	workers          int
	progressInterval time.Duration
	logger           *zap.Logger
}

// NewEstimator constructs an estimator from configuration. A worker count of
// zero means one worker per available CPU.
//
// Precondition: logger must be non-nil.
func NewEstimator(cfg config.SimulationConfig, logger *zap.Logger) *Estimator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Estimator{
		trials:           cfg.Trials,
		workers:          workers,
		progressInterval: cfg.ProgressInterval,
		logger:           logger,
	}
}

// RunTrial plays one game from a fresh state to completion, drawing every
// roll from src, and returns the terminal outcome.
//
// Both the raven position and the pile sum are non-increasing, so a trial
// finishes after at most ravenStart + 16 state-changing rolls.
//
// Precondition: src must be non-nil.
func RunTrial(ravenStart uint8, src dice.Source) orchard.Outcome {
	game := orchard.New(ravenStart)
	for {
		if outcome, done := game.Apply(orchard.DrawFace(src)); done {
			return outcome
		}
	}
}

// EstimateWinRate runs the configured number of independent trials for the
// given difficulty and returns the aggregated report.
//
// Trials are split evenly across the worker pool, the remainder going to the
// last worker. Each worker owns a crypto-seeded PCG stream, so no randomness
// state is shared. Cancelling ctx stops workers at stride granularity and
// returns ctx's error.
//
// Postcondition: on nil error, Report.Tally.Total() equals the configured
// trial count and the win rate is in [0, 100].
func (e *Estimator) EstimateWinRate(ctx context.Context, d Difficulty) (Report, error) {
	if e.trials == 0 {
		return Report{}, ErrNoTrials
	}

	runID := uuid.New()
	start := time.Now()

	workers := e.workers
	if uint64(workers) > e.trials {
		workers = int(e.trials)
	}
	perWorker := e.trials / uint64(workers)
	remainder := e.trials % uint64(workers)

	e.logger.Info("starting estimate",
		zap.String("run_id", runID.String()),
		zap.String("difficulty", d.Name),
		zap.Uint8("raven_start", d.RavenStart),
		zap.Uint64("trials", e.trials),
		zap.Int("workers", workers),
	)

	var completed atomic.Uint64
	progressDone := make(chan struct{})
	var progressWG sync.WaitGroup
	if e.progressInterval > 0 {
		progressWG.Add(1)
		go func() {
			defer progressWG.Done()
			e.reportProgress(d, &completed, progressDone)
		}()
	}

	tallies := make(chan Tally, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		n := perWorker
		if i == workers-1 {
			n += remainder
		}
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			tallies <- runPartition(ctx, d.RavenStart, n, &completed)
		}(n)
	}
	wg.Wait()
	close(tallies)
	close(progressDone)
	progressWG.Wait()

	var total Tally
	for t := range tallies {
		total = total.Add(t)
	}

	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("estimating %s: %w", d.Name, err)
	}

	report := Report{RunID: runID, Difficulty: d, Tally: total, Elapsed: time.Since(start)}
	e.logger.Info("estimate complete",
		zap.String("run_id", runID.String()),
		zap.String("difficulty", d.Name),
		zap.Uint64("won", total.Won),
		zap.Uint64("lost", total.Lost),
		zap.Float64("win_rate_percent", total.WinRatePercent()),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// runPartition executes n trials on a freshly seeded PCG stream and returns
// the worker-local tally. Partial tallies are still returned on cancellation;
// the caller decides whether to discard them.
func runPartition(ctx context.Context, ravenStart uint8, n uint64, completed *atomic.Uint64) Tally {
	src := dice.NewPCGSource(dice.CryptoSeed())
	var local Tally
	for done := uint64(0); done < n; {
		stride := uint64(checkStride)
		if n-done < stride {
			stride = n - done
		}
		for i := uint64(0); i < stride; i++ {
			if RunTrial(ravenStart, src) == orchard.Won {
				local.Won++
			} else {
				local.Lost++
			}
		}
		done += stride
		completed.Add(stride)
		if ctx.Err() != nil {
			return local
		}
	}
	return local
}

// reportProgress logs completion percentage at the configured interval until
// the done channel closes.
func (e *Estimator) reportProgress(d Difficulty, completed *atomic.Uint64, done <-chan struct{}) {
	ticker := time.NewTicker(e.progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			n := completed.Load()
			e.logger.Info("estimate progress",
				zap.String("difficulty", d.Name),
				zap.Uint64("completed", n),
				zap.Uint64("trials", e.trials),
				zap.Float64("percent", 100*float64(n)/float64(e.trials)),
			)
		}
	}
}
