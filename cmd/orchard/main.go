// Package main provides the orchard simulator binary. It estimates the win
// rate of the orchard dice game for each difficulty setting and prints one
// result line per setting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/orchard/internal/config"
	"github.com/cory-johannsen/orchard/internal/observability"
	"github.com/cory-johannsen/orchard/internal/sim"
	"github.com/cory-johannsen/orchard/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("shutting down telemetry", zap.Error(err))
			}
		}()
	}

	logger.Info("starting simulator",
		zap.Uint64("trials", cfg.Simulation.Trials),
		zap.Int("workers", cfg.Simulation.Workers),
	)

	estimator := sim.NewEstimator(cfg.Simulation, logger)
	tracer := telemetry.Tracer("sim")

	for _, d := range sim.Difficulties {
		fmt.Printf("Estimating win rate for %q mode (raven start = %d)...\n", d.Name, d.RavenStart)

		report, err := estimate(ctx, tracer, estimator, d)
		if err != nil {
			logger.Error("estimate aborted", zap.String("difficulty", d.Name), zap.Error(err))
			os.Exit(1)
		}

		fmt.Printf("Won %d, lost %d, win rate %.2f%%\n",
			report.Tally.Won, report.Tally.Lost, report.Tally.WinRatePercent())
	}
}

// estimate wraps one difficulty run in a trace span carrying the run's
// identity and aggregate counts.
func estimate(ctx context.Context, tracer trace.Tracer, estimator *sim.Estimator, d sim.Difficulty) (sim.Report, error) {
	ctx, span := tracer.Start(ctx, "EstimateWinRate")
	defer span.End()

	span.SetAttributes(
		attribute.String("difficulty", d.Name),
		attribute.Int("raven_start", int(d.RavenStart)),
	)

	report, err := estimator.EstimateWinRate(ctx, d)
	if err != nil {
		span.RecordError(err)
		return sim.Report{}, err
	}

	span.SetAttributes(
		attribute.String("run_id", report.RunID.String()),
		attribute.Int64("won", int64(report.Tally.Won)),
		attribute.Int64("lost", int64(report.Tally.Lost)),
		attribute.Float64("win_rate_percent", report.Tally.WinRatePercent()),
	)
	return report, nil
}
