package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"fraudcli/internal/config"
	"fraudcli/internal/dataset"
	"fraudcli/internal/features"
	"fraudcli/internal/infrastructure"
	"fraudcli/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	inFile := flag.String("in", "", "scoring NDJSON file (overrides config)")
	modelFile := flag.String("model", "", "model file to load (overrides config)")
	outFile := flag.String("out", "", "predictions output file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *inFile != "" {
		cfg.Data.ScoringFile = *inFile
	}
	if *modelFile != "" {
		cfg.Data.ModelFile = *modelFile
	}
	if *outFile != "" {
		cfg.Data.OutputFile = *outFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(logger)
	if err != nil {
		logger.Warn("failed to initialize tracing", "error", err)
	}
	defer func() {
		if tracing != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tracing.Shutdown(shutdownCtx)
		}
	}()

	ctx := infrastructure.EnsureTraceID(context.Background())

	logger.InfoContext(ctx, "starting prediction run",
		slog.String("scoring_file", cfg.Data.ScoringFile),
		slog.String("model_file", cfg.Data.ModelFile),
		slog.String("output_file", cfg.Data.OutputFile))

	assembler := features.NewAssembler(logger, features.AssemblerConfig{
		Parallel: cfg.Model.ParallelAggregation,
	})

	manager := pipeline.NewManager(logger,
		pipeline.NewLoadModelStep(cfg.Data.ModelFile),
		pipeline.NewLoadStep(cfg.Data.ScoringFile),
		pipeline.NewNormalizeStep(dataset.NewNormalizer(logger)),
		pipeline.NewFeatureStep(assembler),
		pipeline.NewPredictStep(),
		pipeline.NewWritePredictionsStep(cfg.Data.OutputFile),
	)

	state, err := manager.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "prediction run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "predictions written",
		slog.String("output_file", cfg.Data.OutputFile),
		slog.Int("prediction_count", len(state.Predictions)))
}
