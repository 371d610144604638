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
	inFile := flag.String("in", "", "training NDJSON file (overrides config)")
	modelFile := flag.String("model", "", "output model file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *inFile != "" {
		cfg.Data.TrainingFile = *inFile
	}
	if *modelFile != "" {
		cfg.Data.ModelFile = *modelFile
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

	logger.InfoContext(ctx, "starting training run",
		slog.String("training_file", cfg.Data.TrainingFile),
		slog.String("model_file", cfg.Data.ModelFile))

	assembler := features.NewAssembler(logger, features.AssemblerConfig{
		Parallel: cfg.Model.ParallelAggregation,
	})

	manager := pipeline.NewManager(logger,
		pipeline.NewLoadStep(cfg.Data.TrainingFile),
		pipeline.NewNormalizeStep(dataset.NewNormalizer(logger)),
		pipeline.NewFeatureStep(assembler),
		pipeline.NewExportStep(cfg.Data.MatrixCSV, cfg.Data.MatrixXLSX),
		pipeline.NewTrainStep(logger, cfg.Model),
		pipeline.NewSaveModelStep(cfg.Data.ModelFile),
	)

	state, err := manager.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "training run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "model saved",
		slog.String("model_file", cfg.Data.ModelFile),
		slog.String("model_id", state.Model.ID),
		slog.Float64("test_accuracy", state.TestAccuracy))
}
