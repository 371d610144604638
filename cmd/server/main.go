package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudcli/internal/config"
	"fraudcli/internal/features"
	"fraudcli/internal/infrastructure"
	"fraudcli/internal/model"
	"fraudcli/internal/services"
	transporthttp "fraudcli/internal/transport/http"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	modelFile := flag.String("model", "", "model file to load (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
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

	// A missing model degrades the service instead of blocking startup; the
	// health endpoint reports it and scoring returns 503.
	var loaded *model.Model
	if m, err := model.Load(cfg.Data.ModelFile); err != nil {
		logger.Warn("model not loaded, serving degraded",
			slog.String("model_file", cfg.Data.ModelFile),
			slog.String("error", err.Error()))
	} else {
		loaded = m
		logger.Info("model loaded",
			slog.String("model_file", cfg.Data.ModelFile),
			slog.String("model_id", m.ID))
	}

	assembler := features.NewAssembler(logger, features.AssemblerConfig{
		Parallel: cfg.Model.ParallelAggregation,
	})
	scoring := services.NewScoringService(logger, assembler, loaded)

	router := transporthttp.NewRouter(logger, cfg.Server,
		transporthttp.NewScoreHandler(logger, scoring, cfg.Server.MaxBatchSize),
		transporthttp.NewHealthHandler(scoring),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("scoring API listening", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
