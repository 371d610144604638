package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fraudcli/internal/config"
	"fraudcli/internal/middleware"
)

// NewRouter builds the scoring API router with the full middleware chain.
func NewRouter(logger *slog.Logger, cfg config.ServerConfig, score *ScoreHandler, health *HealthHandler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.RateLimit(cfg.RateLimit))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", score.Score)
		r.Get("/health", health.Health)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
