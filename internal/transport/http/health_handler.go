package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"fraudcli/internal/infrastructure"
	"fraudcli/internal/services"
)

// HealthResponse reports service liveness and model readiness.
type HealthResponse struct {
	Status      string    `json:"status"`
	ModelLoaded bool      `json:"model_loaded"`
	ModelID     string    `json:"model_id,omitempty"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// Render implements the render.Renderer interface.
func (h *HealthResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	service *services.ScoringService
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service *services.ScoringService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /api/v1/health. The service is degraded, not down, when
// no model is loaded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.service.Ready() {
		status = "degraded"
	}

	render.Render(w, r, &HealthResponse{
		Status:      status,
		ModelLoaded: h.service.Ready(),
		ModelID:     h.service.ModelID(),
		Version:     infrastructure.ServiceVersion,
		Timestamp:   time.Now().UTC(),
	})
}
