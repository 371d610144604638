package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudcli/internal/config"
	"fraudcli/internal/services"
)

func testRouter(t *testing.T, service *services.ScoringService) http.Handler {
	t.Helper()
	cfg := config.ServerConfig{
		Port:         8080,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxBatchSize: 100,
		RateLimit:    config.RateLimitConfig{Enabled: false},
	}
	return NewRouter(nil, cfg, NewScoreHandler(nil, service, cfg.MaxBatchSize), NewHealthHandler(service))
}

func TestRouter_Routes(t *testing.T) {
	router := testRouter(t, trainedService(t))
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Request IDs are stamped on every response by the middleware chain.
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
}

func TestRouter_Metrics(t *testing.T) {
	router := testRouter(t, trainedService(t))
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_NotFound(t *testing.T) {
	router := testRouter(t, trainedService(t))
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
