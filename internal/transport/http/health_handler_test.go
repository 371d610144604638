package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudcli/internal/features"
	"fraudcli/internal/services"
)

func getHealth(t *testing.T, handler *HealthHandler) HealthResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthHandler(t *testing.T) {
	resp := getHealth(t, NewHealthHandler(trainedService(t)))

	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.NotEmpty(t, resp.ModelID)
	assert.NotEmpty(t, resp.Version)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestHealthHandler_Degraded(t *testing.T) {
	service := services.NewScoringService(nil, features.NewAssembler(nil, features.AssemblerConfig{}), nil)
	resp := getHealth(t, NewHealthHandler(service))

	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.ModelLoaded)
	assert.Empty(t, resp.ModelID)
}
