package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	labels := Labels([]float64{1, 0, 1, 0})
	assert.Equal(t, []string{
		LabelFraudulent,
		LabelNotFraudulent,
		LabelFraudulent,
		LabelNotFraudulent,
	}, labels)
}

func TestPredictionMap(t *testing.T) {
	mapping, err := PredictionMap([]string{"a@x.com", "b@x.com"}, []float64{1, 0})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a@x.com": LabelFraudulent,
		"b@x.com": LabelNotFraudulent,
	}, mapping)
}

func TestPredictionMap_LengthMismatch(t *testing.T) {
	mapping, err := PredictionMap([]string{"a@x.com", "b@x.com"}, []float64{1})
	require.Error(t, err)
	assert.Nil(t, mapping)
}

func TestWritePredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "predictions.json")

	require.NoError(t, WritePredictions(path, []string{"a@x.com", "b@x.com"}, []float64{0, 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var mapping map[string]string
	require.NoError(t, json.Unmarshal(data, &mapping))
	assert.Equal(t, map[string]string{
		"a@x.com": LabelNotFraudulent,
		"b@x.com": LabelFraudulent,
	}, mapping)
}

func TestWritePredictions_MismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "predictions.json")

	err := WritePredictions(path, []string{"a@x.com"}, []float64{1, 0})
	require.Error(t, err)

	// The length assertion fires before any file is created.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
