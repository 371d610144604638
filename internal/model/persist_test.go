package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelSaveLoad(t *testing.T) {
	names, x, y := separableFixture()

	scaler, err := FitScaler(names, x)
	require.NoError(t, err)
	forest, err := TrainForest(context.Background(), nil, names, x, y,
		ForestConfig{Trees: 3, MaxDepth: 3, MinLeafSamples: 1, Seed: 42})
	require.NoError(t, err)

	original := NewModel(scaler, forest)
	require.NotEmpty(t, original.ID)

	path := filepath.Join(t.TempDir(), "models", "model.json")
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Scaler.Columns, loaded.Scaler.Columns)
	assert.Equal(t, original.Scaler.Means, loaded.Scaler.Means)
	require.Len(t, loaded.Forest.Trees, 3)

	// The round-tripped forest scores identically.
	assert.Equal(t, original.Forest.Predict(x), loaded.Forest.Predict(x))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err, "missing file")

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))
	_, err = Load(corrupt)
	assert.Error(t, err, "corrupt file")

	incomplete := filepath.Join(dir, "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`{"id":"x"}`), 0644))
	_, err = Load(incomplete)
	assert.Error(t, err, "model without scaler and forest")
}
