package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudcli/internal/config"
	"fraudcli/internal/dataset"
	"fraudcli/internal/features"
)

// writeNDJSON writes n per-customer records. Fraudulent customers carry a
// failed order and a failed transaction, so the label is learnable from the
// aggregates. When labeled is false the fraud label is omitted entirely.
func writeNDJSON(t *testing.T, path string, n int, labeled bool) {
	t.Helper()

	var lines []string
	for i := 0; i < n; i++ {
		fraud := i%2 == 1
		state := "fulfilled"
		if fraud {
			state = "failed"
		}
		line := fmt.Sprintf(
			`{"customer":{"customerEmail":"c%d@x.com"},%s"orders":[{"orderAmount":%d,"orderState":"%s","orderShippingAddress":"addr-%d"}],"transactions":[{"transactionAmount":10,"transactionFailed":%t}]}`,
			i, labelField(fraud, labeled), 10+i, state, i, fraud)
		lines = append(lines, line)
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))
}

func labelField(fraud, labeled bool) string {
	if !labeled {
		return ""
	}
	return fmt.Sprintf(`"fraudulent":%t,`, fraud)
}

func TestTrainThenPredictPipelines(t *testing.T) {
	dir := t.TempDir()
	trainingFile := filepath.Join(dir, "training.json")
	scoringFile := filepath.Join(dir, "scoring.json")
	modelFile := filepath.Join(dir, "model.json")
	outputFile := filepath.Join(dir, "predictions.json")
	csvFile := filepath.Join(dir, "matrix.csv")

	writeNDJSON(t, trainingFile, 20, true)
	writeNDJSON(t, scoringFile, 5, false)

	modelCfg := config.ModelConfig{
		Trees:          11,
		MaxDepth:       6,
		MinLeafSamples: 1,
		Seed:           42,
		TestFraction:   0.2,
	}
	assembler := features.NewAssembler(nil, features.AssemblerConfig{})

	trainState, err := NewManager(nil,
		NewLoadStep(trainingFile),
		NewNormalizeStep(dataset.NewNormalizer(nil)),
		NewFeatureStep(assembler),
		NewExportStep(csvFile, ""),
		NewTrainStep(nil, modelCfg),
		NewSaveModelStep(modelFile),
	).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, trainState.Model)
	assert.Len(t, trainState.XTrain, 16)
	assert.Len(t, trainState.XTest, 4)
	assert.FileExists(t, modelFile)
	assert.FileExists(t, csvFile)

	predictState, err := NewManager(nil,
		NewLoadModelStep(modelFile),
		NewLoadStep(scoringFile),
		NewNormalizeStep(dataset.NewNormalizer(nil)),
		NewFeatureStep(assembler),
		NewPredictStep(),
		NewWritePredictionsStep(outputFile),
	).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, predictState.Predictions, 5)
	assert.Equal(t, trainState.Model.ID, predictState.Model.ID)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var mapping map[string]string
	require.NoError(t, json.Unmarshal(data, &mapping))
	assert.Len(t, mapping, 5)
	for email, label := range mapping {
		assert.Contains(t, email, "@x.com")
		assert.Contains(t, []string{"Fraudulent", "Not fraudulent"}, label)
	}
}

func TestLoadStep_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewManager(nil, NewLoadStep(path)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no records")
}

func TestLoadStep_MissingFile(t *testing.T) {
	_, err := NewManager(nil, NewLoadStep(filepath.Join(t.TempDir(), "missing.json"))).
		Run(context.Background())
	assert.Error(t, err)
}

func TestPredictStep_SchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	trainingFile := filepath.Join(dir, "training.json")
	modelFile := filepath.Join(dir, "model.json")

	writeNDJSON(t, trainingFile, 10, true)

	modelCfg := config.ModelConfig{Trees: 3, MaxDepth: 3, MinLeafSamples: 1, Seed: 42, TestFraction: 0.2}
	trainState, err := NewManager(nil,
		NewLoadStep(trainingFile),
		NewNormalizeStep(dataset.NewNormalizer(nil)),
		NewFeatureStep(features.NewAssembler(nil, features.AssemblerConfig{})),
		NewTrainStep(nil, modelCfg),
		NewSaveModelStep(modelFile),
	).Run(context.Background())
	require.NoError(t, err)

	// A matrix with a column layout the scaler was not fitted on must be
	// rejected before any scoring happens.
	narrow := features.NewMatrix(1)
	require.NoError(t, narrow.AddColumn("EmailCount", []float64{1}))

	state := &State{Model: trainState.Model, Matrix: narrow, Emails: []string{"a@x.com"}}
	err = NewPredictStep().Execute(context.Background(), state)
	require.Error(t, err)
	assert.ErrorContains(t, err, "schema mismatch")
	assert.Nil(t, state.Predictions)
}

func TestPredictStep_NoModel(t *testing.T) {
	err := NewPredictStep().Execute(context.Background(), &State{})
	assert.Error(t, err)
}

func TestSaveModelStep_NoModel(t *testing.T) {
	err := NewSaveModelStep(filepath.Join(t.TempDir(), "model.json")).
		Execute(context.Background(), &State{})
	assert.Error(t, err)
}
