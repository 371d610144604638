package model

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"fraudcli/internal/errors"
)

// ForestConfig holds random-forest training hyperparameters.
type ForestConfig struct {
	Trees          int   `json:"trees"`
	MaxDepth       int   `json:"max_depth"`
	MinLeafSamples int   `json:"min_leaf_samples"`
	Seed           int64 `json:"seed"`
}

// DefaultForestConfig returns the default training configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:          100,
		MaxDepth:       12,
		MinLeafSamples: 1,
		Seed:           42,
	}
}

// RandomForest is a bagged ensemble of CART trees predicting a binary label by
// majority vote. Training is deterministic for a fixed seed.
type RandomForest struct {
	Config       ForestConfig `json:"config"`
	FeatureNames []string     `json:"feature_names"`
	Trees        []*TreeNode  `json:"trees"`
}

// TrainForest trains a random forest on scaled feature rows. Each tree sees a
// bootstrap sample of the rows and considers sqrt(p) random features per
// split.
func TrainForest(ctx context.Context, logger *slog.Logger, featureNames []string, x [][]float64, y []float64, config ForestConfig) (*RandomForest, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(x) == 0 {
		return nil, errors.NewModelError("cannot train on empty matrix", nil)
	}
	if len(x) != len(y) {
		return nil, errors.NewModelError("feature rows and labels differ in length", nil)
	}
	if config.Trees <= 0 {
		config.Trees = DefaultForestConfig().Trees
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultForestConfig().MaxDepth
	}
	if config.MinLeafSamples <= 0 {
		config.MinLeafSamples = DefaultForestConfig().MinLeafSamples
	}

	params := treeParams{
		maxDepth:       config.MaxDepth,
		minLeafSamples: config.MinLeafSamples,
		featureSubset:  int(math.Max(1, math.Round(math.Sqrt(float64(len(featureNames)))))),
	}

	logger.InfoContext(ctx, "training random forest",
		slog.Int("trees", config.Trees),
		slog.Int("max_depth", config.MaxDepth),
		slog.Int("rows", len(x)),
		slog.Int("features", len(featureNames)))

	forest := &RandomForest{
		Config:       config,
		FeatureNames: append([]string(nil), featureNames...),
		Trees:        make([]*TreeNode, 0, config.Trees),
	}

	for t := 0; t < config.Trees; t++ {
		rng := rand.New(rand.NewSource(config.Seed + int64(t)))

		indices := make([]int, len(x))
		for i := range indices {
			indices[i] = rng.Intn(len(x))
		}

		forest.Trees = append(forest.Trees, buildTree(x, y, indices, 0, params, rng))
	}

	logger.InfoContext(ctx, "random forest trained", slog.Int("trees", len(forest.Trees)))

	return forest, nil
}

// Predict returns the majority-vote label (0 or 1) for each row.
func (f *RandomForest) Predict(x [][]float64) []float64 {
	predictions := make([]float64, len(x))
	for i, row := range x {
		votes := 0
		for _, tree := range f.Trees {
			if tree.predict(row) == 1 {
				votes++
			}
		}
		if votes*2 > len(f.Trees) {
			predictions[i] = 1
		}
	}
	return predictions
}
