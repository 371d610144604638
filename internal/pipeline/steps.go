package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"fraudcli/internal/config"
	"fraudcli/internal/dataset"
	"fraudcli/internal/errors"
	"fraudcli/internal/exporter"
	"fraudcli/internal/features"
	"fraudcli/internal/model"
)

// NewLoadStep reads the NDJSON input file into the run state.
func NewLoadStep(path string) Step {
	return NewStep("load", "Load raw records", func(ctx context.Context, state *State) error {
		records, err := dataset.ReadFile(path)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return errors.NewValidationError(fmt.Sprintf("input file %s contains no records", path))
		}
		state.Records = records
		return nil
	})
}

// NewNormalizeStep flattens the raw records into the four relational tables.
func NewNormalizeStep(normalizer *dataset.Normalizer) Step {
	return NewStep("normalize", "Normalize records", func(ctx context.Context, state *State) error {
		batch, err := normalizer.Normalize(ctx, state.Records)
		if err != nil {
			return err
		}
		state.Batch = batch
		return nil
	})
}

// NewFeatureStep assembles the feature matrix and the email list.
func NewFeatureStep(assembler *features.Assembler) Step {
	return NewStep("featurize", "Assemble feature matrix", func(ctx context.Context, state *State) error {
		matrix, emails, err := assembler.Assemble(ctx, state.Batch)
		if err != nil {
			return err
		}
		state.Matrix = matrix
		state.Emails = emails
		return nil
	})
}

// NewExportStep writes optional feature-matrix exports. Empty paths are
// skipped.
func NewExportStep(csvPath, xlsxPath string) Step {
	return NewStep("export", "Export feature matrix", func(ctx context.Context, state *State) error {
		if csvPath != "" {
			if err := exporter.WriteMatrixCSV(csvPath, state.Emails, state.Matrix); err != nil {
				return err
			}
		}
		if xlsxPath != "" {
			if err := exporter.WriteMatrixXLSX(xlsxPath, state.Emails, state.Matrix); err != nil {
				return err
			}
		}
		return nil
	})
}

// NewTrainStep scales the features, splits train/test, trains the forest and
// evaluates held-out accuracy. The batch must be labeled.
func NewTrainStep(logger *slog.Logger, cfg config.ModelConfig) Step {
	if logger == nil {
		logger = slog.Default()
	}
	return NewStep("train", "Train classifier", func(ctx context.Context, state *State) error {
		names, x, y, err := state.Matrix.Split(features.LabelColumn)
		if err != nil {
			return err
		}

		scaler, err := model.FitScaler(names, x)
		if err != nil {
			return err
		}
		scaled, err := scaler.Transform(x)
		if err != nil {
			return err
		}

		xTrain, xTest, yTrain, yTest, err := model.TrainTestSplit(scaled, y, cfg.TestFraction, cfg.Seed)
		if err != nil {
			return err
		}
		state.XTrain, state.XTest = xTrain, xTest
		state.YTrain, state.YTest = yTrain, yTest

		forest, err := model.TrainForest(ctx, logger, names, xTrain, yTrain, model.ForestConfig{
			Trees:          cfg.Trees,
			MaxDepth:       cfg.MaxDepth,
			MinLeafSamples: cfg.MinLeafSamples,
			Seed:           cfg.Seed,
		})
		if err != nil {
			return err
		}

		state.TestAccuracy = model.Accuracy(yTest, forest.Predict(xTest))
		state.Model = model.NewModel(scaler, forest)

		logger.InfoContext(ctx, "model created",
			slog.Float64("test_accuracy", state.TestAccuracy),
			slog.Int("train_rows", len(xTrain)),
			slog.Int("test_rows", len(xTest)))

		return nil
	})
}

// NewSaveModelStep persists the trained model.
func NewSaveModelStep(path string) Step {
	return NewStep("save_model", "Save model", func(ctx context.Context, state *State) error {
		if state.Model == nil {
			return errors.NewModelError("no trained model to save", nil)
		}
		return state.Model.Save(path)
	})
}

// NewLoadModelStep loads a previously trained model into the run state.
func NewLoadModelStep(path string) Step {
	return NewStep("load_model", "Load model", func(ctx context.Context, state *State) error {
		m, err := model.Load(path)
		if err != nil {
			return err
		}
		state.Model = m
		return nil
	})
}

// NewPredictStep scores the assembled matrix with the loaded model. A labeled
// batch is scored on its feature columns only; the feature schema must match
// the schema the scaler was fitted on.
func NewPredictStep() Step {
	return NewStep("predict", "Predict labels", func(ctx context.Context, state *State) error {
		if state.Model == nil {
			return errors.NewModelError("no model loaded for prediction", nil)
		}

		var (
			names []string
			x     [][]float64
			err   error
		)
		if state.Matrix.HasColumn(features.LabelColumn) {
			names, x, _, err = state.Matrix.Split(features.LabelColumn)
			if err != nil {
				return err
			}
		} else {
			names, x = state.Matrix.RowMajor()
		}

		if err := state.Model.Scaler.CheckSchema(names); err != nil {
			return err
		}

		scaled, err := state.Model.Scaler.Transform(x)
		if err != nil {
			return err
		}
		state.Predictions = state.Model.Forest.Predict(scaled)
		return nil
	})
}

// NewWritePredictionsStep serializes the email -> label mapping.
func NewWritePredictionsStep(path string) Step {
	return NewStep("write_predictions", "Write predictions", func(ctx context.Context, state *State) error {
		return exporter.WritePredictions(path, state.Emails, state.Predictions)
	})
}
