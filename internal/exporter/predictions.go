package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fraudcli/internal/errors"
)

// Human-readable prediction labels written to the output file.
const (
	LabelFraudulent    = "Fraudulent"
	LabelNotFraudulent = "Not fraudulent"
)

// Labels maps numeric predictions to their human-readable labels.
func Labels(predictions []float64) []string {
	labels := make([]string, len(predictions))
	for i, p := range predictions {
		if p == 1 {
			labels[i] = LabelFraudulent
		} else {
			labels[i] = LabelNotFraudulent
		}
	}
	return labels
}

// PredictionMap zips emails and predictions into an email -> label mapping.
// Prediction and email counts must match positionally; a mismatch is fatal.
func PredictionMap(emails []string, predictions []float64) (map[string]string, error) {
	if len(emails) != len(predictions) {
		return nil, errors.NewModelError(
			fmt.Sprintf("prediction count (%d) does not match email count (%d)", len(predictions), len(emails)), nil)
	}

	labels := Labels(predictions)
	out := make(map[string]string, len(emails))
	for i, email := range emails {
		out[email] = labels[i]
	}
	return out, nil
}

// WritePredictions writes the email -> label mapping as a JSON file. The
// length assertion runs before any file is created, so a mismatched batch
// never produces output.
func WritePredictions(path string, emails []string, predictions []float64) error {
	mapping, err := PredictionMap(emails, predictions)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for predictions output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create predictions file %s", path), err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(mapping); err != nil {
		return errors.NewStorageError("failed to encode predictions", err)
	}

	slog.Info("wrote predictions file",
		slog.String("path", path),
		slog.Int("prediction_count", len(emails)))

	return nil
}
