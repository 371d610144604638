package services

import (
	"context"
	"fmt"
	"log/slog"

	"fraudcli/internal/dataset"
	"fraudcli/internal/errors"
	"fraudcli/internal/exporter"
	"fraudcli/internal/features"
	"fraudcli/internal/model"
	"fraudcli/pkg/contracts/domain"
)

// Prediction is one scored customer.
type Prediction struct {
	CustomerEmail string `json:"customerEmail"`
	Fraudulent    bool   `json:"fraudulent"`
	Label         string `json:"label"`
}

// ScoringService runs the feature pipeline and the loaded model over an
// in-memory batch of raw records.
type ScoringService struct {
	logger     *slog.Logger
	normalizer *dataset.Normalizer
	assembler  *features.Assembler
	model      *model.Model
}

// NewScoringService creates a scoring service bound to a loaded model.
func NewScoringService(logger *slog.Logger, assembler *features.Assembler, m *model.Model) *ScoringService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoringService{
		logger:     logger,
		normalizer: dataset.NewNormalizer(logger),
		assembler:  assembler,
		model:      m,
	}
}

// ModelID returns the identity of the loaded model.
func (s *ScoringService) ModelID() string {
	if s.model == nil {
		return ""
	}
	return s.model.ID
}

// Ready reports whether a model is loaded.
func (s *ScoringService) Ready() bool {
	return s.model != nil
}

// Score normalizes the batch, assembles its feature matrix and predicts a
// label per customer. Labeled batches are scored on their feature columns
// only; the label never leaks into prediction.
func (s *ScoringService) Score(ctx context.Context, records []domain.RawRecord) ([]Prediction, error) {
	if s.model == nil {
		return nil, errors.NewModelError("no model loaded", nil)
	}

	batch, err := s.normalizer.Normalize(ctx, records)
	if err != nil {
		return nil, err
	}

	matrix, emails, err := s.assembler.Assemble(ctx, batch)
	if err != nil {
		return nil, err
	}

	var (
		names []string
		x     [][]float64
	)
	if matrix.HasColumn(features.LabelColumn) {
		names, x, _, err = matrix.Split(features.LabelColumn)
		if err != nil {
			return nil, err
		}
	} else {
		names, x = matrix.RowMajor()
	}

	if err := s.model.Scaler.CheckSchema(names); err != nil {
		return nil, err
	}

	scaled, err := s.model.Scaler.Transform(x)
	if err != nil {
		return nil, err
	}
	predicted := s.model.Forest.Predict(scaled)

	if len(predicted) != len(emails) {
		return nil, errors.NewModelError(
			fmt.Sprintf("prediction count (%d) does not match email count (%d)", len(predicted), len(emails)), nil)
	}

	labels := exporter.Labels(predicted)
	predictions := make([]Prediction, len(emails))
	for i, email := range emails {
		predictions[i] = Prediction{
			CustomerEmail: email,
			Fraudulent:    predicted[i] == 1,
			Label:         labels[i],
		}
	}

	s.logger.InfoContext(ctx, "scored batch",
		slog.Int("customer_count", len(predictions)),
		slog.String("model_id", s.model.ID))

	return predictions, nil
}
