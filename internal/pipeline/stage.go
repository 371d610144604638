package pipeline

import (
	"context"

	"fraudcli/internal/dataset"
	"fraudcli/internal/features"
	"fraudcli/internal/model"
	"fraudcli/pkg/contracts/domain"
)

// State carries the data threaded between the steps of one run. Each step
// fully consumes its inputs and populates its outputs before the next step
// begins; there is no concurrent access and no partial-result recovery.
type State struct {
	// Raw input and normalized tables
	Records []domain.RawRecord
	Batch   *dataset.Batch

	// Assembled features
	Matrix *features.Matrix
	Emails []string

	// Training intermediates
	XTrain, XTest [][]float64
	YTrain, YTest []float64
	TestAccuracy  float64

	// Trained or loaded model and its output
	Model       *model.Model
	Predictions []float64
}

// Step is a single unit of a pipeline run.
type Step interface {
	// ID returns the unique identifier for this step
	ID() string

	// Name returns the human-readable name for this step
	Name() string

	// Execute runs the step against the shared run state
	Execute(ctx context.Context, state *State) error
}

// step is the common Step implementation used by the step constructors.
type step struct {
	id   string
	name string
	fn   func(ctx context.Context, state *State) error
}

func (s *step) ID() string   { return s.id }
func (s *step) Name() string { return s.name }

func (s *step) Execute(ctx context.Context, state *State) error {
	return s.fn(ctx, state)
}

// NewStep wraps a function as a Step.
func NewStep(id, name string, fn func(ctx context.Context, state *State) error) Step {
	return &step{id: id, name: name, fn: fn}
}
