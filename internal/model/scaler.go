package model

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"fraudcli/internal/errors"
)

// StandardScaler rescales features to zero mean and unit standard deviation.
// Moments are fitted on the training matrix and reused verbatim at scoring
// time. Zero-variance columns keep a scale of 1 so constant features pass
// through centered instead of dividing by zero.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`
}

// FitScaler computes per-column mean and population standard deviation.
func FitScaler(columns []string, x [][]float64) (*StandardScaler, error) {
	if len(x) == 0 {
		return nil, errors.NewModelError("cannot fit scaler on empty matrix", nil)
	}
	for i, row := range x {
		if len(row) != len(columns) {
			return nil, errors.NewModelError(
				fmt.Sprintf("row %d has %d values, expected %d", i, len(row), len(columns)), nil)
		}
	}

	scaler := &StandardScaler{
		Columns: append([]string(nil), columns...),
		Means:   make([]float64, len(columns)),
		Scales:  make([]float64, len(columns)),
	}

	column := make([]float64, len(x))
	for j := range columns {
		for i, row := range x {
			column[i] = row[j]
		}
		scaler.Means[j] = stat.Mean(column, nil)
		scale := stat.PopStdDev(column, nil)
		if scale == 0 {
			scale = 1
		}
		scaler.Scales[j] = scale
	}

	return scaler, nil
}

// CheckSchema verifies that a scoring batch's feature columns match the
// schema the scaler was fitted on, by length, order and name.
func (s *StandardScaler) CheckSchema(columns []string) error {
	if len(columns) != len(s.Columns) {
		return errors.NewModelError(
			fmt.Sprintf("feature schema mismatch: batch has %d columns, model expects %d", len(columns), len(s.Columns)), nil)
	}
	for i := range columns {
		if columns[i] != s.Columns[i] {
			return errors.NewModelError(
				fmt.Sprintf("feature schema mismatch at column %d: batch has %q, model expects %q", i, columns[i], s.Columns[i]), nil)
		}
	}
	return nil
}

// Transform applies the fitted moments to a matrix with the same column
// layout, returning a new matrix.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Columns) {
			return nil, errors.NewModelError(
				fmt.Sprintf("row %d has %d values, scaler expects %d", i, len(row), len(s.Columns)), nil)
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Means[j]) / s.Scales[j]
		}
		out[i] = scaled
	}
	return out, nil
}
