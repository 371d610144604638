package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fraudcli/internal/errors"
)

// Model bundles everything needed to score a new batch: the fitted scaler, the
// trained forest and the feature schema the matrix must match.
type Model struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Scaler    *StandardScaler `json:"scaler"`
	Forest    *RandomForest   `json:"forest"`
}

// NewModel wraps a fitted scaler and trained forest with identity metadata.
func NewModel(scaler *StandardScaler, forest *RandomForest) *Model {
	return &Model{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Scaler:    scaler,
		Forest:    forest,
	}
}

// Save writes the model to a JSON file.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create model directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create model file %s", path), err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(m); err != nil {
		return errors.NewStorageError("failed to encode model", err)
	}

	return nil
}

// Load reads a model from a JSON file and checks it is complete.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read model file %s", path), err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewModelError("failed to decode model file", err)
	}
	if m.Scaler == nil || m.Forest == nil || len(m.Forest.Trees) == 0 {
		return nil, errors.NewModelError(fmt.Sprintf("model file %s is incomplete", path), nil)
	}

	return &m, nil
}
