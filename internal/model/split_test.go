package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitFixture(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = float64(i % 2)
	}
	return x, y
}

func TestTrainTestSplit(t *testing.T) {
	x, y := splitFixture(10)

	xTrain, xTest, yTrain, yTest, err := TrainTestSplit(x, y, 0.2, 42)
	require.NoError(t, err)

	assert.Len(t, xTest, 2)
	assert.Len(t, xTrain, 8)
	assert.Len(t, yTest, 2)
	assert.Len(t, yTrain, 8)

	// Every row lands in exactly one partition.
	seen := make(map[float64]bool)
	for _, row := range append(append([][]float64{}, xTrain...), xTest...) {
		assert.False(t, seen[row[0]], "row %v appears twice", row)
		seen[row[0]] = true
	}
	assert.Len(t, seen, 10)
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	x, y := splitFixture(20)

	xTrain1, xTest1, _, _, err := TrainTestSplit(x, y, 0.2, 42)
	require.NoError(t, err)
	xTrain2, xTest2, _, _, err := TrainTestSplit(x, y, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, xTrain1, xTrain2)
	assert.Equal(t, xTest1, xTest2)

	// A different seed produces a different shuffle.
	_, xTest3, _, _, err := TrainTestSplit(x, y, 0.2, 7)
	require.NoError(t, err)
	assert.NotEqual(t, xTest1, xTest3)
}

func TestTrainTestSplit_SmallBatch(t *testing.T) {
	// Two rows with a tiny fraction still yield one test row.
	x, y := splitFixture(2)
	xTrain, xTest, _, _, err := TrainTestSplit(x, y, 0.1, 42)
	require.NoError(t, err)
	assert.Len(t, xTest, 1)
	assert.Len(t, xTrain, 1)

	// A fraction that truncates to zero never produces an empty test set.
	x, y = splitFixture(4)
	xTrain, xTest, _, _, err = TrainTestSplit(x, y, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, xTest, 1)
	assert.Len(t, xTrain, 3)
}

func TestTrainTestSplit_Errors(t *testing.T) {
	x, y := splitFixture(4)

	_, _, _, _, err := TrainTestSplit(x, y[:3], 0.2, 42)
	assert.Error(t, err, "length mismatch")

	_, _, _, _, err = TrainTestSplit(x, y, 0, 42)
	assert.Error(t, err, "fraction at lower bound")

	_, _, _, _, err = TrainTestSplit(x, y, 1, 42)
	assert.Error(t, err, "fraction at upper bound")

	one, oneY := splitFixture(1)
	_, _, _, _, err = TrainTestSplit(one, oneY, 0.5, 42)
	assert.Error(t, err, "single row cannot be split")
}
