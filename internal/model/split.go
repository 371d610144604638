package model

import (
	"fmt"
	"math/rand"

	"fraudcli/internal/errors"
)

// TrainTestSplit shuffles row indices with the given seed and partitions the
// data into train and test sets. The split is deterministic for a fixed seed.
func TrainTestSplit(x [][]float64, y []float64, testFraction float64, seed int64) (
	xTrain, xTest [][]float64, yTrain, yTest []float64, err error) {

	if len(x) != len(y) {
		return nil, nil, nil, nil, errors.NewModelError(
			fmt.Sprintf("feature rows (%d) and labels (%d) differ in length", len(x), len(y)), nil)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, nil, nil, errors.NewModelError(
			fmt.Sprintf("test fraction %.2f outside (0, 1)", testFraction), nil)
	}

	n := len(x)
	testSize := int(float64(n) * testFraction)
	if testSize == 0 {
		testSize = 1
	}
	if n-testSize < 1 {
		return nil, nil, nil, nil, errors.NewModelError(
			fmt.Sprintf("batch of %d rows too small to split with test fraction %.2f", n, testFraction), nil)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	for i, idx := range perm {
		if i < testSize {
			xTest = append(xTest, x[idx])
			yTest = append(yTest, y[idx])
		} else {
			xTrain = append(xTrain, x[idx])
			yTrain = append(yTrain, y[idx])
		}
	}

	return xTrain, xTest, yTrain, yTest, nil
}
