package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  float64
	}{
		{name: "perfect", yTrue: []float64{1, 0, 1}, yPred: []float64{1, 0, 1}, want: 1},
		{name: "half", yTrue: []float64{1, 0, 1, 0}, yPred: []float64{1, 1, 0, 0}, want: 0.5},
		{name: "empty", yTrue: nil, yPred: nil, want: 0},
		{name: "length mismatch", yTrue: []float64{1}, yPred: []float64{1, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Accuracy(tt.yTrue, tt.yPred), 1e-9)
		})
	}
}
