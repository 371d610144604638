package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixAddColumn(t *testing.T) {
	m := NewMatrix(2)
	require.NoError(t, m.AddColumn("a", []float64{1, 2}))

	assert.Error(t, m.AddColumn("a", []float64{3, 4}), "duplicate column name")
	assert.Error(t, m.AddColumn("b", []float64{1}), "length mismatch")

	assert.Equal(t, []string{"a"}, m.Columns())
	assert.True(t, m.HasColumn("a"))
	assert.False(t, m.HasColumn("b"))
}

func TestMatrixSplit(t *testing.T) {
	m := NewMatrix(3)
	require.NoError(t, m.AddColumn("label", []float64{1, 0, 1}))
	require.NoError(t, m.AddColumn("f1", []float64{10, 20, 30}))
	require.NoError(t, m.AddColumn("f2", []float64{0.1, 0.2, 0.3}))

	names, x, y, err := m.Split("label")
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "f2"}, names)
	assert.Equal(t, []float64{1, 0, 1}, y)
	require.Len(t, x, 3)
	assert.Equal(t, []float64{10, 0.1}, x[0])
	assert.Equal(t, []float64{30, 0.3}, x[2])
}

func TestMatrixSplit_MissingLabel(t *testing.T) {
	m := NewMatrix(1)
	require.NoError(t, m.AddColumn("f1", []float64{1}))

	_, _, _, err := m.Split("label")
	assert.Error(t, err)
}

func TestMatrixRowMajor(t *testing.T) {
	m := NewMatrix(2)
	require.NoError(t, m.AddColumn("f1", []float64{1, 2}))
	require.NoError(t, m.AddColumn("f2", []float64{3, 4}))

	names, x := m.RowMajor()
	assert.Equal(t, []string{"f1", "f2"}, names)
	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, x)
}
