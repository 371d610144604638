package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudcli/internal/features"
)

func testMatrix(t *testing.T) *features.Matrix {
	t.Helper()
	m := features.NewMatrix(2)
	require.NoError(t, m.AddColumn("TotalOrders", []float64{2, 0}))
	require.NoError(t, m.AddColumn("FailedOrderRatio", []float64{0.5, 0}))
	return m
}

func TestWriteMatrixCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.csv")
	emails := []string{"a@x.com", "b@x.com"}

	require.NoError(t, WriteMatrixCSV(path, emails, testMatrix(t)))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"customerEmail", "TotalOrders", "FailedOrderRatio"}, rows[0])
	assert.Equal(t, []string{"a@x.com", "2", "0.5"}, rows[1])
	assert.Equal(t, []string{"b@x.com", "0", "0"}, rows[2])
}

func TestWriteMatrixCSV_EmailCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.csv")

	err := WriteMatrixCSV(path, []string{"a@x.com"}, testMatrix(t))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
