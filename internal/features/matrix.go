package features

import (
	"fmt"

	"fraudcli/internal/errors"
)

// Matrix is a fully numeric feature matrix: an ordered list of column names
// over column-major float64 data, with rows aligned across columns.
type Matrix struct {
	columns []string
	data    map[string][]float64
	rows    int
}

// NewMatrix creates an empty matrix with a fixed row count.
func NewMatrix(rows int) *Matrix {
	return &Matrix{
		data: make(map[string][]float64),
		rows: rows,
	}
}

// AddColumn appends a named column. The column length must equal the matrix
// row count and the name must be unique.
func (m *Matrix) AddColumn(name string, values []float64) error {
	if len(values) != m.rows {
		return errors.NewValidationError(
			fmt.Sprintf("column %s has %d values, matrix has %d rows", name, len(values), m.rows))
	}
	if _, exists := m.data[name]; exists {
		return errors.NewValidationError(fmt.Sprintf("column %s already present", name))
	}
	m.columns = append(m.columns, name)
	m.data[name] = values
	return nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Columns returns the ordered column names.
func (m *Matrix) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (m *Matrix) HasColumn(name string) bool {
	_, ok := m.data[name]
	return ok
}

// Column returns the named column.
func (m *Matrix) Column(name string) ([]float64, bool) {
	col, ok := m.data[name]
	return col, ok
}

// Row returns row i in column order.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, len(m.columns))
	for j, name := range m.columns {
		row[j] = m.data[name][i]
	}
	return row
}

// Split separates the matrix into feature names, row-major feature values and
// the label column. The label must be present; all other columns are features.
func (m *Matrix) Split(label string) ([]string, [][]float64, []float64, error) {
	labelCol, ok := m.data[label]
	if !ok {
		return nil, nil, nil, errors.NewModelError(fmt.Sprintf("label column %s not present", label), nil)
	}

	names := make([]string, 0, len(m.columns)-1)
	for _, name := range m.columns {
		if name != label {
			names = append(names, name)
		}
	}

	x := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		row := make([]float64, len(names))
		for j, name := range names {
			row[j] = m.data[name][i]
		}
		x[i] = row
	}

	y := make([]float64, m.rows)
	copy(y, labelCol)

	return names, x, y, nil
}

// RowMajor returns all columns as row-major values alongside their names.
// Used for unlabeled scoring batches.
func (m *Matrix) RowMajor() ([]string, [][]float64) {
	names := m.Columns()
	x := make([][]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		x[i] = m.Row(i)
	}
	return names, x
}
