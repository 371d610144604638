package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"fraudcli/internal/errors"
	"fraudcli/internal/features"
)

// WriteMatrixCSV writes the feature matrix to a CSV file for inspection. The
// customer email is prepended as an identifier column; it is not part of the
// numeric matrix itself.
func WriteMatrixCSV(path string, emails []string, matrix *features.Matrix) error {
	if len(emails) != matrix.Rows() {
		return errors.NewValidationError(
			fmt.Sprintf("email count (%d) does not match matrix rows (%d)", len(emails), matrix.Rows()))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create CSV file %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"customerEmail"}, matrix.Columns()...)
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for i := 0; i < matrix.Rows(); i++ {
		values := matrix.Row(i)
		row := make([]string, 0, len(values)+1)
		row = append(row, emails[i])
		for _, v := range values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	slog.Info("wrote feature matrix CSV",
		slog.String("path", path),
		slog.Int("rows", matrix.Rows()),
		slog.Int("columns", len(matrix.Columns())))

	return nil
}
