package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fraudcli/internal/errors"
	"fraudcli/internal/features"
)

const matrixSheet = "Features"

// WriteMatrixXLSX writes the feature matrix to an Excel workbook, one sheet
// with a header row, the email identifier column first.
func WriteMatrixXLSX(path string, emails []string, matrix *features.Matrix) error {
	if len(emails) != matrix.Rows() {
		return errors.NewValidationError(
			fmt.Sprintf("email count (%d) does not match matrix rows (%d)", len(emails), matrix.Rows()))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for Excel output", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), matrixSheet); err != nil {
		return errors.NewStorageError("failed to name Excel sheet", err)
	}

	header := append([]string{"customerEmail"}, matrix.Columns()...)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.NewStorageError("failed to compute Excel cell name", err)
		}
		if err := f.SetCellValue(matrixSheet, cell, name); err != nil {
			return errors.NewStorageError("failed to write Excel header", err)
		}
	}

	for i := 0; i < matrix.Rows(); i++ {
		rowIdx := i + 2
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return errors.NewStorageError("failed to compute Excel cell name", err)
		}
		if err := f.SetCellValue(matrixSheet, cell, emails[i]); err != nil {
			return errors.NewStorageError("failed to write Excel row", err)
		}
		for j, v := range matrix.Row(i) {
			cell, err := excelize.CoordinatesToCellName(j+2, rowIdx)
			if err != nil {
				return errors.NewStorageError("failed to compute Excel cell name", err)
			}
			if err := f.SetCellValue(matrixSheet, cell, v); err != nil {
				return errors.NewStorageError("failed to write Excel row", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save Excel file %s", path), err)
	}

	slog.Info("wrote feature matrix workbook",
		slog.String("path", path),
		slog.Int("rows", matrix.Rows()))

	return nil
}
