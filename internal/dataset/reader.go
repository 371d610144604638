package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fraudcli/internal/errors"
	"fraudcli/pkg/contracts/domain"
)

// maxLineSize bounds a single NDJSON line. Records carry full order and
// transaction histories, so the default bufio limit of 64KB is too small.
const maxLineSize = 10 * 1024 * 1024

// ReadFile reads raw customer records from a line-delimited JSON file,
// one JSON object per non-empty line.
func ReadFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, err
	}

	slog.Info("read raw records from file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return records, nil
}

// Read decodes raw customer records from an NDJSON stream. Blank lines are
// skipped; a malformed line is a fatal parsing error carrying the line number.
func Read(r io.Reader) ([]domain.RawRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var records []domain.RawRecord
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(trimSpace(line)) == 0 {
			continue
		}

		var record domain.RawRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("malformed JSON on line %d", lineNo), err).
				WithContext("line", lineNo)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewStorageError("failed to read input stream", err)
	}

	return records, nil
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\t' || b[start] == '\r') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\r') {
		end--
	}
	return b[start:end]
}
