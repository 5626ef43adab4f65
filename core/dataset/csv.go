package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a comma separated source whose first record is the header.
// Empty fields are treated as missing cells.
func ReadCSV(r io.Reader, name, key string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records [][]Cell
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		records = append(records, textCells(rec))
	}

	return New(name, header, records, key)
}

// textCells converts raw text fields to cells; empty fields carry no data.
func textCells(fields []string) []Cell {
	cells := make([]Cell, len(fields))
	for i, f := range fields {
		if f == "" {
			cells[i] = Missing()
			continue
		}
		cells[i] = Value(f)
	}
	return cells
}
