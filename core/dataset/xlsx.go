package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one sheet of a spreadsheet workbook whose first row is the header.
// An empty sheet name selects the first sheet of the workbook.
func ReadXLSX(r io.Reader, name, key, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
	}

	records := make([][]Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// GetRows trims trailing empty cells; New pads them back as missing.
		records = append(records, textCells(row))
	}

	return New(name, rows[0], records, key)
}
