package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrKeyColumnNotFound is returned when the designated key column is absent from a source.
	ErrKeyColumnNotFound = errors.New("key column not found")
	// ErrIncompatibleSources is returned when the two sides of a comparison are of different kinds.
	ErrIncompatibleSources = errors.New("sources are not of the same type")
	// ErrUnsupportedSource is returned for sources whose format cannot be read.
	ErrUnsupportedSource = errors.New("unsupported source type")
	// ErrEmptySource is returned when a source has no header row.
	ErrEmptySource = errors.New("source has no header row")
	// ErrColumnNotFound is returned when an operation names a column the dataset does not have.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when a header names the same column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Cell is a single value of a row. Present is false when the source held no data
// for the cell (empty CSV field, empty spreadsheet cell, SQL NULL).
type Cell struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// Value returns a present cell holding v.
func Value(v string) Cell {
	return Cell{Value: v, Present: true}
}

// Missing returns a cell with no data.
func Missing() Cell {
	return Cell{}
}

// String renders the cell for display; missing cells render as an empty string.
func (c Cell) String() string {
	if !c.Present {
		return ""
	}
	return c.Value
}

// Row is a single record addressed by its key.
type Row struct {
	Key    string
	Values map[string]Cell
}

// Get returns the cell for column, or a missing cell if the row has no such column.
func (r Row) Get(column string) Cell {
	return r.Values[column]
}

// Dataset is an ordered set of columns and rows with one column promoted to the key.
// The key column is not part of Columns.
type Dataset struct {
	// Name is the source label used in every reported message.
	Name string
	// KeyColumn is the name of the column promoted to the row key.
	KeyColumn string
	// Columns lists the non-key columns in source order.
	Columns []string
	// Rows lists the records in source order.
	Rows []Row
}

// New builds a dataset from a header row and a matrix of cells.
// Records shorter than the header are padded with missing cells; extra cells are ignored.
// Column names must be unique, since rows address their cells by name.
func New(name string, header []string, records [][]Cell, key string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
	}
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if j, ok := seen[h]; ok {
			return nil, fmt.Errorf("%s: %w: %q at positions %d and %d", name, ErrDuplicateColumn, h, j+1, i+1)
		}
		seen[h] = i
	}

	keyIdx := -1
	for i, h := range header {
		if h == key {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("%s: %w: %q", name, ErrKeyColumnNotFound, key)
	}

	ds := &Dataset{
		Name:      name,
		KeyColumn: key,
		Columns:   make([]string, 0, len(header)-1),
		Rows:      make([]Row, 0, len(records)),
	}
	for i, h := range header {
		if i != keyIdx {
			ds.Columns = append(ds.Columns, h)
		}
	}

	for _, rec := range records {
		row := Row{Values: make(map[string]Cell, len(ds.Columns))}
		for i, h := range header {
			c := Missing()
			if i < len(rec) {
				c = rec[i]
			}
			if i == keyIdx {
				row.Key = c.String()
				continue
			}
			row.Values[h] = c
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether column is one of the non-key columns.
func (d *Dataset) HasColumn(column string) bool {
	for _, c := range d.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// DropColumns removes the named columns from the schema and from every row.
// Every column must exist; nothing is removed otherwise.
func (d *Dataset) DropColumns(columns ...string) error {
	drop := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if !d.HasColumn(c) {
			return fmt.Errorf("%s: %w: %q", d.Name, ErrColumnNotFound, c)
		}
		drop[c] = struct{}{}
	}
	if len(drop) == 0 {
		return nil
	}

	kept := d.Columns[:0]
	for _, c := range d.Columns {
		if _, ok := drop[c]; !ok {
			kept = append(kept, c)
		}
	}
	d.Columns = kept

	for _, row := range d.Rows {
		for c := range drop {
			delete(row.Values, c)
		}
	}
	return nil
}

// Keys returns the row keys in row order.
func (d *Dataset) Keys() []string {
	keys := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		keys[i] = row.Key
	}
	return keys
}

// KeySet returns the set of distinct keys.
func (d *Dataset) KeySet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.Rows))
	for _, row := range d.Rows {
		set[row.Key] = struct{}{}
	}
	return set
}

// Index returns the position of the first row for every key.
func (d *Dataset) Index() map[string]int {
	idx := make(map[string]int, len(d.Rows))
	for i, row := range d.Rows {
		if _, ok := idx[row.Key]; !ok {
			idx[row.Key] = i
		}
	}
	return idx
}

// Clone returns a deep copy, so a comparison run never mutates caller-owned data.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Name:      d.Name,
		KeyColumn: d.KeyColumn,
		Columns:   append([]string(nil), d.Columns...),
		Rows:      make([]Row, len(d.Rows)),
	}
	for i, row := range d.Rows {
		values := make(map[string]Cell, len(row.Values))
		for k, v := range row.Values {
			values[k] = v
		}
		out.Rows[i] = Row{Key: row.Key, Values: values}
	}
	return out
}

// Kind identifies the format of a file-backed source.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

// KindOf derives the source kind from a file or object name.
func KindOf(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return KindCSV, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return KindXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, name)
	}
}
