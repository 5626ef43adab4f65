package reconcile

import (
	"errors"

	"report-compare/core/dataset"
)

var (
	// ErrOutOfOrder is returned when a pipeline step is called before the step it depends on.
	ErrOutOfOrder = errors.New("reconcile step called out of order")
	// ErrMisaligned is returned when the datasets reaching the comparator do not share
	// the same columns and keys.
	ErrMisaligned = errors.New("datasets are not aligned")
)

// Reasons attached to duplicate and missing records.
const (
	ReasonDuplicate   = "Duplicate record"
	ReasonMissingFrom = "Missing from "
)

// Summary descriptions.
const (
	SummaryExtraColumns = "Extra columns"
	SummaryDuplicates   = "Duplicate records"
	SummaryMissing      = "Missing records from files"
	SummaryMismatch     = "Compare mismatch"
	SummaryAllClear     = "No mismatches comparing "
)

// State is the position of a Reconciler in the comparison pipeline.
type State int

const (
	StateLoaded State = iota
	StateColumnsAligned
	StateDeduplicated
	StateKeysAligned
	StateCompared
	StateSummarized
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateColumnsAligned:
		return "columns_aligned"
	case StateDeduplicated:
		return "deduplicated"
	case StateKeysAligned:
		return "keys_aligned"
	case StateCompared:
		return "compared"
	case StateSummarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// ExtraColumn is a column present in one source and absent from the other.
type ExtraColumn struct {
	// Source is the label of the dataset holding the column.
	Source string `json:"source"`
	// Column is the column name.
	Column string `json:"column"`
}

// Record is a full row removed from a working dataset, either because its key is
// duplicated within its source or because its key is missing from the other source.
type Record struct {
	// Source is the label of the dataset the row came from.
	Source string `json:"file"`
	// Reason explains why the row was set aside.
	Reason string `json:"err_msg"`
	// Key is the row key.
	Key string `json:"key"`
	// Values holds every non-key column of the row.
	Values map[string]dataset.Cell `json:"values"`
}

// Mismatch is a shared key and column whose values differ between the sources.
type Mismatch struct {
	Key    string       `json:"key"`
	Column string       `json:"column"`
	Left   dataset.Cell `json:"left"`
	Right  dataset.Cell `json:"right"`
}

// MismatchRow is one side of the mismatches for a key: the source label and the
// differing cells of that side. Every key with mismatches yields two rows.
type MismatchRow struct {
	Key    string
	Source string
	Values map[string]dataset.Cell
}

// SummaryRow aggregates one category of findings.
type SummaryRow struct {
	Description string `json:"description"`
	Field       string `json:"field"`
	Count       int    `json:"count"`
}

// Report bundles every artifact of a comparison run.
type Report struct {
	// Left and Right are the source labels.
	Left  string `json:"left"`
	Right string `json:"right"`
	// KeyColumn is the name of the key column.
	KeyColumn string `json:"key_column"`
	// Columns lists the shared columns of the aligned datasets.
	Columns []string `json:"columns"`
	// State is the furthest pipeline state reached.
	State string `json:"state"`

	ExtraColumns []ExtraColumn `json:"extra_columns"`
	Duplicates   []Record      `json:"duplicates"`
	Missing      []Record      `json:"missing"`
	Mismatches   []Mismatch    `json:"mismatches"`
	MismatchRows []MismatchRow `json:"-"`
	Summary      []SummaryRow  `json:"summary"`
}

// MismatchColumns returns the columns having at least one mismatch, in column order.
func (r *Report) MismatchColumns() []string {
	seen := make(map[string]struct{})
	for _, m := range r.Mismatches {
		seen[m.Column] = struct{}{}
	}
	var cols []string
	for _, c := range r.Columns {
		if _, ok := seen[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// AllClear reports whether the comparison found nothing at all.
func (r *Report) AllClear() bool {
	return len(r.ExtraColumns) == 0 && len(r.Duplicates) == 0 && len(r.Missing) == 0 && len(r.Mismatches) == 0
}
