package reconcile

import (
	"fmt"
	"strings"

	"report-compare/core/dataset"
	"report-compare/core/logger"
	"report-compare/core/utils"

	"go.uber.org/zap"
)

// Options tunes a comparison run.
type Options struct {
	// TrimSpaces collapses whitespace in values before they are compared.
	TrimSpaces bool
	// CaseInsensitive compares values without regard to case.
	CaseInsensitive bool
	// Logger receives per-step debug logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Reconciler runs one comparison of two datasets.
//
// The steps must run in order: FindExtraColumns, DropExtraColumns, Deduplicate,
// DropMissingRecords, Compare, Summarize. Each mutating step checks the state left by
// the previous one and returns ErrOutOfOrder otherwise. Run executes all of them.
//
// A Reconciler is single-use and not safe for concurrent use. Independent comparisons
// may run in parallel with one Reconciler each.
type Reconciler struct {
	left   *dataset.Dataset
	right  *dataset.Dataset
	opts   Options
	logger *zap.Logger
	state  State

	extraFound bool
	leftExtra  []string
	rightExtra []string

	extraColumns []ExtraColumn
	duplicates   []Record
	missing      []Record
	mismatches   []Mismatch
	summary      []SummaryRow
}

// New creates a Reconciler over copies of left and right, so the caller's datasets
// are never mutated. Both datasets must be keyed on the same column.
func New(left, right *dataset.Dataset, opts Options) (*Reconciler, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("both datasets are required")
	}
	if !strings.EqualFold(left.KeyColumn, right.KeyColumn) {
		return nil, fmt.Errorf("%w: %s is keyed on %q, %s on %q",
			dataset.ErrKeyColumnNotFound, left.Name, left.KeyColumn, right.Name, right.KeyColumn)
	}

	return &Reconciler{
		left:         left.Clone(),
		right:        right.Clone(),
		opts:         opts,
		logger:       logger.ForComparison(opts.Logger, left.Name, right.Name),
		state:        StateLoaded,
		extraColumns: []ExtraColumn{},
		duplicates:   []Record{},
		missing:      []Record{},
		mismatches:   []Mismatch{},
		summary:      []SummaryRow{},
	}, nil
}

// Run executes the whole pipeline and returns the report.
func (r *Reconciler) Run() (*Report, error) {
	r.FindExtraColumns()

	if _, err := r.DropExtraColumns(); err != nil {
		return nil, err
	}
	if _, err := r.Deduplicate(); err != nil {
		return nil, err
	}
	if _, err := r.DropMissingRecords(); err != nil {
		return nil, err
	}
	if _, err := r.Compare(); err != nil {
		return nil, err
	}
	if _, err := r.Summarize(); err != nil {
		return nil, err
	}

	r.logger.Info("Comparison finished",
		zap.Int("extra_columns", len(r.extraColumns)),
		zap.Int("duplicates", len(r.duplicates)),
		zap.Int("missing", len(r.missing)),
		zap.Int("mismatches", len(r.mismatches)),
	)

	return r.Report(), nil
}

// Report returns the artifacts produced so far. It may be called after a partial run.
func (r *Reconciler) Report() *Report {
	return &Report{
		Left:         r.left.Name,
		Right:        r.right.Name,
		KeyColumn:    r.left.KeyColumn,
		Columns:      append([]string(nil), r.left.Columns...),
		State:        r.state.String(),
		ExtraColumns: r.ExtraColumns(),
		Duplicates:   r.Duplicates(),
		Missing:      r.Missing(),
		Mismatches:   r.Mismatches(),
		MismatchRows: r.MismatchRows(),
		Summary:      r.Summary(),
	}
}

// State returns the current pipeline state.
func (r *Reconciler) State() State {
	return r.state
}

// Left returns the left working dataset.
func (r *Reconciler) Left() *dataset.Dataset {
	return r.left
}

// Right returns the right working dataset.
func (r *Reconciler) Right() *dataset.Dataset {
	return r.right
}

// ExtraColumns returns the extra columns found by the last FindExtraColumns call.
func (r *Reconciler) ExtraColumns() []ExtraColumn {
	return append([]ExtraColumn{}, r.extraColumns...)
}

// Duplicates returns every row of a duplicated key, left rows first.
func (r *Reconciler) Duplicates() []Record {
	return append([]Record{}, r.duplicates...)
}

// Missing returns the rows whose key is absent from the other dataset, left rows first.
func (r *Reconciler) Missing() []Record {
	return append([]Record{}, r.missing...)
}

// Mismatches returns one record per differing key and column.
func (r *Reconciler) Mismatches() []Mismatch {
	return append([]Mismatch{}, r.mismatches...)
}

// Summary returns the summary rows built by Summarize.
func (r *Reconciler) Summary() []SummaryRow {
	return append([]SummaryRow{}, r.summary...)
}

// require fails with ErrOutOfOrder unless the pipeline is exactly at want. A step
// cannot run again once a later step has run, so its artifact never changes.
func (r *Reconciler) require(step string, want State) error {
	if r.state < want {
		return fmt.Errorf("%w: %s requires state %s, current state is %s", ErrOutOfOrder, step, want, r.state)
	}
	if r.state > want {
		return fmt.Errorf("%w: %s already ran, current state is %s", ErrOutOfOrder, step, r.state)
	}
	return nil
}

// advance moves the pipeline forward; it never moves it back.
func (r *Reconciler) advance(to State) {
	if to > r.state {
		r.state = to
	}
}

// equal compares two cells. Two missing cells are equal; a missing cell never equals
// a present one, whatever its value.
func (r *Reconciler) equal(a, b dataset.Cell) bool {
	if !a.Present || !b.Present {
		return a.Present == b.Present
	}
	if r.opts.TrimSpaces || r.opts.CaseInsensitive {
		return utils.Normalize(a.Value, r.opts.TrimSpaces, r.opts.CaseInsensitive) ==
			utils.Normalize(b.Value, r.opts.TrimSpaces, r.opts.CaseInsensitive)
	}
	return a.Value == b.Value
}
