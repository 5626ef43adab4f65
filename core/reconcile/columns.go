package reconcile

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// FindExtraColumns records the columns present in one dataset and absent from the other.
// The comparison is set based, so column order never matters. It does not modify
// either dataset and may be called in any state; once Deduplicate has run the result
// is returned without replacing the recorded artifact.
func (r *Reconciler) FindExtraColumns() []ExtraColumn {
	leftExtra := difference(r.left.Columns, r.right.Columns)
	rightExtra := difference(r.right.Columns, r.left.Columns)

	extra := make([]ExtraColumn, 0, len(leftExtra)+len(rightExtra))
	for _, c := range leftExtra {
		extra = append(extra, ExtraColumn{Source: r.left.Name, Column: c})
	}
	for _, c := range rightExtra {
		extra = append(extra, ExtraColumn{Source: r.right.Name, Column: c})
	}

	r.logger.Debug("Found extra columns",
		zap.Strings("left_extra", leftExtra),
		zap.Strings("right_extra", rightExtra),
	)
	if r.state > StateColumnsAligned {
		return extra
	}

	r.leftExtra, r.rightExtra = leftExtra, rightExtra
	r.extraColumns = extra
	r.extraFound = true
	return r.ExtraColumns()
}

// DropExtraColumns removes from each dataset the extra columns found by FindExtraColumns
// and returns how many columns were dropped across both datasets. Afterwards both
// datasets share the same column set.
//
// Dropping a column that no longer exists means the working state was changed behind
// the detector's back, and fails with dataset.ErrColumnNotFound.
func (r *Reconciler) DropExtraColumns() (int, error) {
	if r.state > StateColumnsAligned {
		return 0, fmt.Errorf("%w: DropExtraColumns already ran, current state is %s", ErrOutOfOrder, r.state)
	}
	if !r.extraFound {
		return 0, fmt.Errorf("%w: DropExtraColumns requires FindExtraColumns", ErrOutOfOrder)
	}

	before := len(r.left.Columns) + len(r.right.Columns)

	if err := r.left.DropColumns(r.leftExtra...); err != nil {
		return 0, fmt.Errorf("failed to drop extra columns: %w", err)
	}
	if err := r.right.DropColumns(r.rightExtra...); err != nil {
		return 0, fmt.Errorf("failed to drop extra columns: %w", err)
	}

	dropped := before - len(r.left.Columns) - len(r.right.Columns)
	r.advance(StateColumnsAligned)

	r.logger.Debug("Dropped extra columns", zap.Int("dropped", dropped))
	return dropped, nil
}

// difference returns the members of a missing from b, sorted.
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, c := range b {
		in[c] = struct{}{}
	}
	out := []string{}
	for _, c := range a {
		if _, ok := in[c]; !ok {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
