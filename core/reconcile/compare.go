package reconcile

import (
	"fmt"

	"report-compare/core/dataset"

	"go.uber.org/zap"
)

// Compare aligns the right dataset to the left dataset's key order and compares every
// shared column of every shared key. A cell missing on both sides is not a mismatch;
// a cell missing on one side only is.
//
// Both datasets must have the same columns and the same unique keys, which
// DropExtraColumns, Deduplicate and DropMissingRecords guarantee.
func (r *Reconciler) Compare() ([]Mismatch, error) {
	if err := r.require("Compare", StateKeysAligned); err != nil {
		return nil, err
	}
	if err := r.align(); err != nil {
		return nil, err
	}

	mismatches := []Mismatch{}
	for i, lrow := range r.left.Rows {
		rrow := r.right.Rows[i]
		for _, col := range r.left.Columns {
			lc, rc := lrow.Get(col), rrow.Get(col)
			if r.equal(lc, rc) {
				continue
			}
			mismatches = append(mismatches, Mismatch{Key: lrow.Key, Column: col, Left: lc, Right: rc})
		}
	}

	r.mismatches = mismatches
	r.advance(StateCompared)

	r.logger.Debug("Compared datasets",
		zap.Int("rows", r.left.Len()),
		zap.Int("columns", len(r.left.Columns)),
		zap.Int("mismatches", len(mismatches)),
	)
	return r.Mismatches(), nil
}

// align reorders the right dataset to the left dataset's key order after checking
// that both datasets share columns and keys.
func (r *Reconciler) align() error {
	if len(difference(r.left.Columns, r.right.Columns)) > 0 || len(difference(r.right.Columns, r.left.Columns)) > 0 {
		return fmt.Errorf("%w: column sets differ", ErrMisaligned)
	}
	if r.left.Len() != r.right.Len() {
		return fmt.Errorf("%w: %d rows against %d", ErrMisaligned, r.left.Len(), r.right.Len())
	}

	index := r.right.Index()
	if len(index) != r.right.Len() {
		return fmt.Errorf("%w: %s has duplicate keys", ErrMisaligned, r.right.Name)
	}

	ordered := make([]dataset.Row, 0, r.right.Len())
	seen := make(map[string]struct{}, r.left.Len())
	for _, row := range r.left.Rows {
		if _, dup := seen[row.Key]; dup {
			return fmt.Errorf("%w: %s has duplicate keys", ErrMisaligned, r.left.Name)
		}
		seen[row.Key] = struct{}{}

		pos, ok := index[row.Key]
		if !ok {
			return fmt.Errorf("%w: key %q missing from %s", ErrMisaligned, row.Key, r.right.Name)
		}
		ordered = append(ordered, r.right.Rows[pos])
	}
	r.right.Rows = ordered
	return nil
}

// MismatchesByColumn groups the mismatches per column.
func (r *Reconciler) MismatchesByColumn() map[string][]Mismatch {
	grouped := make(map[string][]Mismatch)
	for _, m := range r.mismatches {
		grouped[m.Column] = append(grouped[m.Column], m)
	}
	return grouped
}

// MismatchRows flattens the mismatches into one row per key and side: the left row
// then the right row, each holding only the cells that differ for that key.
func (r *Reconciler) MismatchRows() []MismatchRow {
	return flattenMismatches(r.mismatches, r.left.Name, r.right.Name)
}

func flattenMismatches(mismatches []Mismatch, leftName, rightName string) []MismatchRow {
	rows := []MismatchRow{}
	pos := make(map[string]int)
	for _, m := range mismatches {
		i, ok := pos[m.Key]
		if !ok {
			i = len(rows)
			pos[m.Key] = i
			rows = append(rows,
				MismatchRow{Key: m.Key, Source: leftName, Values: map[string]dataset.Cell{}},
				MismatchRow{Key: m.Key, Source: rightName, Values: map[string]dataset.Cell{}},
			)
		}
		rows[i].Values[m.Column] = m.Left
		rows[i+1].Values[m.Column] = m.Right
	}
	return rows
}
