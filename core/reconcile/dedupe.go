package reconcile

import (
	"report-compare/core/dataset"

	"go.uber.org/zap"
)

// Deduplicate collects every row whose key occurs more than once within its own dataset,
// then keeps only the first occurrence of each key. Left duplicates come first.
func (r *Reconciler) Deduplicate() ([]Record, error) {
	if err := r.require("Deduplicate", StateColumnsAligned); err != nil {
		return nil, err
	}

	leftDupes := dedupe(r.left)
	rightDupes := dedupe(r.right)

	r.duplicates = append(leftDupes, rightDupes...)
	r.advance(StateDeduplicated)

	r.logger.Debug("Deduplicated datasets",
		zap.Int("left_duplicates", len(leftDupes)),
		zap.Int("right_duplicates", len(rightDupes)),
	)
	return r.Duplicates(), nil
}

// dedupe removes repeated keys from ds in place and returns all rows of every
// repeated key, in row order.
func dedupe(ds *dataset.Dataset) []Record {
	counts := make(map[string]int, len(ds.Rows))
	for _, row := range ds.Rows {
		counts[row.Key]++
	}

	dupes := []Record{}
	seen := make(map[string]struct{}, len(ds.Rows))
	kept := make([]dataset.Row, 0, len(counts))
	for _, row := range ds.Rows {
		if counts[row.Key] > 1 {
			dupes = append(dupes, newRecord(ds.Name, ReasonDuplicate, row))
		}
		if _, ok := seen[row.Key]; ok {
			continue
		}
		seen[row.Key] = struct{}{}
		kept = append(kept, row)
	}
	ds.Rows = kept

	return dupes
}

// newRecord copies a row into a Record so later steps cannot alter it.
func newRecord(source, reason string, row dataset.Row) Record {
	values := make(map[string]dataset.Cell, len(row.Values))
	for k, v := range row.Values {
		values[k] = v
	}
	return Record{Source: source, Reason: reason, Key: row.Key, Values: values}
}
