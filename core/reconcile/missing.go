package reconcile

import (
	"report-compare/core/dataset"

	"go.uber.org/zap"
)

// DropMissingRecords sets aside the rows whose key does not occur in the other dataset
// and narrows both datasets to the shared keys. Left rows come first.
func (r *Reconciler) DropMissingRecords() ([]Record, error) {
	if err := r.require("DropMissingRecords", StateDeduplicated); err != nil {
		return nil, err
	}

	leftKeys := r.left.KeySet()
	rightKeys := r.right.KeySet()

	leftMissing := narrow(r.left, rightKeys, ReasonMissingFrom+r.right.Name)
	rightMissing := narrow(r.right, leftKeys, ReasonMissingFrom+r.left.Name)

	r.missing = append(leftMissing, rightMissing...)
	r.advance(StateKeysAligned)

	r.logger.Debug("Dropped missing records",
		zap.Int("left_missing", len(leftMissing)),
		zap.Int("right_missing", len(rightMissing)),
		zap.Int("shared_keys", r.left.Len()),
	)
	return r.Missing(), nil
}

// narrow keeps the rows of ds whose key is in keep and returns the others as records.
func narrow(ds *dataset.Dataset, keep map[string]struct{}, reason string) []Record {
	missing := []Record{}
	kept := make([]dataset.Row, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if _, ok := keep[row.Key]; ok {
			kept = append(kept, row)
			continue
		}
		missing = append(missing, newRecord(ds.Name, reason, row))
	}
	ds.Rows = kept
	return missing
}
