// Package reconcile compares two tabular datasets that share a key column.
//
// A Reconciler owns private copies of both datasets and walks them through a fixed
// sequence of steps. Each step records its findings and leaves the datasets better
// aligned for the next one:
//
//  1. FindExtraColumns / DropExtraColumns: columns present on only one side.
//  2. Deduplicate: every row whose key repeats on its side; the first occurrence is kept.
//  3. DropMissingRecords: rows whose key exists on only one side.
//  4. Compare: cell-level differences between rows present on both sides.
//  5. Summarize: one row per finding category, or a single all-clear row.
//
// Calling a step before its predecessor returns ErrOutOfOrder. Artifacts of steps that
// have not run are empty.
//
// # Usage Example
//
//	left, _ := dataset.OpenFile("before.csv", "before.csv", "eid", dataset.Options{})
//	right, _ := dataset.OpenFile("after.csv", "after.csv", "eid", dataset.Options{})
//
//	r, err := reconcile.New(left, right, reconcile.Options{Logger: log})
//	if err != nil {
//	    return err
//	}
//	report, err := r.Run()
//
// Sources (files, storage objects, database tables) can be compared in one call with
// CompareSources. ReportCache keeps finished reports for a configurable TTL.
package reconcile
