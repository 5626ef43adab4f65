// Package dataset holds the tabular model compared by the reconciler and the readers
// that materialize it from CSV files, spreadsheet workbooks and database tables.
//
// A Dataset has an ordered list of columns, an ordered list of rows and one column
// promoted to the row key. Cells carry a presence flag so that "no data" stays distinct
// from any value, including the empty string.
//
// Readers fail fast when the key column is absent (ErrKeyColumnNotFound). The sentinel
// errors declared here are also used by core/reconcile, which rejects two sources of
// different kinds (ErrIncompatibleSources) before anything is read.
//
// # Usage
//
//	left, err := dataset.OpenFile("exports/before.csv", "before.csv", "eid", dataset.Options{})
//	if err != nil {
//	    return err
//	}
package dataset
