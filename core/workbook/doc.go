// Package workbook renders a comparison report as an xlsx workbook.
//
// Sheets appear in a fixed order (Summary, Mismatches, Extra Columns, Duplicates,
// Missing Records); a sheet is left out when its table is empty. Record sheets carry the
// key column first and keep the header row and the first two columns frozen.
package workbook
