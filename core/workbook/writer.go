package workbook

import (
	"fmt"
	"io"
	"sort"

	"report-compare/core/dataset"
	"report-compare/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetSummary      = "Summary"
	SheetMismatches   = "Mismatches"
	SheetExtraColumns = "Extra Columns"
	SheetDuplicates   = "Duplicates"
	SheetMissing      = "Missing Records"
)

// Column headers shared by the record sheets.
const (
	HeaderSource      = "file"
	HeaderReason      = "err_msg"
	HeaderExtraSource = "Source"
	HeaderExtraColumn = "Extra Column"
)

var summaryHeader = []any{"Description", "Field", "Count"}

// Build renders report into a new workbook. The caller owns the returned file and must Close it.
// A report that was never summarized gets no Summary sheet, unless no other sheet has
// content either; then Summary holds a single note naming the state the comparison reached.
func Build(report *reconcile.Report) (*excelize.File, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	f := excelize.NewFile()
	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	steps := []func(*excelize.File, *reconcile.Report) error{
		writeSummary,
		writeMismatches,
		writeExtraColumns,
		writeDuplicates,
		writeMissing,
	}
	for _, step := range steps {
		if err := step(f, report); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := finishUnsummarized(f, report); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write renders report and streams the workbook to w.
func Write(w io.Writer, report *reconcile.Report) error {
	f, err := Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save renders report and writes the workbook to path.
func Save(path string, report *reconcile.Report) error {
	f, err := Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *reconcile.Report) error {
	if len(report.Summary) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(report.Summary))
	for _, s := range report.Summary {
		var count any
		if s.Count != 0 {
			count = s.Count
		}
		rows = append(rows, []any{s.Description, s.Field, count})
	}
	return writeTable(f, SheetSummary, summaryHeader, rows, false)
}

func finishUnsummarized(f *excelize.File, report *reconcile.Report) error {
	if len(report.Summary) != 0 {
		return nil
	}
	if len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet(SheetSummary); err != nil {
			return fmt.Errorf("failed to remove summary sheet: %w", err)
		}
		return nil
	}

	note := []any{fmt.Sprintf("Comparison of %s to %s not summarized (state: %s)", report.Left, report.Right, report.State)}
	if err := f.SetSheetRow(SheetSummary, "A1", &note); err != nil {
		return fmt.Errorf("failed to write %s note: %w", SheetSummary, err)
	}
	return nil
}

func writeMismatches(f *excelize.File, report *reconcile.Report) error {
	if len(report.MismatchRows) == 0 {
		return nil
	}

	columns := report.MismatchColumns()
	header := append([]any{report.KeyColumn, HeaderSource}, toAny(columns)...)

	rows := make([][]any, 0, len(report.MismatchRows))
	for _, m := range report.MismatchRows {
		row := []any{m.Key, m.Source}
		for _, c := range columns {
			row = append(row, cellValue(m.Values, c))
		}
		rows = append(rows, row)
	}
	return addTable(f, SheetMismatches, header, rows, true)
}

func writeExtraColumns(f *excelize.File, report *reconcile.Report) error {
	if len(report.ExtraColumns) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(report.ExtraColumns))
	for _, e := range report.ExtraColumns {
		rows = append(rows, []any{e.Source, e.Column})
	}
	return addTable(f, SheetExtraColumns, []any{HeaderExtraSource, HeaderExtraColumn}, rows, false)
}

func writeDuplicates(f *excelize.File, report *reconcile.Report) error {
	return writeRecords(f, SheetDuplicates, report.KeyColumn, report.Columns, report.Duplicates)
}

func writeMissing(f *excelize.File, report *reconcile.Report) error {
	return writeRecords(f, SheetMissing, report.KeyColumn, report.Columns, report.Missing)
}

func writeRecords(f *excelize.File, sheet, key string, known []string, records []reconcile.Record) error {
	if len(records) == 0 {
		return nil
	}

	columns := recordColumns(known, records)
	header := append([]any{key, HeaderSource, HeaderReason}, toAny(columns)...)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := []any{rec.Key, rec.Source, rec.Reason}
		for _, c := range columns {
			row = append(row, cellValue(rec.Values, c))
		}
		rows = append(rows, row)
	}
	return addTable(f, sheet, header, rows, true)
}

// recordColumns returns the known columns followed by any other column found in records, sorted.
func recordColumns(known []string, records []reconcile.Record) []string {
	seen := make(map[string]struct{}, len(known))
	columns := append([]string(nil), known...)
	for _, c := range known {
		seen[c] = struct{}{}
	}

	var rest []string
	for _, rec := range records {
		for c := range rec.Values {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				rest = append(rest, c)
			}
		}
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func addTable(f *excelize.File, sheet string, header []any, rows [][]any, freeze bool) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	return writeTable(f, sheet, header, rows, freeze)
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any, freeze bool) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if !freeze {
		return nil
	}
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      1,
		TopLeftCell: "C2",
		ActivePane:  "bottomRight",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze %s panes: %w", sheet, err)
	}
	return nil
}

// cellValue returns nil for missing cells so they stay empty in the sheet.
func cellValue(values map[string]dataset.Cell, column string) any {
	c, ok := values[column]
	if !ok || !c.Present {
		return nil
	}
	return c.Value
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
