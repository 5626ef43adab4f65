package reconcile

import (
	"fmt"

	"go.uber.org/zap"
)

// Summarize builds one summary row per category of findings, in a fixed order:
// extra columns, duplicate records, missing records, then one row per mismatched
// column. When nothing was found it returns a single all-clear row.
func (r *Reconciler) Summarize() ([]SummaryRow, error) {
	if err := r.require("Summarize", StateCompared); err != nil {
		return nil, err
	}

	r.summary = buildSummary(r.left.Name, r.right.Name, r.left.Columns,
		r.extraColumns, r.duplicates, r.missing, r.MismatchRows())
	r.advance(StateSummarized)

	r.logger.Debug("Built summary", zap.Int("rows", len(r.summary)))
	return r.Summary(), nil
}

// buildSummary aggregates the artifacts. Duplicate rows and mismatch rows are listed
// once per side, so their counts are halved with integer division.
func buildSummary(leftName, rightName string, columns []string, extra []ExtraColumn, dupes, missing []Record, mismatchRows []MismatchRow) []SummaryRow {
	summary := []SummaryRow{}

	if len(extra) > 0 {
		summary = append(summary, SummaryRow{Description: SummaryExtraColumns, Count: len(extra)})
	}
	if len(dupes) > 0 {
		summary = append(summary, SummaryRow{Description: SummaryDuplicates, Count: len(dupes) / 2})
	}
	if len(missing) > 0 {
		summary = append(summary, SummaryRow{Description: SummaryMissing, Count: len(missing)})
	}

	raw := MismatchRowCounts(mismatchRows)
	for _, col := range columns {
		if n := raw[col]; n > 0 {
			summary = append(summary, SummaryRow{Description: SummaryMismatch, Field: col, Count: n / 2})
		}
	}

	if len(summary) == 0 {
		summary = append(summary, SummaryRow{
			Description: fmt.Sprintf("%s%s to %s", SummaryAllClear, leftName, rightName),
		})
	}
	return summary
}

// MismatchRowCounts counts, per column, the flattened mismatch rows holding a value for it.
func MismatchRowCounts(rows []MismatchRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		for col := range row.Values {
			counts[col]++
		}
	}
	return counts
}
