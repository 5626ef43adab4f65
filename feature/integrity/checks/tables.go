package checks

import (
	"context"
	"fmt"
	"strings"

	"report-compare/core/database"

	"gorm.io/gorm"
)

// TablesReport strictly types the result of a table readiness check.
type TablesReport struct {
	Key     string                 `json:"key"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	Columns []string `json:"columns"`
	HasKey  bool     `json:"has_key"`
	Status  string   `json:"status"` // "ok", "error"
}

// CheckTables verifies that every table exists and carries the key column, so it can
// take part in a table comparison.
func CheckTables(ctx context.Context, db *gorm.DB, tables []string, key string) (*TablesReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to check")
	}

	report := &TablesReport{
		Key:     key,
		Matched: true,
		Tables:  make(map[string]TableReport, len(tables)),
		Errors:  []string{},
	}

	for _, table := range tables {
		tblReport := TableReport{Columns: []string{}, Status: "ok"}

		cols, err := database.GetTableColumns(ctx, db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			tblReport.Status = "error"
			report.Tables[table] = tblReport
			report.Matched = false
			continue
		}
		if len(cols) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s does not exist or has no columns", table))
			tblReport.Status = "error"
			report.Tables[table] = tblReport
			report.Matched = false
			continue
		}

		tblReport.Columns = database.ColumnNames(cols)
		for _, c := range tblReport.Columns {
			if strings.EqualFold(c, key) {
				tblReport.HasKey = true
				break
			}
		}
		if !tblReport.HasKey {
			tblReport.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tblReport
	}

	return report, nil
}
