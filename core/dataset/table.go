package dataset

import (
	"context"
	"fmt"
	"strings"

	"report-compare/core/database"
	"report-compare/core/utils"

	"gorm.io/gorm"
)

// ReadTable loads every row of a database table. The key column is matched
// case-insensitively against the table's columns; NULL values become missing cells.
func ReadTable(ctx context.Context, db *gorm.DB, table, name, key string) (*Dataset, error) {
	columns, err := database.GetTableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
	}

	header := database.ColumnNames(columns)
	resolved := ""
	for _, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(key)) {
			resolved = h
			break
		}
	}
	if resolved == "" {
		return nil, fmt.Errorf("%s: %w: %q", name, ErrKeyColumnNotFound, key)
	}

	rows, err := db.WithContext(ctx).Table(table).Select(header).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	var records [][]Cell
	for rows.Next() {
		raw := make([]any, len(header))
		dest := make([]any, len(header))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
		}

		rec := make([]Cell, len(header))
		for i, v := range raw {
			if v == nil {
				rec[i] = Missing()
				continue
			}
			rec[i] = Value(utils.ToString(v))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	return New(name, header, records, resolved)
}
