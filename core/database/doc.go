// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL or SQLite connections based on the application's configuration. Database
// tables are one of the sources a comparison can read from.
//
// # Connect
//
// Connect establishes a connection for the configured driver. MySQL connections get
// pooled settings and DSN timeouts; SQLite connections are pinned to a single
// connection so in-memory databases stay visible across queries.
//
// # Schema Inspection
//
// GetTableColumns returns the columns of a table in declaration order. The table
// loader in core/dataset uses it to fail fast when the key column is missing and to
// keep the table's column order.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(ctx, db, "employees")
package database
