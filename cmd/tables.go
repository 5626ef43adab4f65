package cmd

import (
	"fmt"

	"report-compare/core/database"
	"report-compare/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tablesKey    string
	tablesOut    string
	tablesUpload bool
)

// tablesCmd compares two database tables.
var tablesCmd = &cobra.Command{
	Use:   "tables <left_table> <right_table>",
	Short: "Compare two database tables",
	Long: `Compare two tables of the configured database (mysql or sqlite) sharing a key column.

Examples:
  report-compare tables employees_2023 employees_2024 --key eid --out results.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, l, err := loadConfigAndLogger()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		key := orDefault(tablesKey, cfg.Compare.Key)
		l.Info("Comparing tables", zap.String("left", args[0]), zap.String("right", args[1]), zap.String("key", key))

		report, err := reconcile.CompareSources(ctx,
			reconcile.TableSource{DB: db, Table: args[0]},
			reconcile.TableSource{DB: db, Table: args[1]},
			key, compareOptions(cfg, l))
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		return emitReport(ctx, l, cfg, nil, report, tablesOut, tablesUpload)
	},
}

func init() {
	tablesCmd.Flags().StringVar(&tablesKey, "key", "", "Key column (defaults to compare.key)")
	tablesCmd.Flags().StringVar(&tablesOut, "out", "", "Write the result workbook to this path")
	tablesCmd.Flags().BoolVar(&tablesUpload, "upload", false, "Upload the result workbook to the results folder of the bucket")

	RootCmd.AddCommand(tablesCmd)
}
