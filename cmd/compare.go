package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"report-compare/core/config"
	"report-compare/core/dataset"
	"report-compare/core/reconcile"
	"report-compare/core/storage"
	"report-compare/core/workbook"
	"report-compare/feature/compare"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compareKey         string
	compareOut         string
	compareLeftName    string
	compareRightName   string
	compareSheet       string
	compareFromStorage bool
	compareUpload      bool
)

// compareCmd compares two files.
var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "Compare two CSV or spreadsheet files",
	Long: `Compare two CSV or spreadsheet files sharing a key column.

Both files must be of the same kind. The summary is logged; the full report is
written as a workbook with --out and/or uploaded to the results folder with --upload.

Examples:
  # Compare two local files and write the workbook
  report-compare compare before.csv after.csv --key eid --out results.xlsx

  # Compare two objects of the inputs folder and store the result in the bucket
  report-compare compare before.xlsx after.xlsx --key eid --from-storage --upload`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareKey, "key", "", "Key column (defaults to compare.key)")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "Write the result workbook to this path")
	compareCmd.Flags().StringVar(&compareLeftName, "left-name", "", "Label of the left file (defaults to its file name)")
	compareCmd.Flags().StringVar(&compareRightName, "right-name", "", "Label of the right file (defaults to its file name)")
	compareCmd.Flags().StringVar(&compareSheet, "sheet", "", "Worksheet of spreadsheet inputs (defaults to the first)")
	compareCmd.Flags().BoolVar(&compareFromStorage, "from-storage", false, "Read both files from the inputs folder of the bucket")
	compareCmd.Flags().BoolVar(&compareUpload, "upload", false, "Upload the result workbook to the results folder of the bucket")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer l.Sync()

	key := orDefault(compareKey, cfg.Compare.Key)
	opts := dataset.Options{Sheet: orDefault(compareSheet, cfg.Compare.Sheet)}

	var client storage.Client
	if compareFromStorage || compareUpload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	var left, right reconcile.Source
	if compareFromStorage {
		left = reconcile.ObjectSource{
			Client:  client,
			Bucket:  cfg.Storage.Bucket,
			Object:  storage.ObjectName(cfg.Compare.InputsPrefix, args[0]),
			Name:    orDefault(compareLeftName, filepath.Base(args[0])),
			Options: opts,
		}
		right = reconcile.ObjectSource{
			Client:  client,
			Bucket:  cfg.Storage.Bucket,
			Object:  storage.ObjectName(cfg.Compare.InputsPrefix, args[1]),
			Name:    orDefault(compareRightName, filepath.Base(args[1])),
			Options: opts,
		}
	} else {
		left = reconcile.FileSource{Path: args[0], Name: orDefault(compareLeftName, filepath.Base(args[0])), Options: opts}
		right = reconcile.FileSource{Path: args[1], Name: orDefault(compareRightName, filepath.Base(args[1])), Options: opts}
	}

	l.Info("Comparing files", zap.String("left", left.Label()), zap.String("right", right.Label()), zap.String("key", key))

	report, err := reconcile.CompareSources(ctx, left, right, key, compareOptions(cfg, l))
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	return emitReport(ctx, l, cfg, client, report, compareOut, compareUpload)
}

// emitReport logs the summary, then writes and uploads the workbook as requested.
func emitReport(ctx context.Context, l *zap.Logger, cfg *config.Config, client storage.Client, report *reconcile.Report, out string, upload bool) error {
	logSummary(l, report)

	if out != "" {
		if err := workbook.Save(out, report); err != nil {
			return err
		}
		l.Info("Result workbook written", zap.String("file", out))
	}

	if upload {
		if client == nil {
			var err error
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to connect to storage: %w", err)
			}
		}
		svc := compare.NewService(client, cfg.Storage.Bucket, l, nil, cfg.Compare)
		object, err := svc.SaveResult(ctx, uuid.NewString(), report)
		if err != nil {
			return fmt.Errorf("failed to upload result: %w", err)
		}
		l.Info("Result workbook uploaded", zap.String("object", object))
	}

	return nil
}

func logSummary(l *zap.Logger, report *reconcile.Report) {
	for _, row := range report.Summary {
		fields := []zap.Field{zap.Int("count", row.Count)}
		if row.Field != "" {
			fields = append(fields, zap.String("field", row.Field))
		}
		l.Info(row.Description, fields...)
	}
}

func compareOptions(cfg *config.Config, l *zap.Logger) reconcile.Options {
	return reconcile.Options{
		TrimSpaces:      cfg.Compare.TrimSpaces,
		CaseInsensitive: cfg.Compare.CaseInsensitive,
		Logger:          l,
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
