package cmd

import (
	"fmt"

	"report-compare/core/database"
	"report-compare/core/storage"
	"report-compare/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	fixFlag          bool
	integrityKeyFlag string
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the comparison storage",
	Long:  `Checks that the storage bucket holds the inputs and results folders and that the input files can be compared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := integrityService(false)
		if err != nil {
			return err
		}
		defer l.Sync()

		if err := runStructureCheck(cmd, svc, l, false); err != nil {
			return err
		}
		return runInputsCheck(cmd, svc, l)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := integrityService(false)
		if err != nil {
			return err
		}
		defer l.Sync()
		return runStructureCheck(cmd, svc, l, fixFlag)
	},
}

// inputsCmd represents the integrity inputs command
var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "List input files and flag unsupported ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := integrityService(false)
		if err != nil {
			return err
		}
		defer l.Sync()
		return runInputsCheck(cmd, svc, l)
	},
}

// tablesCheckCmd represents the integrity tables command
var tablesCheckCmd = &cobra.Command{
	Use:   "tables <table>...",
	Short: "Check that database tables exist and carry the key column",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := integrityService(true)
		if err != nil {
			return err
		}
		defer l.Sync()

		report, err := svc.CheckTables(cmd.Context(), args, integrityKeyFlag)
		if err != nil {
			return fmt.Errorf("tables check failed: %w", err)
		}

		if report.Matched {
			l.Info("Tables are ready for comparison.", zap.String("key", report.Key), zap.Strings("tables", args))
			return nil
		}
		for table, tbl := range report.Tables {
			if tbl.Status != "ok" {
				l.Warn("Table not ready", zap.String("table", table), zap.Bool("has_key", tbl.HasKey))
			}
		}
		for _, e := range report.Errors {
			l.Error("Inspection Error", zap.String("error", e))
		}
		return fmt.Errorf("tables are not ready for comparison")
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, inputsCmd, tablesCheckCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
	tablesCheckCmd.Flags().StringVar(&integrityKeyFlag, "key", "", "Key column (defaults to compare.key)")
}

func integrityService(needDB bool) (*integrity.Service, *zap.Logger, error) {
	cfg, l, err := loadConfigAndLogger()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	var db *gorm.DB
	if needDB {
		if db, err = database.Connect(cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("database connection required: %w", err)
		}
	}

	return integrity.NewService(store, cfg.Storage.Bucket, l, db, cfg.Compare), l, nil
}

func runStructureCheck(cmd *cobra.Command, svc *integrity.Service, l *zap.Logger, fix bool) error {
	if fix {
		if _, err := svc.EnsureBucket(cmd.Context()); err != nil {
			return err
		}
	}

	l.Info("Checking folder structure...")
	missing, err := svc.CheckStructure(cmd.Context())
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		l.Info("Structure is intact.")
		return nil
	}

	l.Warn("Missing folders detected", zap.Strings("missing", missing))
	if !fix {
		l.Info("Run with --fix to create missing folders.")
		return nil
	}

	l.Info("Fixing missing folders...")
	if err := svc.FixStructure(cmd.Context(), missing); err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	l.Info("Structure fixed successfully.")
	return nil
}

func runInputsCheck(cmd *cobra.Command, svc *integrity.Service, l *zap.Logger) error {
	l.Info("Checking input files...")
	report, err := svc.CheckInputs(cmd.Context())
	if err != nil {
		return fmt.Errorf("inputs check failed: %w", err)
	}

	l.Info("Input files found", zap.String("prefix", report.Prefix), zap.Int("supported", len(report.Supported)))
	if len(report.Unsupported) > 0 {
		l.Warn("Unsupported input files detected", zap.Strings("unsupported", report.Unsupported))
	}
	return nil
}
