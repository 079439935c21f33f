package cmd

import (
	"errors"
	"fmt"

	"uloggd/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and the cache bucket",
	Long: `Compares the cache, state and log tables against their models and, when the storage
cache backend is selected, checks that the cache bucket exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		logg := rt.logger
		fix, _ := cmd.Flags().GetBool("fix")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		svc := integrity.NewService(rt.db, schemaModels(), rt.storage, rt.cfg.Storage, rt.cfg.Cache.StoragePrefix, logg)

		if fix {
			bucket, err := svc.CheckStorage(ctx)
			switch {
			case errors.Is(err, integrity.ErrStorageDisabled):
				logg.Info("Storage cache backend disabled, nothing to fix.")
			case err != nil:
				return fmt.Errorf("storage check failed: %w", err)
			case !bucket.Exists:
				logg.Info("Creating missing cache bucket...", zap.String("bucket", bucket.Bucket))
				if err := svc.FixStorage(ctx); err != nil {
					return fmt.Errorf("failed to create bucket: %w", err)
				}
			}
		}

		report := svc.Run(ctx)
		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
		} else {
			logIntegrityReport(logg, report)
		}

		if !report.Healthy {
			return fmt.Errorf("integrity checks failed")
		}
		return nil
	},
}

func logIntegrityReport(logg *zap.Logger, report *integrity.Report) {
	if report.SchemaError != "" {
		logg.Error("Schema check failed", zap.String("error", report.SchemaError))
	} else if report.Schema.Matched {
		logg.Info("Schema matches expected definition.", zap.String("driver", report.Schema.Driver))
	} else {
		logg.Warn("Schema mismatches found", zap.String("driver", report.Schema.Driver))
		for table, tbl := range report.Schema.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
			if len(tbl.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
			}
		}
		for _, e := range report.Schema.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}

	switch {
	case report.StorageError != "":
		logg.Error("Storage check failed", zap.String("error", report.StorageError))
	case report.Storage == nil:
		logg.Info("Storage cache backend disabled, bucket check skipped.")
	case !report.Storage.Exists:
		logg.Warn("Cache bucket missing. Run with --fix to create it.", zap.String("bucket", report.Storage.Bucket))
	default:
		logg.Info("Cache bucket is intact.", zap.String("bucket", report.Storage.Bucket), zap.Bool("empty", report.Storage.Empty))
	}
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().Bool("fix", false, "Create the cache bucket if missing")
	integrityCmd.Flags().Bool("json", false, "Output the report as JSON")
}
