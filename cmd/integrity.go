package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"game-importer/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd runs the infrastructure checks from the command line.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the media bucket and the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		report := map[string]any{}

		st, err := checks.CheckStorage(cmd.Context(), a.store, a.cfg.Storage.Bucket, a.cfg.Storage.Region, fixFlag)
		if err != nil {
			a.logger.Error("Storage check failed", zap.Error(err))
			report["storage"] = map[string]any{"status": "error", "error": err.Error()}
		} else {
			report["storage"] = st
		}

		sc, err := checks.CheckSchema(a.db, allModels()...)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		report["schema"] = sc
		if !sc.Matched {
			a.logger.Warn("Database schema does not match the models, run migrate")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "create the media bucket when missing")
	RootCmd.AddCommand(integrityCmd)
}
