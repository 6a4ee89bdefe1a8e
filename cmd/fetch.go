package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"game-importer/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchLanguage string

// fetchCmd imports one catalog item from the command line.
var fetchCmd = &cobra.Command{
	Use:   "fetch <app-id-or-store-url>",
	Short: "Import a single catalog item",
	Long: `Fetches one item from the catalog and creates or updates its local record
using the stored field mapping.

Examples:
  fetch 620
  fetch https://store.steampowered.com/app/620/Portal_2/ --language de`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := importer.NewService(a.settings, a.engine, a.logger)
		out, err := svc.Import(cmd.Context(), args[0], fetchLanguage)
		if err != nil {
			return err
		}

		a.logger.Info("Import completed", zap.Uint("record_id", out.RecordID), zap.Bool("created", out.Created))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to write outcome: %w", err)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchLanguage, "language", "l", importer.DefaultLanguage, "catalog language code")
	RootCmd.AddCommand(fetchCmd)
}
