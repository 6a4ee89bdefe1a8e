package cmd

import (
	"fmt"
	"os"
	"sync"
	"text/tabwriter"

	"game-importer/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm/schema"
)

var showColumns bool

// migrateCmd creates or updates the database tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		models := allModels()
		if err := database.Migrate(a.db, models...); err != nil {
			return err
		}
		a.logger.Info("Schema migrated", zap.Int("models", len(models)))

		if !showColumns {
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tCOLUMN\tTYPE\tNULLABLE")
		cache := &sync.Map{}
		for _, model := range models {
			s, err := schema.Parse(model, cache, a.db.NamingStrategy)
			if err != nil {
				return fmt.Errorf("failed to parse model %T: %w", model, err)
			}
			cols, err := database.GetTableColumns(a.db, s.Table)
			if err != nil {
				return err
			}
			for _, col := range cols {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", s.Table, col.Field, col.Type, col.Nullable)
			}
		}
		return w.Flush()
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&showColumns, "columns", false, "print the resulting columns")
	RootCmd.AddCommand(migrateCmd)
}
