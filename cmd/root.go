package cmd

import (
	"fmt"
	"os"

	"game-importer/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "game-importer",
	Short: "Game Importer Service",
	Long: `Game Importer imports game metadata from a public catalog API and
maps it onto local records, taxonomy terms and media attachments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configDir is the directory holding the .env file.
var configDir string

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing the .env file")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
