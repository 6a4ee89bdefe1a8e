package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"game-importer/core/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settingsCmd is the parent command for settings operations.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show <namespace>",
	Short: "Print a settings namespace (mapping or general)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		var values any
		switch args[0] {
		case settings.NamespaceMapping:
			values, err = a.settings.LoadMapping(cmd.Context())
		case settings.NamespaceGeneral:
			values, err = a.settings.LoadGeneral(cmd.Context())
		default:
			values, err = a.settings.Load(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <namespace> <key=value>...",
	Short: "Set values in a settings namespace",
	Example: `  settings set mapping record_type=game genre_taxonomy=genre save_featured_image=1
  settings set general delete_imported_images=yes`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		current, err := a.settings.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for k, v := range values {
			current[k] = v
		}
		if args[0] == settings.NamespaceMapping {
			m, err := settings.DecodeMapping(current)
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}
		}

		if _, err := a.settings.Save(cmd.Context(), args[0], values); err != nil {
			return err
		}
		a.logger.Info("Settings updated", zap.String("namespace", args[0]), zap.Int("keys", len(values)))
		return nil
	},
}

// parseAssignments turns key=value arguments into a map.
func parseAssignments(args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", arg)
		}
		values[key] = value
	}
	return values, nil
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	RootCmd.AddCommand(settingsCmd)
}
