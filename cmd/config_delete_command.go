package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosterimport/config"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by rosterimport.

The SQLite database named by storage.db_path is left in place; remove it with
"rosterimport delete". Deletion asks for confirmation unless --yes is set.
If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  rosterimport config delete

  # Delete config at a custom path without prompting
  rosterimport --configFile ./custom-rosterimport.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		var input io.Reader
		if !configDeleteYes {
			input = deletePromptInput
		}
		dbPath, err := deleteConfigFile(configPath, input, deletePromptOutput)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		fmt.Printf("Database kept at: %s\n", dbPath)
		return nil
	},
}

// deleteConfigFile removes the config at path after confirmation, which is
// skipped when input is nil. It returns the database path the file configured.
func deleteConfigFile(path string, input io.Reader, output io.Writer) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading configuration file: %w", err)
	}

	dbPath := config.DefaultDBPath
	if cfg, err := config.ValidateYAMLContent(content); err == nil && strings.TrimSpace(cfg.Storage.DBPath) != "" {
		dbPath = cfg.Storage.DBPath
	}

	if input != nil {
		confirmed, err := confirmPrompt(input, output, fmt.Sprintf("Delete configuration file %q?", path))
		if err != nil {
			return "", err
		}
		if !confirmed {
			return "", fmt.Errorf("config delete aborted: confirmation was not 'Y'")
		}
	}

	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("error deleting configuration file: %w", err)
	}
	return dbPath, nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVar(&configDeleteYes, "yes", false, "Delete without asking for confirmation")
}
