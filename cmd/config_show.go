package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosterimport/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  rosterimport config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("%s: %d\n", config.KeyHeaderScanLimit, cfg.Ingest.HeaderScanLimit)
		fmt.Printf("%s: %s\n", config.KeyPlaceholderRobeEmail, cfg.Ingest.Placeholders.RobeEmail)
		fmt.Printf("%s: %s\n", config.KeyPlaceholderFolderEmail, cfg.Ingest.Placeholders.FolderEmail)
		fmt.Printf("%s: %s\n", config.KeyPlaceholderRobeTeacher, cfg.Ingest.Placeholders.RobeTeacher)
		fmt.Printf("%s: %s\n", config.KeyPlaceholderFolderTeacher, cfg.Ingest.Placeholders.FolderTeacher)
		fmt.Printf("%s: %s\n", config.KeyStorageDBPath, cfg.Storage.DBPath)
		fmt.Printf("%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
		fmt.Printf("rules: %d\n", len(cfg.Rules))
		for i, rule := range cfg.Rules {
			fmt.Printf("rules[%d].name: %s\n", i, rule.Name)
			fmt.Printf("rules[%d].file_template: %s\n", i, rule.FileTemplate)
			fmt.Printf("rules[%d].class_section: %s\n", i, rule.ClassSection)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
