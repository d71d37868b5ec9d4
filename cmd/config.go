package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rosterimport configuration file values.",
	Long: `Create, edit, display, and delete the rosterimport configuration file.

The configuration stores application-wide values and class section rules:
- ingest.header_scan_limit
- ingest.placeholders.robe_email / folder_email / robe_teacher / folder_teacher
- storage.db_path
- log.level
- rules[].name / file_template / class_section`,
	Example: `
  # Create default config in $HOME/.rosterimport.yaml
  rosterimport config create

  # Show active config and source file
  rosterimport config show

  # Open active config in editor (creates example if missing)
  rosterimport config edit

  # Add one class section rule interactively
  rosterimport config rule add

  # Delete active config file
  rosterimport config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
