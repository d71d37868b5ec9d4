package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rosterimport/config"
	"rosterimport/importer"
)

var configRuleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage class section rules in config.",
	Long: `Manage import rules stored under config key rules.

Rules map imported files (via file template) to the class section assigned to
records that carry no section of their own. The first matching rule wins.`,
}

var configRuleListCmd = &cobra.Command{
	Use:   "list [file...]",
	Short: "List configured rules and the rule each file would use.",
	Example: `
  # Show every rule
  rosterimport config rule list

  # Check which rule applies to files before importing them
  rosterimport config rule list ./BCA_I_2024.xlsx ./mca.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		return writeRuleMatches(os.Stdout, cfg.Rules, args)
	},
}

func writeRuleMatches(w io.Writer, rules []config.Rule, paths []string) error {
	if len(rules) == 0 {
		if _, err := fmt.Fprintln(w, "No rules configured."); err != nil {
			return err
		}
	}
	for i, rule := range rules {
		if _, err := fmt.Fprintf(w, "%d) %s: %s -> section %s\n", i+1, rule.Name, rule.FileTemplate, rule.ClassSection); err != nil {
			return err
		}
	}

	for _, path := range paths {
		match := importer.MatchRuleByTemplate(path, rules)
		line := fmt.Sprintf("%s: no rule, section comes from the file", path)
		if match.Name != "" {
			line = fmt.Sprintf("%s: rule %s, section %s", path, match.Name, match.ClassSection)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	configCmd.AddCommand(configRuleCmd)
	configRuleCmd.AddCommand(configRuleListCmd)
}
