package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"rosterimport/config"
)

var (
	configRuleAddName     string
	configRuleAddTemplate string
	configRuleAddSection  string
)

const newSectionOption = "Enter a new class section"

var configRuleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one class section rule to the config.",
	Long: `Store a new rules entry in config. Values not passed as flags are asked for
interactively. When other rules already exist, their class sections are offered
for selection.`,
	Example: `
  # Add one rule interactively
  rosterimport config rule add

  # Add a rule without prompts
  rosterimport config rule add --name bca-first-year --template "BCA_I_*.xlsx" --section I
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		_, err = ensureConfigFile(configPath, []byte(config.ExampleYAML()))
		if err != nil {
			return err
		}

		current, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		cfg, err := config.ValidateYAMLContent(current)
		if err != nil {
			return fmt.Errorf("config validation failed in %s: %w", configPath, err)
		}

		reader := bufio.NewReader(os.Stdin)
		newRule, err := collectRule(reader, os.Stdout, cfg.Rules, config.Rule{
			Name:         configRuleAddName,
			FileTemplate: configRuleAddTemplate,
			ClassSection: configRuleAddSection,
		})
		if err != nil {
			return err
		}

		updated, err := appendRuleToConfigYAML(current, newRule)
		if err != nil {
			return err
		}

		if err := os.WriteFile(configPath, updated, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Println("Rule added successfully.")
		fmt.Printf("Config:   %s\n", configPath)
		fmt.Printf("Name:     %s\n", newRule.Name)
		fmt.Printf("Template: %s\n", newRule.FileTemplate)
		fmt.Printf("Section:  %s\n", newRule.ClassSection)
		return nil
	},
}

// collectRule prompts for every field of preset that is still empty.
func collectRule(reader *bufio.Reader, out io.Writer, existing []config.Rule, preset config.Rule) (config.Rule, error) {
	rule := config.Rule{
		Name:         strings.TrimSpace(preset.Name),
		FileTemplate: strings.TrimSpace(preset.FileTemplate),
		ClassSection: strings.TrimSpace(preset.ClassSection),
	}

	var err error
	if rule.Name == "" {
		rule.Name, err = promptRequiredString(reader, out, "Rule name")
		if err != nil {
			return config.Rule{}, err
		}
	}
	if rule.FileTemplate == "" {
		rule.FileTemplate, err = promptRequiredString(reader, out, "File template (example: BCA_I_*.xlsx)")
		if err != nil {
			return config.Rule{}, err
		}
	}
	if rule.ClassSection != "" {
		return rule, nil
	}

	sections := knownSections(existing)
	if len(sections) > 0 {
		options := append(sections, newSectionOption)
		idx, err := promptSelectIndex(reader, out, "Select class section:", options)
		if err != nil {
			return config.Rule{}, err
		}
		if idx < len(sections) {
			rule.ClassSection = sections[idx]
			return rule, nil
		}
	}

	rule.ClassSection, err = promptRequiredString(reader, out, "Class section")
	if err != nil {
		return config.Rule{}, err
	}
	return rule, nil
}

func knownSections(rules []config.Rule) []string {
	seen := make(map[string]struct{}, len(rules))
	sections := make([]string, 0, len(rules))
	for _, rule := range rules {
		section := strings.TrimSpace(rule.ClassSection)
		if section == "" {
			continue
		}
		if _, exists := seen[section]; exists {
			continue
		}
		seen[section] = struct{}{}
		sections = append(sections, section)
	}
	sort.Strings(sections)
	return sections
}

func promptSelectIndex(reader *bufio.Reader, out io.Writer, title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no options available for %q", title)
	}

	for {
		fmt.Fprintln(out, title)
		for i, option := range options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, option)
		}
		fmt.Fprintf(out, "Choose [1-%d]: ", len(options))

		input, err := reader.ReadString('\n')
		if err != nil {
			return -1, fmt.Errorf("read selection input: %w", err)
		}
		input = strings.TrimSpace(input)
		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintln(out, "Invalid selection. Please enter a valid number.")
			continue
		}
		return choice - 1, nil
	}
}

func promptRequiredString(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	for {
		fmt.Fprintf(out, "%s: ", strings.TrimSpace(label))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.ToLower(label)), err)
		}
		value := strings.TrimSpace(input)
		if value == "" {
			fmt.Fprintln(out, "Value must not be empty.")
			continue
		}
		return value, nil
	}
}

func appendRuleToConfigYAML(content []byte, rule config.Rule) ([]byte, error) {
	if strings.TrimSpace(rule.Name) == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if strings.TrimSpace(rule.FileTemplate) == "" {
		return nil, fmt.Errorf("file template is required")
	}
	if strings.TrimSpace(rule.ClassSection) == "" {
		return nil, fmt.Errorf("class section is required")
	}

	doc := map[string]any{}
	if strings.TrimSpace(string(content)) != "" {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	rulesList, err := ensureSliceAny(doc, "rules")
	if err != nil {
		return nil, err
	}

	for _, existing := range rulesList {
		ruleMap, ok := existing.(map[string]any)
		if !ok {
			continue
		}
		existingName, _ := ruleMap["name"].(string)
		if strings.EqualFold(strings.TrimSpace(existingName), strings.TrimSpace(rule.Name)) {
			return nil, fmt.Errorf("rule with name %q already exists", rule.Name)
		}
	}

	rulesList = append(rulesList, map[string]any{
		"name":          rule.Name,
		"file_template": rule.FileTemplate,
		"class_section": rule.ClassSection,
	})
	doc["rules"] = rulesList

	updated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal updated config yaml: %w", err)
	}
	if _, err := config.ValidateYAMLContent(updated); err != nil {
		return nil, fmt.Errorf("updated config is invalid: %w", err)
	}
	return updated, nil
}

func ensureSliceAny(doc map[string]any, key string) ([]any, error) {
	raw, exists := doc[key]
	if !exists || raw == nil {
		result := []any{}
		doc[key] = result
		return result, nil
	}
	result, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("config key %q must be a list", key)
	}
	return result, nil
}

func init() {
	configRuleCmd.AddCommand(configRuleAddCmd)

	configRuleAddCmd.Flags().StringVar(&configRuleAddName, "name", "", "Rule name (prompted when omitted)")
	configRuleAddCmd.Flags().StringVar(&configRuleAddTemplate, "template", "", "File name glob, for example BCA_I_*.xlsx (prompted when omitted)")
	configRuleAddCmd.Flags().StringVar(&configRuleAddSection, "section", "", "Class section assigned by this rule (prompted when omitted)")
}
