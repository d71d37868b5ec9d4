package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"rosterimport/config"
)

var (
	configCreateDBPath   string
	configCreateLogLevel string
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

--db-path and --log-level replace the template values before the file is
written; comments of the template are kept. If a configuration file is already
in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.rosterimport.yaml
  rosterimport config create

  # Point the new config at a shared database
  rosterimport config create --db-path /srv/rosters/rosterimport.db --log-level debug
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if strings.TrimSpace(configCreateDBPath) != "" {
			overrides[config.KeyStorageDBPath] = configCreateDBPath
		}
		if strings.TrimSpace(configCreateLogLevel) != "" {
			overrides[config.KeyLogLevel] = configCreateLogLevel
		}
		return saveDefaultConfig(overrides)
	},
}

func saveDefaultConfig(overrides map[string]string) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	content, err := renderConfigTemplate(overrides)
	if err != nil {
		return err
	}

	created, err := ensureConfigFile(configPath, content)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	return nil
}

// renderConfigTemplate returns the example config with dotted keys replaced by
// the given string values. The result is validated before it is returned.
func renderConfigTemplate(overrides map[string]string) ([]byte, error) {
	if len(overrides) == 0 {
		return []byte(config.ExampleYAML()), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(config.ExampleYAML()), &doc); err != nil {
		return nil, fmt.Errorf("parse config template: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("config template is empty")
	}
	for key, value := range overrides {
		if err := setYAMLString(doc.Content[0], strings.Split(key, "."), value); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode config template: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode config template: %w", err)
	}

	if _, err := config.ValidateYAMLContent(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("config with overrides is invalid: %w", err)
	}
	return buf.Bytes(), nil
}

func setYAMLString(node *yaml.Node, path []string, value string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("config key %q is not a mapping", path[0])
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != path[0] {
			continue
		}
		child := node.Content[i+1]
		if len(path) > 1 {
			return setYAMLString(child, path[1:], value)
		}
		child.Kind = yaml.ScalarNode
		child.Tag = "!!str"
		child.Value = value
		return nil
	}
	return fmt.Errorf("config key %q not found in template", path[0])
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVar(&configCreateDBPath, "db-path", "", "Value for storage.db_path in the new config")
	configCreateCmd.Flags().StringVar(&configCreateLogLevel, "log-level", "", "Value for log.level in the new config: debug|info|warn|error")
}
