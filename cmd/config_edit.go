package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosterimport/config"
)

var configEditKeepInvalid bool

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active rosterimport config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated: placeholder emails must be
valid addresses, rule templates must be valid globs and rule names unique.
An invalid edit is rolled back to the previous content unless --keep-invalid is set.`,
	Example: `
  # Edit active config
  rosterimport config edit

  # Keep the edited file even when it does not validate
  rosterimport config edit --keep-invalid
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := ensureConfigFile(configPath, []byte(config.ExampleYAML()))
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		previous, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config before edit failed: %w", err)
		}

		editor := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), configPath)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		if configEditKeepInvalid {
			previous = nil
		}
		cfg, err := finishConfigEdit(configPath, previous)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration saved and validated: %s (rules: %d, database: %s)\n", configPath, len(cfg.Rules), cfg.Storage.DBPath)
		return nil
	},
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rosterimport.yaml"), nil
}

// ensureConfigFile writes content to path unless a file already exists there.
func ensureConfigFile(path string, content []byte) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return false, fmt.Errorf("creating config file failed: %w", err)
	}

	return true, nil
}

// finishConfigEdit validates the edited file. When previous is non-nil an
// invalid file is overwritten with it.
func finishConfigEdit(path string, previous []byte) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited config failed: %w", err)
	}

	cfg, validateErr := config.ValidateYAMLContent(content)
	if validateErr == nil {
		return cfg, nil
	}
	if previous == nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, validateErr)
	}
	if err := os.WriteFile(path, previous, 0o600); err != nil {
		return nil, fmt.Errorf("config validation failed in %s (%v), restoring previous content: %w", path, validateErr, err)
	}
	return nil, fmt.Errorf("config validation failed in %s, previous content restored: %w", path, validateErr)
}

// editorCommand prefers $VISUAL, then $EDITOR, then vi. Editor values may carry
// arguments, for example "code --wait".
func editorCommand(visual, editor, configPath string) *exec.Cmd {
	value := "vi"
	switch {
	case strings.TrimSpace(visual) != "":
		value = visual
	case strings.TrimSpace(editor) != "":
		value = editor
	}

	fields := strings.Fields(value)
	args := append(fields[1:], configPath)
	return exec.Command(fields[0], args...)
}

func init() {
	configCmd.AddCommand(configEditCmd)

	configEditCmd.Flags().BoolVar(&configEditKeepInvalid, "keep-invalid", false, "Keep the edited file when it fails validation")
}
