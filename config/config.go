package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyHeaderScanLimit          = "ingest.header_scan_limit"
	KeyPlaceholderRobeEmail     = "ingest.placeholders.robe_email"
	KeyPlaceholderFolderEmail   = "ingest.placeholders.folder_email"
	KeyPlaceholderRobeTeacher   = "ingest.placeholders.robe_teacher"
	KeyPlaceholderFolderTeacher = "ingest.placeholders.folder_teacher"
	KeyStorageDBPath            = "storage.db_path"
	KeyLogLevel                 = "log.level"
	KeyRules                    = "rules"
)

const (
	DefaultHeaderScanLimit = 10
	DefaultDBPath          = "./rosterimport.db"
	DefaultLogLevel        = "info"
)

type Config struct {
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Rules   []Rule        `mapstructure:"rules"`
}

type IngestConfig struct {
	HeaderScanLimit int                `mapstructure:"header_scan_limit" validate:"min=1,max=1000"`
	Placeholders    PlaceholdersConfig `mapstructure:"placeholders"`
}

// PlaceholdersConfig holds the literals written when a document cannot supply
// a value.
type PlaceholdersConfig struct {
	RobeEmail     string `mapstructure:"robe_email" validate:"required,email"`
	FolderEmail   string `mapstructure:"folder_email" validate:"required,email"`
	RobeTeacher   string `mapstructure:"robe_teacher" validate:"required"`
	FolderTeacher string `mapstructure:"folder_teacher" validate:"required"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// Rule assigns a class section to every record of a matching file that has
// none of its own.
type Rule struct {
	Name         string `mapstructure:"name"`
	FileTemplate string `mapstructure:"file_template"`
	ClassSection string `mapstructure:"class_section"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# rosterimport configuration
ingest:
  header_scan_limit: 10
  placeholders:
    robe_email: "teacher@example.com"
    folder_email: "folder@example.com"
    robe_teacher: "Robe Teacher"
    folder_teacher: "Folder Teacher"

storage:
  db_path: "./rosterimport.db"

log:
  level: "info"

# rules:
#   - name: "bca-first-year"
#     file_template: "BCA_I_*.xlsx"
#     class_section: "I"
rules: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHeaderScanLimit, DefaultHeaderScanLimit)
	v.SetDefault(KeyPlaceholderRobeEmail, "teacher@example.com")
	v.SetDefault(KeyPlaceholderFolderEmail, "folder@example.com")
	v.SetDefault(KeyPlaceholderRobeTeacher, "Robe Teacher")
	v.SetDefault(KeyPlaceholderFolderTeacher, "Folder Teacher")
	v.SetDefault(KeyStorageDBPath, DefaultDBPath)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}

		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if _, err := filepath.Match(template, ""); err != nil {
			return fmt.Errorf("validation failed: rules[%d].file_template %q is not a valid pattern: %w", i, rule.FileTemplate, err)
		}
		if strings.TrimSpace(rule.ClassSection) == "" {
			return fmt.Errorf("validation failed: rules[%d].class_section is required", i)
		}
	}
	return nil
}
