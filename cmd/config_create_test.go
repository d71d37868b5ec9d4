package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"rosterimport/config"
)

func TestSaveDefaultConfigCreatesExampleTemplate(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "create-template.yaml")
	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig(nil); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	if string(content) != config.ExampleYAML() {
		t.Fatalf("expected example template, got:\n%s", content)
	}
}

func TestSaveDefaultConfigDoesNotOverwriteExistingFile(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "existing.yaml")
	original := "storage:\n  db_path: \"./team.db\"\nlog:\n  level: \"debug\"\n"
	if err := os.WriteFile(tmpConfig, []byte(original), 0o644); err != nil {
		t.Fatalf("failed writing initial config: %v", err)
	}

	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig(map[string]string{config.KeyStorageDBPath: "./other.db"}); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("failed reading existing config after create: %v", err)
	}
	if string(content) != original {
		t.Fatalf("expected existing config to remain unchanged")
	}
}

func TestRenderConfigTemplateAppliesOverrides(t *testing.T) {
	t.Parallel()

	content, err := renderConfigTemplate(map[string]string{
		config.KeyStorageDBPath: "/srv/rosters/roster.db",
		config.KeyLogLevel:      "debug",
	})
	if err != nil {
		t.Fatalf("unexpected error rendering template: %v", err)
	}

	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("rendered template should validate: %v", err)
	}
	if cfg.Storage.DBPath != "/srv/rosters/roster.db" || cfg.Log.Level != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Ingest.HeaderScanLimit != config.DefaultHeaderScanLimit {
		t.Fatalf("expected untouched scan limit, got %d", cfg.Ingest.HeaderScanLimit)
	}

	text := string(content)
	if !strings.Contains(text, "# rosterimport configuration") || !strings.Contains(text, "header_scan_limit: 10") {
		t.Fatalf("expected template comments and values to survive, got:\n%s", text)
	}
}

func TestRenderConfigTemplateRejectsBadOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{name: "invalid level", overrides: map[string]string{config.KeyLogLevel: "loud"}, want: "invalid"},
		{name: "unknown key", overrides: map[string]string{"storage.dsn": "x"}, want: "not found"},
		{name: "scalar parent", overrides: map[string]string{"log.level.name": "x"}, want: "not a mapping"},
	}

	for _, tc := range tests {
		_, err := renderConfigTemplate(tc.overrides)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
