package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rosterimport/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".rosterimport.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDeleteConfigFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		input       string
		prompt      bool
		wantDeleted bool
		wantDBPath  string
	}{
		{
			name:        "confirmed",
			content:     "storage:\n  db_path: \"/srv/rosters.db\"\n",
			input:       "Y\n",
			prompt:      true,
			wantDeleted: true,
			wantDBPath:  "/srv/rosters.db",
		},
		{
			name:    "declined",
			content: config.ExampleYAML(),
			input:   "n\n",
			prompt:  true,
		},
		{
			name:        "without prompt",
			content:     config.ExampleYAML(),
			wantDeleted: true,
			wantDBPath:  config.DefaultDBPath,
		},
		{
			name:        "invalid config falls back to default database",
			content:     "log:\n  level: \"loud\"\n",
			wantDeleted: true,
			wantDBPath:  config.DefaultDBPath,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tc.content)
			var out bytes.Buffer
			var dbPath string
			var err error
			if tc.prompt {
				dbPath, err = deleteConfigFile(path, strings.NewReader(tc.input), &out)
			} else {
				dbPath, err = deleteConfigFile(path, nil, &out)
			}

			_, statErr := os.Stat(path)
			if !tc.wantDeleted {
				if err == nil {
					t.Fatalf("expected aborted delete")
				}
				if statErr != nil {
					t.Fatalf("expected config to remain: %v", statErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !os.IsNotExist(statErr) {
				t.Fatalf("expected config to be deleted")
			}
			if dbPath != tc.wantDBPath {
				t.Fatalf("expected db path %q, got %q", tc.wantDBPath, dbPath)
			}
			if tc.prompt == (out.Len() == 0) {
				t.Fatalf("unexpected prompt output %q", out.String())
			}
		})
	}
}
