package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rosterimport/roster"
	"rosterimport/storage"
)

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "uppercase Y confirms", input: "Y\n", want: true},
		{name: "lowercase y does not confirm", input: "y\n", want: false},
		{name: "empty does not confirm", input: "\n", want: false},
		{name: "Y without newline confirms", input: "Y", want: true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirmPrompt(bytes.NewBufferString(tt.input), &out, `Delete database file "./rosterimport.db"?`)
		if err != nil {
			t.Fatalf("%s: confirm prompt returned error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
		if !strings.HasPrefix(out.String(), `Delete database file "./rosterimport.db"? Type Y`) {
			t.Fatalf("%s: unexpected prompt %q", tt.name, out.String())
		}
	}
}

func createRosterDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rosterimport.db")
	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := store.InsertRecords("batch-1", "bca.csv", []roster.Record{{ProgrammeName: "BCA"}}); err != nil {
		t.Fatalf("insert records: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close sqlite: %v", err)
	}
	return path
}

func TestRemoveDatabaseFileDeletesStoreAndCompanions(t *testing.T) {
	t.Parallel()

	path := createRosterDatabase(t)
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.WriteFile(path+suffix, []byte("x"), 0o600); err != nil {
			t.Fatalf("write companion file: %v", err)
		}
	}

	removed, err := removeDatabaseFile(path)
	if err != nil {
		t.Fatalf("remove db file: %v", err)
	}
	if len(removed) != 3 || removed[0] != path {
		t.Fatalf("unexpected removed files: %v", removed)
	}
	for _, file := range []string{path, path + "-wal", path + "-shm"} {
		if _, err := os.Stat(file); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be deleted", file)
		}
	}
}

func TestRemoveDatabaseFileRefusesOtherFiles(t *testing.T) {
	t.Parallel()

	rosterFile := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(rosterFile, []byte("Programme Name,Robe Email ID\nBCA,a@x.com\n"), 0o600); err != nil {
		t.Fatalf("write roster file: %v", err)
	}
	if _, err := removeDatabaseFile(rosterFile); err == nil || !strings.Contains(err.Error(), "not a SQLite database") {
		t.Fatalf("expected refusal for non-database file, got %v", err)
	}
	if _, err := os.Stat(rosterFile); err != nil {
		t.Fatalf("expected roster file to survive: %v", err)
	}

	if _, err := removeDatabaseFile(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory path")
	}
	if _, err := removeDatabaseFile(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRemoveDatabaseFileAcceptsEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.db")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write empty db file: %v", err)
	}
	removed, err := removeDatabaseFile(path)
	if err != nil {
		t.Fatalf("remove empty db file: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("unexpected removed files: %v", removed)
	}
}
