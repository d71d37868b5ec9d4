package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deleteDBPath string
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

// sqliteHeader opens every SQLite database file.
var sqliteHeader = []byte("SQLite format 3\x00")

var sqliteSidecarSuffixes = []string{"-wal", "-shm", "-journal"}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the complete SQLite database file",
	Long: `Destructive database cleanup command.

This command deletes the complete SQLite database file together with its -wal,
-shm and -journal companions. Files that are not SQLite databases are refused.
Before deletion, an interactive security prompt requires typing exactly "Y".

To drop stored records but keep the database, use "batch delete".`,
	Example: `
  # Delete the complete SQLite file (requires interactive confirmation)
  rosterimport delete --db ./rosterimport.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadCommandEnv()
		if err != nil {
			return err
		}
		path := env.dbPath(deleteDBPath)

		confirmed, err := confirmPrompt(deletePromptInput, deletePromptOutput, fmt.Sprintf("Delete database file %q?", path))
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		removed, err := removeDatabaseFile(path)
		if err != nil {
			return err
		}
		for _, file := range removed {
			fmt.Printf("Deleted database file: %s\n", file)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
}

// confirmPrompt asks question and reports whether the answer was exactly "Y".
func confirmPrompt(input io.Reader, output io.Writer, question string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "%s Type Y to confirm: ", question); err != nil {
		return false, fmt.Errorf("write confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

// removeDatabaseFile deletes path and any SQLite companion files next to it.
// It returns every file it removed, the database first.
func removeDatabaseFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database file not found: %s", path)
		}
		return nil, fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("database path is a directory: %s", path)
	}
	if err := checkSQLiteFile(path, info.Size()); err != nil {
		return nil, err
	}

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("delete database file: %w", err)
	}
	removed := []string{path}
	for _, suffix := range sqliteSidecarSuffixes {
		sidecar := path + suffix
		if err := os.Remove(sidecar); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("delete database companion file: %w", err)
		}
		removed = append(removed, sidecar)
	}
	return removed, nil
}

// checkSQLiteFile accepts empty files, which SQLite creates before the first
// write, and files starting with the SQLite header.
func checkSQLiteFile(path string, size int64) error {
	if size == 0 {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer file.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(file, header); err != nil || !bytes.Equal(header, sqliteHeader) {
		return fmt.Errorf("refusing to delete %s: not a SQLite database", path)
	}
	return nil
}
