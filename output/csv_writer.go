package output

import (
	"fmt"
	"os"

	"rosterimport/ingest"
	"rosterimport/roster"
)

// CSVWriter writes records in the same dialect the ingest tokenizer reads, so
// an exported file can be imported again unchanged.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, records []roster.Record) error {
	content := ingest.ExportRecords(records)
	if content == "" {
		content = ingest.SerializeRow(canonicalHeaders())
	}

	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("write csv output %s: %w", path, err)
	}
	return nil
}
