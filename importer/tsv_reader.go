package importer

import (
	"strings"

	"rosterimport/ingest"
)

// TSVReader reads tab-separated exports, typically UTF-16 files saved from
// spreadsheet applications. Each line is re-serialized as a comma row so the
// pipeline sees the same tokens a CSV export would produce.
type TSVReader struct{}

func (r *TSVReader) Read(path string) (Document, error) {
	text, err := readText(path)
	if err != nil {
		return Document{}, err
	}

	lines := ingest.SplitLines(text)
	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = ingest.SerializeRow(strings.Split(line, "\t"))
	}
	return Document{Path: path, Format: "tsv", Text: strings.Join(rows, "\n")}, nil
}
