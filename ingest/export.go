package ingest

import (
	"strings"

	"rosterimport/roster"
)

// Export renders rows as CSV text. The header is the union of all keys in the
// order they are first seen; keys missing from a row render as empty cells.
// An empty input yields an empty string.
func Export(rows []roster.Fields) string {
	if len(rows) == 0 {
		return ""
	}

	header := make([]string, 0, roster.FieldCount)
	seen := make(map[string]struct{}, roster.FieldCount)
	for _, row := range rows {
		for _, kv := range row {
			if _, ok := seen[kv.Key]; ok {
				continue
			}
			seen[kv.Key] = struct{}{}
			header = append(header, kv.Key)
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, SerializeRow(header))
	for _, row := range rows {
		values := make([]string, len(header))
		for i, key := range header {
			values[i], _ = row.Lookup(key)
		}
		lines = append(lines, SerializeRow(values))
	}
	return strings.Join(lines, "\n")
}

// ExportRecords renders normalized records with the canonical header.
func ExportRecords(records []roster.Record) string {
	rows := make([]roster.Fields, len(records))
	for i, record := range records {
		rows[i] = record.Fields()
	}
	return Export(rows)
}
