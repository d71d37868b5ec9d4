package importer

import "strings"

// Document is one input file in the shape the ingest pipeline consumes: text
// documents carry Text, spreadsheets carry Grid.
type Document struct {
	Path   string
	Format string
	Text   string
	Grid   [][]string
}

// IsGrid reports whether the document came from a spreadsheet.
func (d Document) IsGrid() bool {
	return d.Grid != nil
}

func normalizeFormat(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
