package output

import (
	"fmt"
	"strings"

	"rosterimport/roster"
)

type Writer interface {
	Write(path string, records []roster.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "yaml", "yml":
		return &YAMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func canonicalHeaders() []string {
	fields := roster.CanonicalFields()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Label()
	}
	return headers
}

func recordValues(record roster.Record) []string {
	fields := roster.CanonicalFields()
	values := make([]string, len(fields))
	for i, field := range fields {
		values[i] = record.Get(field)
	}
	return values
}
