package importer

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader loads a comma-separated file as text. Splitting and quoting are
// left to the ingest tokenizer, which is more lenient than encoding/csv.
type CSVReader struct{}

func (r *CSVReader) Read(path string) (Document, error) {
	text, err := readText(path)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: path, Format: "csv", Text: text}, nil
}

// readText decodes a file to UTF-8. A UTF-8 BOM is dropped and UTF-16 files
// with a BOM are transcoded.
func readText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open text file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return "", fmt.Errorf("decode text file %s: %w", path, err)
	}
	return string(data), nil
}
