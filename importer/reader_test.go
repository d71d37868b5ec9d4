package importer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeUTF16LEFile creates a temporary UTF-16LE file with BOM from the given
// UTF-8 content string. Returns the path to the file.
func writeUTF16LEFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	runes := []rune(content)
	buf := make([]byte, 0, 2+len(runes)*2)
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range runes {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(r))
		buf = append(buf, b[:]...)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVReader_StripsUTF8BOM(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "roster.csv", "\xEF\xBB\xBFProgramme Name,Robe Email ID\nBCA,a@x.com\n")

	doc, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Programme Name,Robe Email ID\nBCA,a@x.com\n" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
	if doc.Format != "csv" || doc.IsGrid() {
		t.Fatalf("unexpected document shape: %+v", doc)
	}
}

func TestCSVReader_DecodesUTF16(t *testing.T) {
	t.Parallel()

	path := writeUTF16LEFile(t, t.TempDir(), "roster.csv", "Programme Name,Accompanying Teacher\nBSc Chemistry,Anjali Menon\n")

	doc, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Programme Name,Accompanying Teacher\nBSc Chemistry,Anjali Menon\n" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
}

func TestCSVReader_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := (&CSVReader{}).Read(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTSVReader_ReserializesRows(t *testing.T) {
	t.Parallel()

	path := writeUTF16LEFile(t, t.TempDir(), "roster.tsv", "Programme Name\tAccompanying Teacher\r\n\r\nBCA\tRao, Anita\r\n")

	doc, err := (&TSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Programme Name,Accompanying Teacher\nBCA,\"Rao, Anita\"" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
}

func TestReaderForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   Reader
	}{
		{format: "csv", want: &CSVReader{}},
		{format: " TSV ", want: &TSVReader{}},
		{format: "xlsx", want: &ExcelReader{}},
		{format: "Excel", want: &ExcelReader{}},
	}
	for _, tc := range tests {
		reader, err := ReaderForFormat(tc.format)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.format, err)
		}
		if fmt.Sprintf("%T", reader) != fmt.Sprintf("%T", tc.want) {
			t.Fatalf("format %q: expected %T, got %T", tc.format, tc.want, reader)
		}
	}

	if _, err := ReaderForFormat("pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
