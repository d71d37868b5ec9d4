package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"rosterimport/ingest"
	"rosterimport/roster"
)

func sampleRecords() []roster.Record {
	return []roster.Record{
		{ProgrammeName: "MCA", RobeEmail: "c@x.com", FolderEmail: "d@x.com", AccompanyingTeacher: "Chitra Nair", FolderInCharge: "Deepak Iyer", ClassSection: "B"},
		{ProgrammeName: "BCA", RobeEmail: "a@x.com", FolderEmail: "b@x.com", AccompanyingTeacher: "Rao, Anita", FolderInCharge: "Bala Krishnan", ClassSection: "A"},
		{ProgrammeName: "BCA", RobeEmail: "A@x.com", FolderEmail: "e@x.com", AccompanyingTeacher: "Bala Krishnan", FolderInCharge: "Esha Pillai"},
	}
}

func TestCSVWriter_RoundTripsThroughIngest(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.csv")
	records := sampleRecords()
	if err := (&CSVWriter{}).Write(path, records); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ingest.Ingest(t.Context(), string(content))
	if err != nil {
		t.Fatalf("ingest exported csv: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, records[i], got[i])
		}
	}
}

func TestCSVWriter_EmptyWritesHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := (&CSVWriter{}).Write(path, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Programme Name,Robe Email ID,Folder Email ID,Accompanying Teacher,Folder in Charge,Class Section\n"
	if string(content) != want {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestExcelWriter_WritesHeaderAndRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	if err := (&ExcelWriter{}).Write(path, sampleRecords()); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open excel: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Programme Name" || rows[2][3] != "Rao, Anita" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestYAMLWriter_EncodesRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := (&YAMLWriter{}).Write(path, sampleRecords()[:1]); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if len(doc.Records) != 1 || doc.Records[0].AccompanyingTeacher != "Chitra Nair" {
		t.Fatalf("unexpected yaml document: %+v", doc)
	}
	if !strings.Contains(string(content), "programme_name: MCA") {
		t.Fatalf("expected snake_case keys, got:\n%s", content)
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"csv", "Excel", "xlsx", "yaml", " yml "} {
		if _, err := WriterForFormat(format); err != nil {
			t.Fatalf("unexpected error for %q: %v", format, err)
		}
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestRenderTable_AlignsByDisplayWidth(t *testing.T) {
	t.Parallel()

	records := []roster.Record{
		{ProgrammeName: "BCA", AccompanyingTeacher: "李小龍"},
		{ProgrammeName: "MCA", AccompanyingTeacher: "Anita"},
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, records); err != nil {
		t.Fatalf("render table: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "| ---") {
		t.Fatalf("expected separator line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "李小龍") {
		t.Fatalf("expected wide name in row, got %q", lines[2])
	}
	for _, line := range lines[1:] {
		if got, want := displayWidth(line), displayWidth(lines[0]); got != want {
			t.Fatalf("misaligned line %q: width %d, want %d", line, got, want)
		}
	}
}

func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r >= 0x2E80 {
			width += 2
		} else {
			width++
		}
	}
	return width
}

func TestBuildProgrammeSummaries(t *testing.T) {
	t.Parallel()

	summaries := BuildProgrammeSummaries(sampleRecords())
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	bca := summaries[0]
	if bca.Programme != "BCA" || bca.Records != 2 {
		t.Fatalf("unexpected BCA summary: %+v", bca)
	}
	if bca.Teachers != 3 {
		t.Fatalf("expected 3 distinct teachers, got %d", bca.Teachers)
	}
	if bca.Emails != 3 {
		t.Fatalf("expected 3 distinct emails, got %d", bca.Emails)
	}
	if bca.Sections != 1 {
		t.Fatalf("expected 1 section, got %d", bca.Sections)
	}
	if summaries[1].Programme != "MCA" {
		t.Fatalf("expected MCA second, got %q", summaries[1].Programme)
	}

	if got := BuildProgrammeSummaries(nil); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}

func TestWriteProgrammeSummaries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	summaries := BuildProgrammeSummaries(sampleRecords())

	csvPath := filepath.Join(dir, "summary.csv")
	if err := WriteProgrammeSummaries(csvPath, "csv", summaries); err != nil {
		t.Fatalf("write csv summary: %v", err)
	}
	content, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	want := "Programme,Records,Teachers,Emails,Sections\nBCA,2,3,3,1\nMCA,1,2,2,1\n"
	if string(content) != want {
		t.Fatalf("unexpected csv summary:\n%s", content)
	}

	if err := WriteProgrammeSummaries(filepath.Join(dir, "summary.xlsx"), "xlsx", summaries); err != nil {
		t.Fatalf("write excel summary: %v", err)
	}
	if err := WriteProgrammeSummaries(filepath.Join(dir, "summary.yaml"), "yaml", summaries); err == nil {
		t.Fatalf("expected error for unsupported summary format")
	}
}
