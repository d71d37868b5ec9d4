package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"rosterimport/roster"
)

// ProgrammeSummary aggregates the assignments of one programme.
type ProgrammeSummary struct {
	Programme string
	Records   int
	Teachers  int
	Emails    int
	Sections  int
}

var summaryHeaders = []string{"Programme", "Records", "Teachers", "Emails", "Sections"}

// BuildProgrammeSummaries groups records by programme name, sorted by name.
// Teachers and emails are counted across both roles.
func BuildProgrammeSummaries(records []roster.Record) []ProgrammeSummary {
	if len(records) == 0 {
		return []ProgrammeSummary{}
	}

	byProgramme := make(map[string][]roster.Record)
	for _, record := range records {
		name := strings.TrimSpace(record.ProgrammeName)
		byProgramme[name] = append(byProgramme[name], record)
	}

	names := make([]string, 0, len(byProgramme))
	for name := range byProgramme {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]ProgrammeSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarizeProgramme(name, byProgramme[name]))
	}
	return summaries
}

func summarizeProgramme(name string, records []roster.Record) ProgrammeSummary {
	teachers := make(map[string]struct{})
	emails := make(map[string]struct{})
	sections := make(map[string]struct{})
	for _, record := range records {
		addDistinct(teachers, record.AccompanyingTeacher, record.FolderInCharge)
		addDistinct(emails, strings.ToLower(record.RobeEmail), strings.ToLower(record.FolderEmail))
		addDistinct(sections, record.ClassSection)
	}

	return ProgrammeSummary{
		Programme: name,
		Records:   len(records),
		Teachers:  len(teachers),
		Emails:    len(emails),
		Sections:  len(sections),
	}
}

func addDistinct(set map[string]struct{}, values ...string) {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			set[value] = struct{}{}
		}
	}
}

func (s ProgrammeSummary) values() []string {
	return []string{
		s.Programme,
		strconv.Itoa(s.Records),
		strconv.Itoa(s.Teachers),
		strconv.Itoa(s.Emails),
		strconv.Itoa(s.Sections),
	}
}

func WriteProgrammeSummaries(path, format string, summaries []ProgrammeSummary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeProgrammeSummariesCSV(path, summaries)
	case "excel", "xlsx":
		rows := make([][]string, len(summaries))
		for i, summary := range summaries {
			rows[i] = summary.values()
		}
		return writeExcelSheet(path, summaryHeaders, rows)
	default:
		return fmt.Errorf("unsupported output format for programme summaries: %s", format)
	}
}

func writeProgrammeSummariesCSV(path string, summaries []ProgrammeSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(summaryHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, summary := range summaries {
		if err := writer.Write(summary.values()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
