package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"rosterimport/config"
	"rosterimport/ingest"
	"rosterimport/roster"
)

type FileResult struct {
	Path         string
	Format       string
	RowsRead     int
	RowsFiltered int
	Records      []roster.Record
}

type Result struct {
	FilesProcessed    int
	RowsRead          int
	RecordsNormalized int
	RowsFiltered      int
	Files             []FileResult
}

// Records returns the normalized records of every file in input order.
func (r *Result) Records() []roster.Record {
	records := make([]roster.Record, 0, r.RecordsNormalized)
	for _, file := range r.Files {
		records = append(records, file.Records...)
	}
	return records
}

// Run reads and normalizes every path. A matching rule supplies the class
// section for records that carry none.
func Run(ctx context.Context, paths []string, format string, pipeline *ingest.Pipeline, rules []config.Rule) (*Result, error) {
	if pipeline == nil {
		pipeline = ingest.New()
	}

	result := &Result{Files: make([]FileResult, 0, len(paths))}
	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		doc, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		ingested, err := ingestDocument(ctx, pipeline, doc)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", path, err)
		}

		records := applyRule(ingested.Records, MatchRuleByTemplate(path, rules))
		result.FilesProcessed++
		result.RowsRead += ingested.RowsRead
		result.RowsFiltered += ingested.RowsFiltered
		result.RecordsNormalized += len(records)
		result.Files = append(result.Files, FileResult{
			Path:         path,
			Format:       doc.Format,
			RowsRead:     ingested.RowsRead,
			RowsFiltered: ingested.RowsFiltered,
			Records:      records,
		})
	}

	return result, nil
}

func ingestDocument(ctx context.Context, pipeline *ingest.Pipeline, doc Document) (*ingest.Result, error) {
	if doc.IsGrid() {
		return pipeline.IngestGrid(ctx, doc.Grid)
	}
	return pipeline.IngestText(ctx, doc.Text)
}

func applyRule(records []roster.Record, rule config.Rule) []roster.Record {
	section := strings.TrimSpace(rule.ClassSection)
	if section == "" {
		return records
	}
	for i := range records {
		if records[i].ClassSection == "" {
			records[i].ClassSection = section
		}
	}
	return records
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv", "txt":
		return "csv", nil
	case "tsv", "tab":
		return "tsv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("%w: cannot infer format from extension of %s", ErrUnsupportedFormat, path)
	}
}

func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	baseName := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, baseName)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}
