// Package ingest normalizes roster spreadsheets whose layout is discovered at
// runtime. A document is tokenized line by line, classified, given a header
// (found or synthesized), scanned for fallback entities, and every data row is
// completed and filtered into a roster.Record.
//
// The package holds no mutable package-level state; a Pipeline can serve
// concurrent callers.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"rosterimport/roster"
)

const byteOrderMark = "\uFEFF"

var lineBreakPattern = regexp.MustCompile(`\r?\n`)

// Result is the outcome of one ingestion call.
type Result struct {
	Records     []roster.Record
	Format      Format
	NoHeader    bool
	HeaderIndex int
	// RowsRead counts data rows after header resolution.
	RowsRead     int
	RowsFiltered int
}

// Pipeline runs ingestion with a fixed set of options.
type Pipeline struct {
	log          *slog.Logger
	scanLimit    int
	placeholders Placeholders
}

type Option func(*Pipeline)

func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithHeaderScanLimit bounds the complex-format header search.
func WithHeaderScanLimit(limit int) Option {
	return func(p *Pipeline) {
		if limit > 0 {
			p.scanLimit = limit
		}
	}
}

func WithPlaceholders(placeholders Placeholders) Option {
	return func(p *Pipeline) {
		p.placeholders = placeholders.withDefaults()
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:          slog.New(slog.DiscardHandler),
		scanLimit:    DefaultHeaderScanLimit,
		placeholders: DefaultPlaceholders(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IngestText normalizes a CSV document held in memory.
func (p *Pipeline) IngestText(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := SplitLines(text)
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = Tokenize(line)
	}

	format := Classify(lines)
	header := ResolveHeader(rows, lines, format, p.scanLimit)
	return p.run(rows, lines, format, header)
}

// IngestGrid normalizes a cell grid produced by a spreadsheet reader. The
// first row is always the header, even when blank; blank rows after it are
// skipped. A grid without a single non-blank cell is an empty document.
func (p *Pipeline) IngestGrid(ctx context.Context, grid [][]string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(grid))
	lines := make([]string, 0, len(grid))
	hasContent := false
	for _, cells := range grid {
		row := make([]string, len(cells))
		blank := true
		for i, cell := range cells {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if blank && len(rows) > 0 {
			continue
		}
		hasContent = hasContent || !blank
		rows = append(rows, row)
		lines = append(lines, SerializeRow(row))
	}
	if !hasContent {
		lines = nil
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	header := ResolveHeader(rows, lines, FormatSimple, p.scanLimit)
	return p.run(rows, lines, FormatSimple, header)
}

func (p *Pipeline) run(rows [][]string, lines []string, format Format, header Header) (*Result, error) {
	data := rows[header.DataStart():]
	if err := validateHeader(header, len(data)); err != nil {
		return nil, err
	}

	p.log.Debug("header resolved",
		"format", format.String(),
		"header_line", header.Index+1,
		"no_header", header.NoHeader,
		"labels", header.LabelCount(),
		"data_rows", len(data),
	)

	pool := ScanEntities(lines)
	p.log.Debug("entities harvested",
		"emails", pool.Emails.Len(),
		"program_codes", pool.ProgramCodes.Len(),
		"teacher_names", pool.TeacherNames.Len(),
	)

	enhancer := NewEnhancer(header, pool, p.placeholders)
	enhanced := make([]enhancedRow, 0, len(data))
	for i, cells := range data {
		enhanced = append(enhanced, enhancer.enhance(RawRow{
			Index: i,
			Line:  header.DataStart() + i + 1,
			Cells: cells,
		}))
	}

	records, dropped := filterEnhanced(enhanced)
	for _, row := range dropped {
		p.log.Debug("row filtered as header fragment", "line", row.line)
	}

	return &Result{
		Records:      records,
		Format:       format,
		NoHeader:     header.NoHeader,
		HeaderIndex:  header.Index,
		RowsRead:     len(data),
		RowsFiltered: len(dropped),
	}, nil
}

// SplitLines strips a leading byte-order mark, splits on \n or \r\n and drops
// blank lines.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, byteOrderMark)
	parts := lineBreakPattern.Split(text, -1)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lines = append(lines, part)
	}
	return lines
}

// Ingest is a convenience wrapper using default options.
func Ingest(ctx context.Context, text string) ([]roster.Record, error) {
	result, err := New().IngestText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("ingest document: %w", err)
	}
	return result.Records, nil
}
