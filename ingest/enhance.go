package ingest

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"rosterimport/roster"
)

// Placeholders are the literal values used when neither the row nor the
// harvested pools can supply a field.
type Placeholders struct {
	RobeEmail     string
	FolderEmail   string
	RobeTeacher   string
	FolderTeacher string
}

// DefaultPlaceholders returns the built-in placeholder literals.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		RobeEmail:     "teacher@example.com",
		FolderEmail:   "folder@example.com",
		RobeTeacher:   "Robe Teacher",
		FolderTeacher: "Folder Teacher",
	}
}

func (p Placeholders) withDefaults() Placeholders {
	defaults := DefaultPlaceholders()
	p.RobeEmail = firstNonEmpty(p.RobeEmail, defaults.RobeEmail)
	p.FolderEmail = firstNonEmpty(p.FolderEmail, defaults.FolderEmail)
	p.RobeTeacher = firstNonEmpty(p.RobeTeacher, defaults.RobeTeacher)
	p.FolderTeacher = firstNonEmpty(p.FolderTeacher, defaults.FolderTeacher)
	return p
}

func (p Placeholders) literal(field roster.Field) string {
	switch field {
	case roster.RobeEmail:
		return p.RobeEmail
	case roster.FolderEmail:
		return p.FolderEmail
	case roster.AccompanyingTeacher:
		return p.RobeTeacher
	case roster.FolderInCharge:
		return p.FolderTeacher
	default:
		return ""
	}
}

type valueSource int

const (
	sourceNone valueSource = iota
	sourceRow
	sourceSynonym
	sourcePool
	sourceGenerated
	sourcePlaceholder
)

func (s valueSource) fromDocument() bool {
	return s == sourceRow || s == sourceSynonym || s == sourcePool
}

// RawRow is one data line before enhancement.
type RawRow struct {
	// Index is the zero-based position among data rows.
	Index int
	// Line is the one-based line number within the document.
	Line  int
	Cells []string
}

type enhancedRow struct {
	line    int
	record  roster.Record
	sources [roster.FieldCount]valueSource
	raw     [roster.FieldCount]string
}

func (r *enhancedRow) set(field roster.Field, value string, source valueSource) {
	r.record.Set(field, value)
	r.sources[field] = source
}

func (r *enhancedRow) assigned() []string {
	values := make([]string, 0, roster.FieldCount)
	for _, field := range roster.CanonicalFields() {
		if value := r.record.Get(field); value != "" {
			values = append(values, value)
		}
	}
	return values
}

var contentFields = []roster.Field{
	roster.ProgrammeName,
	roster.RobeEmail,
	roster.FolderEmail,
	roster.AccompanyingTeacher,
	roster.FolderInCharge,
}

var fieldSynonyms = map[roster.Field][]string{
	roster.ProgrammeName:       {"programme", "program", "course", "class"},
	roster.RobeEmail:           {"robe", "accompanying", "teacher email"},
	roster.FolderEmail:         {"folder", "charge"},
	roster.AccompanyingTeacher: {"accompanying", "teacher", "robe"},
	roster.FolderInCharge:      {"folder", "charge", "in charge"},
	roster.ClassSection:        {"section"},
}

// Enhancer turns raw rows into complete records. It draws from the pools of
// one document, so a new Enhancer is needed per ingestion.
type Enhancer struct {
	header       Header
	pool         *EntityPool
	placeholders Placeholders
}

func NewEnhancer(header Header, pool *EntityPool, placeholders Placeholders) *Enhancer {
	if pool == nil {
		pool = NewEntityPool()
	}
	return &Enhancer{header: header, pool: pool, placeholders: placeholders.withDefaults()}
}

// Enhance fills every canonical field of row: the mapped cell when valid, then
// a valid cell under a synonym column, then the next pool entry, then a
// generated label or placeholder.
func (e *Enhancer) Enhance(row RawRow) roster.Record {
	return e.enhance(row).record
}

func (e *Enhancer) enhance(row RawRow) enhancedRow {
	out := enhancedRow{line: row.Line}
	if e.header.NoHeader {
		sniffCells(row.Cells, &out)
	} else {
		e.mapColumns(row.Cells, &out)
	}

	for _, field := range contentFields {
		e.fill(field, row, &out)
	}

	if section := out.raw[roster.ClassSection]; section != "" {
		out.set(roster.ClassSection, section, sourceRow)
	} else if value, ok := e.recoverFromRow(roster.ClassSection, row.Cells, &out); ok {
		out.set(roster.ClassSection, value, sourceSynonym)
	}
	return out
}

func (e *Enhancer) mapColumns(cells []string, out *enhancedRow) {
	for i, label := range e.header.Labels {
		if !label.Mapped {
			continue
		}
		if value := cellAt(cells, i); out.raw[label.Field] == "" {
			out.raw[label.Field] = value
		}
	}
}

func (e *Enhancer) fill(field roster.Field, row RawRow, out *enhancedRow) {
	if raw := out.raw[field]; validFor(field, raw) {
		out.set(field, raw, sourceRow)
		return
	}
	if value, ok := e.recoverFromRow(field, row.Cells, out); ok {
		out.set(field, value, sourceSynonym)
		return
	}
	if pool := e.pool.poolFor(field); pool != nil {
		if value, ok := pool.Draw(out.assigned()...); ok && validFor(field, value) {
			out.set(field, value, sourcePool)
			return
		}
	}
	if field == roster.ProgrammeName {
		out.set(field, fmt.Sprintf("Class %d", row.Index+1), sourceGenerated)
		return
	}
	out.set(field, e.placeholders.literal(field), sourcePlaceholder)
}

// recoverFromRow looks for a valid value under any column whose label carries
// one of the field's synonyms. Section columns only ever feed ClassSection.
func (e *Enhancer) recoverFromRow(field roster.Field, cells []string, out *enhancedRow) (string, bool) {
	if e.header.NoHeader {
		return "", false
	}
	synonyms := fieldSynonyms[field]
	assigned := out.assigned()
	for i, label := range e.header.Labels {
		if label.Mapped && label.Field == roster.ClassSection && field != roster.ClassSection {
			continue
		}
		if !containsAny(strings.ToLower(label.Raw), synonyms) {
			continue
		}
		value := cellAt(cells, i)
		if value == "" || !validFor(field, value) || slices.Contains(assigned, value) {
			continue
		}
		return value, true
	}
	return "", false
}

// sniffCells assigns values by content alone, for documents without a header:
// email substrings fill the email fields in order, programme-looking cells the
// programme, and other long textual cells the name fields.
func sniffCells(cells []string, out *enhancedRow) {
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if emails := emailPattern.FindAllString(cell, -1); len(emails) > 0 {
			for _, email := range emails {
				assignNext(out, email, roster.RobeEmail, roster.FolderEmail)
			}
			continue
		}
		if strings.Contains(cell, "@") {
			continue
		}
		if out.raw[roster.ProgrammeName] == "" && looksLikeProgramme(cell) {
			out.raw[roster.ProgrammeName] = cell
			continue
		}
		if utf8.RuneCountInString(cell) > 3 && strings.IndexFunc(cell, unicode.IsDigit) < 0 && validName(cell) {
			assignNext(out, cell, roster.AccompanyingTeacher, roster.FolderInCharge)
		}
	}
}

func assignNext(out *enhancedRow, value string, fields ...roster.Field) {
	for _, field := range fields {
		if out.raw[field] == value {
			return
		}
	}
	for _, field := range fields {
		if out.raw[field] == "" {
			out.raw[field] = value
			return
		}
	}
}

func looksLikeProgramme(cell string) bool {
	return programCodePattern.MatchString(cell) || containsAny(strings.ToLower(cell), programmeLineKeywords)
}

func validFor(field roster.Field, value string) bool {
	value = strings.TrimSpace(value)
	switch {
	case field.IsEmail():
		return strings.Contains(value, "@")
	case field.IsName():
		return validName(value)
	case field == roster.ProgrammeName:
		return value != ""
	default:
		return true
	}
}

func validName(value string) bool {
	return value != "" && !strings.Contains(value, "@") && !isSentinel(value)
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
