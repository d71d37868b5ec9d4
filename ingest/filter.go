package ingest

import (
	"regexp"
	"strings"

	"rosterimport/roster"
)

// SerialNumberSentinel is left behind by broken multi-row headers.
const SerialNumberSentinel = "Sl. No"

var (
	contaminationKeywords = []string{"programme", "email", "folder", "accompanying", "charge"}
	classWisePattern      = regexp.MustCompile(`(?i)class\s*wise`)
	generatedClassPattern = regexp.MustCompile(`^Class \d+$`)
)

func isContaminated(value string) bool {
	return containsAny(strings.ToLower(value), contaminationKeywords)
}

func isSentinel(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == SerialNumberSentinel || classWisePattern.MatchString(trimmed) || strings.Contains(trimmed, "Class Wise/")
}

// FilterRecords drops records that look like header or continuation fragments:
// any value mentioning a header keyword, or a serial-number sentinel as the
// accompanying teacher. Values equal to this pipeline's placeholders or to a
// generated "Class N" programme are not treated as document content, so output
// of IngestText and IngestGrid passes through unchanged.
func (p *Pipeline) FilterRecords(records []roster.Record) []roster.Record {
	kept := make([]roster.Record, 0, len(records))
	for _, record := range records {
		documentValues := make(roster.Fields, 0, roster.FieldCount)
		for _, field := range roster.CanonicalFields() {
			value := record.Get(field)
			if p.substituted(field, value) {
				continue
			}
			documentValues = append(documentValues, roster.KV{Key: field.Label(), Value: value})
		}
		if recordDropped(documentValues, record.AccompanyingTeacher) {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

func (p *Pipeline) substituted(field roster.Field, value string) bool {
	if field == roster.ProgrammeName {
		return generatedClassPattern.MatchString(value)
	}
	literal := p.placeholders.literal(field)
	return literal != "" && value == literal
}

func recordDropped(values roster.Fields, teacher string) bool {
	for _, kv := range values {
		if isContaminated(kv.Value) {
			return true
		}
	}
	return teacher == SerialNumberSentinel
}

// filterEnhanced applies the record filter to enhancement output. Generated and
// placeholder values never count as contamination since they did not come from
// the document, while the raw teacher cell is checked alongside the final one.
func filterEnhanced(rows []enhancedRow) ([]roster.Record, []enhancedRow) {
	kept := make([]roster.Record, 0, len(rows))
	dropped := make([]enhancedRow, 0)
	for _, row := range rows {
		documentValues := make(roster.Fields, 0, len(row.sources))
		for _, field := range roster.CanonicalFields() {
			if row.sources[field].fromDocument() {
				documentValues = append(documentValues, roster.KV{Key: field.Label(), Value: row.record.Get(field)})
			}
		}
		teacher := row.record.AccompanyingTeacher
		if row.raw[roster.AccompanyingTeacher] == SerialNumberSentinel {
			teacher = SerialNumberSentinel
		}
		if recordDropped(documentValues, teacher) {
			dropped = append(dropped, row)
			continue
		}
		kept = append(kept, row.record)
	}
	return kept, dropped
}
