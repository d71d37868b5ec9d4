package ingest

import (
	"strings"

	"rosterimport/roster"
)

// DefaultHeaderScanLimit bounds how many leading lines a complex document is
// searched for a header row.
const DefaultHeaderScanLimit = 10

var headerKeywords = []string{"programme", "program", "email", "robe", "folder", "name"}

// HeaderRule is one entry of the ordered label normalization table.
type HeaderRule struct {
	Name  string
	Field roster.Field
	Match func(lower string) bool
}

// headerRules is evaluated top to bottom and the first match wins; moving an
// entry changes which field a label resolves to. Exact canonical labels are
// matched before the table so that every canonical label maps to itself.
var headerRules = []HeaderRule{
	{
		Name:  "programme",
		Field: roster.ProgrammeName,
		Match: func(l string) bool { return containsAny(l, []string{"program", "course", "class"}) },
	},
	{
		Name:  "section",
		Field: roster.ClassSection,
		Match: func(l string) bool { return strings.Contains(l, "section") },
	},
	{
		Name:  "robe email",
		Field: roster.RobeEmail,
		Match: func(l string) bool {
			return (has(l, "robe") && has(l, "email")) || (has(l, "teacher") && has(l, "email")) || has(l, "accompanying")
		},
	},
	{
		Name:  "folder email",
		Field: roster.FolderEmail,
		Match: func(l string) bool {
			return (has(l, "folder") && has(l, "email")) || (has(l, "charge") && has(l, "email"))
		},
	},
	{
		Name:  "accompanying teacher name",
		Field: roster.AccompanyingTeacher,
		Match: func(l string) bool {
			return has(l, "name") && (has(l, "teacher") || has(l, "robe") || has(l, "accompanying"))
		},
	},
	{
		Name:  "folder in charge name",
		Field: roster.FolderInCharge,
		Match: func(l string) bool { return has(l, "name") && (has(l, "folder") || has(l, "charge")) },
	},
	{
		Name:  "teacher",
		Field: roster.AccompanyingTeacher,
		Match: func(l string) bool { return has(l, "teacher") && !has(l, "email") },
	},
	{
		Name:  "generic name",
		Field: roster.AccompanyingTeacher,
		Match: func(l string) bool { return has(l, "name") && !has(l, "program") },
	},
}

func has(value, needle string) bool {
	return strings.Contains(value, needle)
}

// HeaderRules returns a copy of the normalization table in evaluation order.
func HeaderRules() []HeaderRule {
	return append([]HeaderRule(nil), headerRules...)
}

// ResolveField maps a raw header label to its canonical field. The boolean is
// false when no rule matches.
func ResolveField(label string) (roster.Field, bool) {
	if field, ok := roster.FieldByLabel(label); ok {
		return field, true
	}
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return 0, false
	}
	for _, rule := range headerRules {
		if rule.Match(lower) {
			return rule.Field, true
		}
	}
	return 0, false
}

// NormalizeHeaderName returns the canonical label for a raw header, or the
// label unchanged when it cannot be mapped.
func NormalizeHeaderName(label string) string {
	if field, ok := ResolveField(label); ok {
		return field.Label()
	}
	return label
}

// Label is one header cell and the field it resolved to.
type Label struct {
	Raw    string
	Field  roster.Field
	Mapped bool
}

// Header is the resolved header row of a document.
type Header struct {
	Labels []Label
	// Index is the line holding the header, -1 when it was synthesized.
	Index int
	// NoHeader is set when no line qualified and rows are sniffed by content.
	NoHeader bool
}

// LabelCount counts the non-blank labels.
func (h Header) LabelCount() int {
	count := 0
	for _, label := range h.Labels {
		if strings.TrimSpace(label.Raw) != "" {
			count++
		}
	}
	return count
}

// DataStart is the first line index holding data.
func (h Header) DataStart() int {
	if h.NoHeader {
		return 0
	}
	return h.Index + 1
}

// DefaultLabels is the label set used when a document has no header row.
func DefaultLabels() []string {
	return []string{
		roster.ProgrammeName.Label(),
		roster.RobeEmail.Label(),
		roster.FolderEmail.Label(),
		roster.AccompanyingTeacher.Label(),
		roster.FolderInCharge.Label(),
	}
}

// ResolveHeader locates the header row. Simple documents use row 0 as is;
// complex documents are searched within the first scanLimit lines, and when no
// line qualifies the default labels are synthesized in no-header mode.
func ResolveHeader(rows [][]string, lines []string, format Format, scanLimit int) Header {
	if format == FormatSimple && len(rows) > 0 {
		return Header{Labels: labelsFor(rows[0]), Index: 0}
	}

	if scanLimit <= 0 {
		scanLimit = DefaultHeaderScanLimit
	}
	for i := 0; i < len(lines) && i < scanLimit && i < len(rows); i++ {
		if containsAny(strings.ToLower(lines[i]), headerKeywords) {
			return Header{Labels: labelsFor(rows[i]), Index: i}
		}
	}

	return Header{Labels: labelsFor(DefaultLabels()), Index: -1, NoHeader: true}
}

func labelsFor(cells []string) []Label {
	labels := make([]Label, len(cells))
	for i, cell := range cells {
		raw := strings.TrimSpace(cell)
		field, ok := ResolveField(raw)
		labels[i] = Label{Raw: raw, Field: field, Mapped: ok}
	}
	return labels
}
