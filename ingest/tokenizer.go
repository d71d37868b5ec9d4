package ingest

import "strings"

// Tokenize splits one document line into trimmed field values.
//
// Quoting rules, applied in a single pass with one inQuotes flag:
//   - outside quotes, `"` opens a quoted section unless it directly follows a
//     backslash; an escaped quote stays in the field verbatim, backslash included
//   - inside quotes, `""` is a literal quote and keeps the section open; any
//     other `"` closes it and backslashes carry no meaning
//   - `,` ends the field only outside quotes
//
// A field that is wrapped in quotes after trimming loses one layer of wrapping
// and its doubled quotes collapse. An unterminated quote makes the rest of the
// line a single field. Tokenize never fails.
func Tokenize(line string) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				current.WriteString(`""`)
				i++
				continue
			}
			inQuotes = false
			current.WriteByte(ch)
		case ch == '"':
			if i == 0 || line[i-1] != '\\' {
				inQuotes = true
			}
			current.WriteByte(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, finishField(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	return append(fields, finishField(current.String()))
}

func finishField(raw string) string {
	field := strings.TrimSpace(raw)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		return strings.ReplaceAll(field[1:len(field)-1], `""`, `"`)
	}
	return field
}

// SerializeRow joins fields into one line that Tokenize splits back into the
// same values, as long as no field contains a line break.
func SerializeRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = quoteField(field)
	}
	return strings.Join(quoted, ",")
}

// quoteField wraps values containing a separator or quote. Values with
// surrounding whitespace are wrapped too because Tokenize trims bare fields.
func quoteField(value string) string {
	if strings.ContainsAny(value, `,"`) || value != strings.TrimSpace(value) {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
