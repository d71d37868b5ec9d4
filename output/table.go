package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"rosterimport/roster"
)

// RenderTable prints records as an aligned markdown table. Column widths use
// display width so names in wide scripts line up in a terminal.
func RenderTable(w io.Writer, records []roster.Record) error {
	table := make([][]string, 0, len(records)+1)
	table = append(table, canonicalHeaders())
	for _, record := range records {
		table = append(table, recordValues(record))
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	lines := make([]string, 0, len(table)+1)
	for i, row := range table {
		lines = append(lines, tableLine(row, widths))
		if i == 0 {
			separator := make([]string, len(widths))
			for j, width := range widths {
				separator[j] = strings.Repeat("-", width)
			}
			lines = append(lines, tableLine(separator, widths))
		}
	}

	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func tableLine(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cells[i], width))
		sb.WriteString(" |")
	}
	return sb.String()
}
