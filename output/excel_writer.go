package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rosterimport/roster"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, records []roster.Record) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = recordValues(record)
	}
	return writeExcelSheet(path, canonicalHeaders(), rows)
}

func writeExcelSheet(path string, headers []string, rows [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, values := range rows {
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
