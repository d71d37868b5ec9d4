package importer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSpreadsheetDecode wraps every failure to open or read a workbook.
var ErrSpreadsheetDecode = errors.New("decode spreadsheet")

// ExcelReader reads the first sheet of a workbook into a cell grid.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (Document, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("open excel file %s: %w: %w", path, ErrSpreadsheetDecode, err)
	}
	defer file.Close()

	grid, err := readGrid(file)
	if err != nil {
		return Document{}, fmt.Errorf("read excel file %s: %w", path, err)
	}
	return Document{Path: path, Format: "excel", Grid: grid}, nil
}

// ReadBytes decodes a workbook held in memory.
func (r *ExcelReader) ReadBytes(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open excel buffer: %w: %w", ErrSpreadsheetDecode, err)
	}
	defer file.Close()

	return readGrid(file)
}

// readGrid returns the first sheet with every row padded to the widest one.
func readGrid(file *excelize.File) ([][]string, error) {
	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets: %w", ErrSpreadsheetDecode)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w: %w", sheetName, ErrSpreadsheetDecode, err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	grid := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		grid[i] = padded
	}
	return grid, nil
}
