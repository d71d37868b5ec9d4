package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned when a document has no usable data lines.
	ErrEmptyDocument = errors.New("document contains no data rows")
	// ErrNoColumns is returned when the resolved header row has no labels.
	ErrNoColumns = errors.New("header row contains no columns")
)

func validateLines(lines []string) error {
	if len(lines) == 0 {
		return fmt.Errorf("validate document: %w", ErrEmptyDocument)
	}
	return nil
}

func validateHeader(header Header, dataRows int) error {
	if header.LabelCount() == 0 {
		return fmt.Errorf("validate header at line %d: %w", header.Index+1, ErrNoColumns)
	}
	if dataRows == 0 {
		return fmt.Errorf("validate document: %w", ErrEmptyDocument)
	}
	return nil
}
