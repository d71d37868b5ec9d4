package importer

import (
	"errors"
	"fmt"
)

var ErrUnsupportedFormat = errors.New("unsupported input format")

type Reader interface {
	Read(path string) (Document, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVReader{}, nil
	case "tsv":
		return &TSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
