package output

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"rosterimport/roster"
)

type YAMLWriter struct{}

type yamlDocument struct {
	Records []roster.Record `yaml:"records"`
}

func (w *YAMLWriter) Write(path string, records []roster.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create yaml output %s: %w", path, err)
	}
	defer file.Close()

	return EncodeYAML(file, records)
}

// EncodeYAML writes records as a YAML document with a top-level records list.
func EncodeYAML(w io.Writer, records []roster.Record) error {
	if records == nil {
		records = []roster.Record{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlDocument{Records: records}); err != nil {
		return fmt.Errorf("encode yaml output: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flush yaml output: %w", err)
	}
	return nil
}
