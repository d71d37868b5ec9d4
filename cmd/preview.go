package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rosterimport/importer"
	"rosterimport/ingest"
	"rosterimport/output"
	"rosterimport/roster"
)

var (
	previewInputs       []string
	previewFormat       string
	previewOutputFormat string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Normalize roster files and print the result",
	Long: `Run the same normalization as import and print the records of every input
in order instead of storing them. Per-file counts go to stderr.

Output formats:
- table: aligned markdown table (default)
- yaml: YAML document with a records list
- csv: CSV text that import reads back unchanged`,
	Example: `
  # Show normalized rows as a table
  rosterimport preview -i ./bca_roster.csv

  # Print YAML for two files
  rosterimport preview -i ./bca_roster.csv -i ./mca_roster.xlsx --output-format yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadCommandEnv()
		if err != nil {
			return err
		}

		result, err := importer.Run(cmd.Context(), previewInputs, previewFormat, env.pipeline, env.cfg.Rules)
		if err != nil {
			return err
		}

		for _, file := range result.Files {
			fmt.Fprintf(os.Stderr, "File: %s, Format: %s, Rows read: %d, Records: %d, Rows filtered: %d\n",
				file.Path, file.Format, file.RowsRead, len(file.Records), file.RowsFiltered)
		}
		return writePreview(os.Stdout, previewOutputFormat, result.Records())
	},
}

func writePreview(w io.Writer, format string, records []roster.Record) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return output.RenderTable(w, records)
	case "yaml", "yml":
		return output.EncodeYAML(w, records)
	case "csv":
		_, err := fmt.Fprintln(w, ingest.ExportRecords(records))
		return err
	default:
		return fmt.Errorf("unsupported preview output format: %s (supported: table, yaml, csv)", format)
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringArrayVarP(&previewInputs, "input", "i", nil, "Input file path (repeatable)")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "", "Input format: csv|tsv|excel (optional, inferred from extension when omitted)")
	previewCmd.Flags().StringVar(&previewOutputFormat, "output-format", "table", "Output format: table|yaml|csv")

	_ = previewCmd.MarkFlagRequired("input")
}
