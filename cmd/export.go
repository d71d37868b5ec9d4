package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rosterimport/output"
	"rosterimport/roster"
	"rosterimport/storage"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportDBPath string
	exportBatch  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized roster records from SQLite to CSV/Excel/YAML",
	Long: `Export normalized roster records from SQLite.

Modes:
- raw: export each normalized record
- summary: export per-programme aggregates (records, distinct teachers, emails, sections)

Use --batch to export a single import run. Output format can be selected
explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export raw records to CSV
  rosterimport export --mode raw --output ./roster.csv

  # Export one batch to YAML
  rosterimport export --batch 5f0c6d2e-0b7e-4d0c-9a57-3c1f7f0e2a11 --output ./batch.yaml

  # Export programme summary to Excel
  rosterimport export --mode summary --output ./summary.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadCommandEnv()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := storage.OpenSQLite(env.dbPath(exportDBPath))
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := loadExportRecords(store, exportBatch)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "raw":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(exportOutput, records); err != nil {
				return err
			}
			fmt.Printf("Export completed. Records: %d, Mode: raw, Format: %s, File: %s\n", len(records), format, exportOutput)
		case "summary":
			summaries := output.BuildProgrammeSummaries(records)
			if err := output.WriteProgrammeSummaries(exportOutput, format, summaries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Programmes: %d, Mode: summary, Format: %s, File: %s\n", len(summaries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: raw, summary)", exportMode)
		}
		return nil
	},
}

func loadExportRecords(store *storage.SQLiteStore, batchID string) ([]roster.Record, error) {
	var (
		stored []storage.StoredRecord
		err    error
	)
	if strings.TrimSpace(batchID) != "" {
		stored, err = store.ListBatch(strings.TrimSpace(batchID))
	} else {
		stored, err = store.ListRecords()
	}
	if err != nil {
		return nil, err
	}

	records := make([]roster.Record, len(stored))
	for i, row := range stored {
		records[i] = row.Record
	}
	return records, nil
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm":
		return "excel"
	case "yaml", "yml":
		return "yaml"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw|summary")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|yaml (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
	exportCmd.Flags().StringVar(&exportBatch, "batch", "", "Export only the records of this import batch")

	_ = exportCmd.MarkFlagRequired("output")
}
