package cmd

import (
	"log/slog"
	"os"
	"strings"

	"rosterimport/config"
	"rosterimport/ingest"
	"rosterimport/internal/logging"
)

type commandEnv struct {
	cfg      *config.Config
	log      *slog.Logger
	pipeline *ingest.Pipeline
}

// loadCommandEnv validates the active configuration and builds the logger and
// ingest pipeline every data command shares.
func loadCommandEnv() (*commandEnv, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.Log.Level, os.Stderr)
	return &commandEnv{
		cfg:      cfg,
		log:      log,
		pipeline: newPipeline(cfg, log),
	}, nil
}

func newPipeline(cfg *config.Config, log *slog.Logger) *ingest.Pipeline {
	placeholders := cfg.Ingest.Placeholders
	return ingest.New(
		ingest.WithLogger(log),
		ingest.WithHeaderScanLimit(cfg.Ingest.HeaderScanLimit),
		ingest.WithPlaceholders(ingest.Placeholders{
			RobeEmail:     placeholders.RobeEmail,
			FolderEmail:   placeholders.FolderEmail,
			RobeTeacher:   placeholders.RobeTeacher,
			FolderTeacher: placeholders.FolderTeacher,
		}),
	)
}

// dbPath prefers an explicit --db flag over the configured path.
func (e *commandEnv) dbPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return e.cfg.Storage.DBPath
}
