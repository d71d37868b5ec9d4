package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rosterimport/roster"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var ErrBatchNotFound = errors.New("batch not found")

// StoredRecord is a normalized record together with its persistence metadata.
type StoredRecord struct {
	ID         int64
	BatchID    string
	SourceFile string
	CreatedAt  time.Time
	Record     roster.Record
}

// BatchSummary describes one import run.
type BatchSummary struct {
	BatchID   string
	Records   int
	Files     int
	CreatedAt time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// The same record from the same file is stored once, whichever batch
	// brought it in first.
	const schema = `
CREATE TABLE IF NOT EXISTS roster_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL,
	programme_name TEXT NOT NULL,
	robe_email TEXT NOT NULL,
	folder_email TEXT NOT NULL,
	accompanying_teacher TEXT NOT NULL,
	folder_in_charge TEXT NOT NULL,
	class_section TEXT NOT NULL DEFAULT '',
	source_file TEXT NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE(programme_name, robe_email, folder_email, accompanying_teacher, folder_in_charge, class_section, source_file)
);
CREATE INDEX IF NOT EXISTS idx_roster_records_batch ON roster_records(batch_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRecords stores records under batchID and returns how many were new.
func (s *SQLiteStore) InsertRecords(batchID, sourceFile string, records []roster.Record) (int, error) {
	if strings.TrimSpace(batchID) == "" {
		return 0, fmt.Errorf("batch id is required")
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	const insertStmt = `
INSERT OR IGNORE INTO roster_records (
	batch_id,
	programme_name,
	robe_email,
	folder_email,
	accompanying_teacher,
	folder_in_charge,
	class_section,
	source_file,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	createdAt := s.now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, record := range records {
		res, err := stmt.Exec(
			batchID,
			record.ProgrammeName,
			record.RobeEmail,
			record.FolderEmail,
			record.AccompanyingTeacher,
			record.FolderInCharge,
			record.ClassSection,
			sourceFile,
			createdAt,
		)
		if err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert roster record: %w", err)
		}

		rows, err := res.RowsAffected()
		if err == nil && rows > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

const selectRecords = `
SELECT
	id,
	batch_id,
	programme_name,
	robe_email,
	folder_email,
	accompanying_teacher,
	folder_in_charge,
	class_section,
	source_file,
	created_at
FROM roster_records
`

// ListRecords returns every stored record in insertion order.
func (s *SQLiteStore) ListRecords() ([]StoredRecord, error) {
	return s.queryRecords(selectRecords + `ORDER BY id;`)
}

// ListBatch returns the records of one import run.
func (s *SQLiteStore) ListBatch(batchID string) ([]StoredRecord, error) {
	records, err := s.queryRecords(selectRecords+`WHERE batch_id = ? ORDER BY id;`, batchID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("list batch %s: %w", batchID, ErrBatchNotFound)
	}
	return records, nil
}

func (s *SQLiteStore) queryRecords(query string, args ...any) ([]StoredRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query roster records: %w", err)
	}
	defer rows.Close()

	records := make([]StoredRecord, 0, 256)
	for rows.Next() {
		var (
			stored     StoredRecord
			createdRaw string
		)
		if err := rows.Scan(
			&stored.ID,
			&stored.BatchID,
			&stored.Record.ProgrammeName,
			&stored.Record.RobeEmail,
			&stored.Record.FolderEmail,
			&stored.Record.AccompanyingTeacher,
			&stored.Record.FolderInCharge,
			&stored.Record.ClassSection,
			&stored.SourceFile,
			&createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan roster record: %w", err)
		}

		stored.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
		}
		records = append(records, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster records: %w", err)
	}

	return records, nil
}

// ListBatches summarizes every import run, oldest first.
func (s *SQLiteStore) ListBatches() ([]BatchSummary, error) {
	const query = `
SELECT
	batch_id,
	COUNT(*),
	COUNT(DISTINCT source_file),
	MIN(created_at)
FROM roster_records
GROUP BY batch_id
ORDER BY MIN(created_at), batch_id;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	batches := make([]BatchSummary, 0, 16)
	for rows.Next() {
		var (
			batch      BatchSummary
			createdRaw string
		)
		if err := rows.Scan(&batch.BatchID, &batch.Records, &batch.Files, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batch.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
		}
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	return batches, nil
}

// DeleteBatch removes every record of one import run.
func (s *SQLiteStore) DeleteBatch(batchID string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM roster_records WHERE batch_id = ?;`, batchID)
	if err != nil {
		return 0, fmt.Errorf("delete batch %s: %w", batchID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("delete batch %s: %w", batchID, ErrBatchNotFound)
	}
	return rows, nil
}

func (s *SQLiteStore) DeleteAllRecords() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM roster_records;`)
	if err != nil {
		return 0, fmt.Errorf("delete roster records: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
