package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
)

// Compile-time check to ensure SQLiteStore implements SnapshotStore
var _ interfaces.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteStore persists a full catalog snapshot in a local sqlite database
// so the pipeline works offline before the remote service is reachable.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the snapshot database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Warn("Failed to close snapshot database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}

	return store, nil
}

// Name identifies the source in logs and health output
func (s *SQLiteStore) Name() string {
	return "snapshot"
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS drug_records (
        id TEXT PRIMARY KEY,
        nafdac_number TEXT NOT NULL,
        name TEXT NOT NULL,
        record TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS snapshot_meta (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_drug_records_nafdac ON drug_records(nafdac_number);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Fetch loads every record stored in the snapshot. Rows that fail to
// decode are skipped with a warning so one bad row cannot sink the load.
func (s *SQLiteStore) Fetch(ctx context.Context) ([]entities.DrugRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, record FROM drug_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Warn("Failed to close snapshot rows", "error", err)
		}
	}()

	var records []entities.DrugRecord
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		var record entities.DrugRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			logging.Warn("Skipping undecodable snapshot record", "id", id, "error", err)
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot row error: %w", err)
	}

	return records, nil
}

// Save replaces the stored snapshot with the given records in a single
// transaction so readers never observe a half-written snapshot.
func (s *SQLiteStore) Save(ctx context.Context, records []entities.DrugRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start snapshot transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM drug_records`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	insert := `INSERT INTO drug_records (id, nafdac_number, name, record) VALUES (?, ?, ?, ?)`
	for i := range records {
		raw, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", records[i].ID, err)
		}

		_, err = tx.ExecContext(ctx, insert,
			records[i].ID,
			entities.NormalizeNafdac(records[i].NafdacNumber),
			records[i].Name,
			string(raw))
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", records[i].ID, err)
		}
	}

	meta := `INSERT INTO snapshot_meta (key, value) VALUES ('saved_at', ?)
             ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, meta, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record snapshot time: %w", err)
	}

	return tx.Commit()
}
