package status

import (
	"context"
	"database/sql"
	"fmt"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/pairsync/pairsync/pkg/metasync"
)

// SQLiteStore keeps every baseline in a single sqlite database. Compared to
// the file store it survives partial writes without temp-file handling and
// keeps the status directory to one file.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS status (
	name  TEXT NOT NULL,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (name, key)
);
`

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists. WAL mode is enabled so a reader never blocks the writer.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening status database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating status schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the baseline for name. An unknown name yields an empty
// baseline.
func (s *SQLiteStore) Load(ctx context.Context, name string) (metasync.Status, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM status WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("loading status for %s: %w", name, err)
	}
	defer rows.Close()

	st := make(metasync.Status)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning status row for %s: %w", name, err)
		}
		st[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status rows for %s: %w", name, err)
	}
	return st, nil
}

// Save replaces the baseline for name in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, name string, st metasync.Status) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving status for %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM status WHERE name = ?`, name); err != nil {
		return fmt.Errorf("clearing status for %s: %w", name, err)
	}

	for key, value := range st {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO status (name, key, value) VALUES (?, ?, ?)`,
			name, key, value); err != nil {
			return fmt.Errorf("writing status for %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
