// Package sqlitedb opens the record projection database shared by the
// profile writer and the progress reader.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_records (
  profile_id TEXT NOT NULL,
  date TEXT NOT NULL,
  day TEXT NOT NULL,
  focus TEXT NOT NULL,
  session_type TEXT NOT NULL,
  details TEXT NOT NULL,
  notes TEXT NOT NULL,
  actual_max_hold INTEGER,
  completed INTEGER NOT NULL,
  session_time INTEGER NOT NULL,
  PRIMARY KEY (profile_id, date)
);
`

// Open creates the database file when missing and ensures the schema.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc's driver serialises writers poorly across connections.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session_records table: %w", err)
	}
	return db, nil
}
