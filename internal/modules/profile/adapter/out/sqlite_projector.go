package out

import (
	"context"
	"database/sql"
	"fmt"

	"apnea/internal/modules/profile/domain"
	profileout "apnea/internal/modules/profile/port/out"
)

type SQLiteRecordProjector struct {
	db *sql.DB
}

// NewSQLiteRecordProjector expects a handle from sqlitedb.Open.
func NewSQLiteRecordProjector(db *sql.DB) profileout.RecordProjector {
	return &SQLiteRecordProjector{db: db}
}

// Project replaces every row with the store's records in one transaction.
func (s *SQLiteRecordProjector) Project(ctx context.Context, store domain.Store) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin projection: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_records`); err != nil {
		return fmt.Errorf("reset session_records: %w", err)
	}
	const stmt = `
INSERT INTO session_records (profile_id, date, day, focus, session_type, details, notes, actual_max_hold, completed, session_time)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	insert, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer insert.Close()
	for _, id := range store.IDs() {
		for _, r := range store.Profiles[id].Sessions {
			var maxHold sql.NullInt64
			if r.ActualMaxHold != nil {
				maxHold = sql.NullInt64{Int64: int64(*r.ActualMaxHold), Valid: true}
			}
			if _, err := insert.ExecContext(ctx, id, r.Date, r.Day, r.Focus, r.SessionType, r.Details, r.Notes, maxHold, r.Completed, r.SessionTime); err != nil {
				return fmt.Errorf("project record %s/%s: %w", id, r.Date, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit projection: %w", err)
	}
	return nil
}
