package out

import (
	"context"
	"database/sql"
	"fmt"

	"apnea/internal/modules/progress/domain"
	progressout "apnea/internal/modules/progress/port/out"
)

type SQLiteRecordReader struct {
	db *sql.DB
}

// NewSQLiteRecordReader expects a handle from sqlitedb.Open.
func NewSQLiteRecordReader(db *sql.DB) progressout.RecordReader {
	return &SQLiteRecordReader{db: db}
}

func (s *SQLiteRecordReader) Records(ctx context.Context, profileID string) ([]domain.Record, error) {
	const query = `
SELECT date, focus, completed, session_time, actual_max_hold
FROM session_records
WHERE profile_id = ?
ORDER BY date;
`
	rows, err := s.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("query session_records: %w", err)
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		var (
			r       domain.Record
			maxHold sql.NullInt64
		)
		if err := rows.Scan(&r.Date, &r.Focus, &r.Completed, &r.SessionTime, &maxHold); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		if maxHold.Valid {
			v := int(maxHold.Int64)
			r.ActualMaxHold = &v
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session_records: %w", err)
	}
	return out, nil
}
