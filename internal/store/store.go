// Package store holds the SQL repositories. Each store runs over a DBTX so
// the same code serves plain connections and transactions; the completion
// workflow rebinds stores to a *sql.Tx for its atomic section.
package store

import (
	"database/sql"
	"time"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// dateLayout is the storage format for pure dates (chore due dates).
const dateLayout = "2006-01-02"

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(dateLayout), Valid: true}
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
