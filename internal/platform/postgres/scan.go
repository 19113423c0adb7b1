package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/internsim/practice-api/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// inTx runs fn inside a transaction. When db is already a transaction (or
// any non-*sql.DB executor) fn runs on it directly so the caller's
// transaction scope is kept.
func inTx(ctx context.Context, db store.DBTX, fn func(q store.DBTX) error) error {
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fn(db)
	}
	return store.RunInTransaction(ctx, sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return fn(tx)
	})
}

// jsonList encodes a list column. Nil encodes as an empty JSON array.
func jsonList[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}

// decodeList decodes a JSONB list column into dst, treating NULL as empty.
func decodeList[T any](column string, raw []byte, dst *[]T) error {
	if len(raw) == 0 {
		*dst = []T{}
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", column, err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func boolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}

// nullIfEmpty maps the zero value of a string enum to NULL.
func nullIfEmpty[S ~string](s S) sql.NullString {
	return sql.NullString{String: string(s), Valid: s != ""}
}
