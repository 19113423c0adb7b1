package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("function failed")

	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		fn        TxFn
		wantErr   error
		errSubstr string
	}{
		{
			name: "commit_on_success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sql.Tx) error { return nil },
		},
		{
			name: "rollback_on_error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr: fnErr,
		},
		{
			name: "begin_fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			errSubstr: "failed to begin transaction",
		},
		{
			name: "commit_fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return nil },
			errSubstr: "failed to commit transaction",
		},
		{
			name: "rollback_fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback().WillReturnError(errors.New("rollback failed"))
			},
			fn:        func(ctx context.Context, tx *sql.Tx) error { return fnErr },
			wantErr:   fnErr,
			errSubstr: "error rolling back transaction",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			tt.setup(mock)

			err := RunInTransaction(context.Background(), db, tt.fn)

			switch {
			case tt.wantErr == nil && tt.errSubstr == "":
				assert.NoError(t, err)
			default:
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errSubstr != "" {
					assert.Contains(t, err.Error(), tt.errSubstr)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransaction_PanicRollsBack(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTransactor(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewSQLTransactor(nil) })

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var tr Transactor = NewSQLTransactor(db)
	err := tr.RunInTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE users SET xp = xp + 1")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
