//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel without cleanup:
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The schema is created once per process from the embedded goose
// migrations of internal/platform/postgres. Tests are skipped when
// DATABASE_URL is not set.
package testdb
