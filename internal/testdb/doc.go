//go:build integration

// Package testdb provides utilities for database tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel without cleaning up after
// themselves:
//
//	func TestDeckStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        decks := postgres.NewPostgresDeckStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor SCRY_TEST_DB_URL is set.
package testdb
