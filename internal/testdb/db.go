//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/platform/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

var migrateOnce sync.Once
var migrateErr error

// GetTestDatabaseURL returns DATABASE_URL, falling back to SCRY_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("SCRY_TEST_DB_URL")
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens the test database, migrates it once per test binary
// and closes it when the test ends. The test is skipped when no database is
// configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, GetTestDatabaseURL(), 10, 5)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "Failed to run migrations")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
