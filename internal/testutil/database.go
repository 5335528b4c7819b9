package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"seatkeeper/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/seatkeeper_test?parseTime=true&loc=UTC"

// SetupTestDB opens the MySQL test database named by TEST_MYSQL_DSN
// (default: root@localhost:3306/seatkeeper_test) and skips the test when it
// is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the tables and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM Reservations"); err != nil {
		t.Logf("failed to clean table Reservations: %v", err)
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect and empties it.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}

	if _, err := db.Exec("DELETE FROM Reservations"); err != nil {
		t.Logf("failed to clean table Reservations: %v", err)
	}
}
