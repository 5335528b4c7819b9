package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

const createReservationsTable = `
CREATE TABLE IF NOT EXISTS Reservations (
	id CHAR(36) NOT NULL PRIMARY KEY,
	date DATE NOT NULL,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_date (date)
)`

// EnsureSchema creates the tables the reservation repository needs.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createReservationsTable); err != nil {
		return fmt.Errorf("creating table Reservations: %w", err)
	}
	return nil
}
