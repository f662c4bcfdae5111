package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo), registered as "sqlite3"
	_ "modernc.org/sqlite"          // SQLite driver (pure Go, no CGO), registered as "sqlite"
)

const (
	// DriverPureGo is the default driver; it needs no C toolchain.
	DriverPureGo = "sqlite"
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
)

// Open opens a SQLite database connection and initializes the schema.
// The database file will be created if it doesn't exist. An empty driver
// selects DriverPureGo.
func Open(ctx context.Context, driver, path string) (*sql.DB, error) {
	switch driver {
	case "":
		driver = DriverPureGo
	case DriverPureGo, DriverCGO:
	default:
		return nil, fmt.Errorf("unknown sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Initialize schema
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
