// Package storage provides functionality for persisting and retrieving nestquiz data.
// This file handles the general SQL database interfaces.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"nestquiz/local-app/internal/log"
)

var (
	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrUnrecognizedImport = errors.New("unrecognized import format")
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	DB() *sql.DB
	InitSchema() error
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
