package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"nestquiz/local-app/internal/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteDatabase implements the Database interface for SQLite
type SQLiteDatabase struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// Open opens a connection to the SQLite database
func (s *SQLiteDatabase) Open(dataSourceName string) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Opening SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	// Ensure the directory for the database file exists
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		s.logger.Error(ctx, "Failed to create database directory", log.Fields{"error": err, "directory": dbDir})
		return fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		s.logger.Error(ctx, "Failed to open SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		s.logger.Error(ctx, "Failed to set SQLite synchronous pragma", log.Fields{"error": err})
		return fmt.Errorf("failed to set SQLite synchronous pragma: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		s.logger.Error(ctx, "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %w", err)
	}

	s.db = db
	s.path = dataSourceName
	s.logger.Info(ctx, "SQLite database opened successfully", nil)
	return nil
}

// InitSchema applies the embedded migrations that have not run yet.
func (s *SQLiteDatabase) InitSchema() error {
	ctx := context.Background()
	s.logger.Info(ctx, "Initializing database schema", nil)

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+s.path+"?_foreign_keys=on")
	if err != nil {
		s.logger.Error(ctx, "Failed to prepare migrations", log.Fields{"error": err})
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			s.logger.Warn(ctx, "Failed to close migrator", log.Fields{"sourceError": srcErr, "dbError": dbErr})
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Error(ctx, "Failed to apply migrations", log.Fields{"error": err})
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	s.logger.Info(ctx, "Database schema initialized successfully", log.Fields{"version": version, "dirty": dirty})
	return nil
}

// DB returns the underlying connection pool.
func (s *SQLiteDatabase) DB() *sql.DB {
	return s.db
}

// Close closes the connection to the SQLite database
func (s *SQLiteDatabase) Close() error {
	s.logger.Info(context.Background(), "Closing SQLite database", nil)
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error(context.Background(), "Failed to close SQLite database", log.Fields{"error": err})
			return fmt.Errorf("failed to close SQLite database: %w", err)
		}
	}
	return nil
}
