package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
)

// Storage represents the main storage implementation.
type Storage struct {
	db     Database
	logger *log.Logger
	SnapshotStore
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(cfg *model.Config, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(cfg.Database.Type)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", cfg.Database.Type, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	dataSourceName := filepath.Join(cfg.Database.Dir, cfg.Database.File)
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	storage.SnapshotStore = NewSnapshotStorage(storage)

	logger.Info(context.Background(), "Storage initialized", log.Fields{"path": dataSourceName})
	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetDatabase returns the database instance
func (s *Storage) GetDatabase() Database {
	return s.db
}
