package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nestquiz/local-app/internal/cli"
	"nestquiz/local-app/internal/config"
	"nestquiz/local-app/internal/data"
	"nestquiz/local-app/internal/event"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/storage"
)

// bootstrap initializes and runs the interactive shell.
// It loads configuration, initializes components (logger, storage, event manager,
// tree manager, CLI), opens the configured document when it exists, runs the CLI
// and handles graceful shutdown.
func bootstrap(configPath string) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if configPath != "" {
		if err := config.ConfigLoadFrom(configPath); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	} else if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger, err := log.NewLogger(cfg, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}()

	ctx := context.Background()
	logger.Info(ctx, "Application started", log.Fields{"config": config.ConfigPath()})

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}()

	eventManager := event.NewEventManager(logger)
	defer eventManager.Wait()
	eventManager.Subscribe(event.SnapshotSaved, func(e event.Event) {
		logger.Debug(ctx, "Snapshot saved event", log.Fields{"data": e.Data})
	})

	tree, err := data.NewTreeManager(store, eventManager, cfg.Editor, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize tree manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize tree manager: %w", err)
	}
	if _, err := tree.Load(ctx, cfg.Editor.Document); err != nil {
		logger.Info(ctx, "Starting with an empty document", log.Fields{"document": cfg.Editor.Document, "reason": err})
	}

	cliInstance, err := cli.NewCLI(tree, cfg.CLI, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}

	go func() {
		if _, ok := <-sigChan; ok {
			logger.Info(ctx, "Received interrupt signal. Shutting down...", nil)
			fmt.Println("\nReceived interrupt signal. Shutting down...")
			cliInstance.Stop()
		}
	}()

	if err := cliInstance.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}

	if tree.Dirty() {
		fmt.Println("Note: the document had unsaved edits.")
	}
	logger.Info(ctx, "Application shutting down", nil)
	fmt.Println("Goodbye!")
	return nil
}
