// Package data provides data management functionality for the nestquiz application.
// This file contains operations that move snapshots between the TreeManager and
// storage or files.
package data

import (
	"context"
	"fmt"
	"strings"

	"nestquiz/local-app/internal/event"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/storage"
)

// Save persists the current snapshot under name, or under the current document
// name when name is empty. The snapshot is validated first when configured.
func (tm *TreeManager) Save(ctx context.Context, name string) (model.SnapshotInfo, error) {
	if tm.store == nil {
		return model.SnapshotInfo{}, ErrNoStorage
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	cur := tm.Snapshot()
	if name == "" {
		name = cur.Document
	}
	tm.logger.Info(ctx, "Saving document", log.Fields{"document": name, "revision": cur.Revision})

	if tm.cfg.ValidateOnSave {
		if result := tm.Validate(); !result.Valid {
			tm.logger.Warn(ctx, "Refusing to save invalid snapshot", log.Fields{"errors": result.Errors})
			return model.SnapshotInfo{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(result.Errors, "; "))
		}
	}

	info, err := tm.store.SnapshotSave(ctx, name, cur.Nodes)
	if err != nil {
		tm.logger.Error(ctx, "Failed to save document", log.Fields{"error": err, "document": name})
		return model.SnapshotInfo{}, fmt.Errorf("failed to save document: %w", err)
	}
	tm.stored = &info
	tm.savedRev.Store(cur.Revision)

	if name != cur.Document {
		tm.snapshot.Store(&Snapshot{Document: name, Revision: cur.Revision, Nodes: cur.Nodes})
	}

	tm.eventManager.Publish(event.Event{Type: event.SnapshotSaved, Data: info})
	tm.logger.Info(ctx, "Document saved successfully", log.Fields{"document": name, "snapshotID": info.ID})
	return info, nil
}

// Load replaces the current snapshot with the latest stored version of name and
// starts a fresh history.
func (tm *TreeManager) Load(ctx context.Context, name string) (model.SnapshotInfo, error) {
	if tm.store == nil {
		return model.SnapshotInfo{}, ErrNoStorage
	}
	tm.logger.Info(ctx, "Loading document", log.Fields{"document": name})

	info, nodes, err := tm.store.SnapshotLoad(ctx, name)
	if err != nil {
		tm.logger.Error(ctx, "Failed to load document", log.Fields{"error": err, "document": name})
		return model.SnapshotInfo{}, fmt.Errorf("failed to load document: %w", err)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.stored = &info
	tm.history.HistoryReset(HistoryEntry{Label: "load " + name, Nodes: nodes})
	tm.setSnapshot(ctx, name, nodes)
	tm.savedRev.Store(tm.Snapshot().Revision)

	tm.eventManager.Publish(event.Event{Type: event.SnapshotLoaded, Data: info})
	tm.logger.Info(ctx, "Document loaded successfully", log.Fields{"document": name, "nodes": len(nodes)})
	return info, nil
}

// List returns the stored documents with their latest version.
func (tm *TreeManager) List(ctx context.Context) ([]model.SnapshotInfo, error) {
	if tm.store == nil {
		return nil, ErrNoStorage
	}
	infos, err := tm.store.SnapshotList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return infos, nil
}

// Drop deletes every stored version of name. The current snapshot is kept.
func (tm *TreeManager) Drop(ctx context.Context, name string) error {
	if tm.store == nil {
		return ErrNoStorage
	}
	tm.logger.Info(ctx, "Dropping stored document", log.Fields{"document": name})
	if err := tm.store.SnapshotDelete(ctx, name); err != nil {
		return fmt.Errorf("failed to drop document: %w", err)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.stored != nil && tm.stored.Name == name {
		tm.stored = nil
	}
	return nil
}

// StoredSubtree reads a node and its descendants from the last saved or loaded
// version of the document, straight from storage.
func (tm *TreeManager) StoredSubtree(ctx context.Context, nodeID string) ([]model.FlatNode, error) {
	if tm.store == nil {
		return nil, ErrNoStorage
	}
	tm.mu.Lock()
	stored := tm.stored
	tm.mu.Unlock()
	if stored == nil {
		return nil, fmt.Errorf("%w: document %s has not been saved", storage.ErrSnapshotNotFound, tm.Document())
	}

	nodes, err := tm.store.SubtreeLoad(ctx, stored.ID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored subtree: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	return nodes, nil
}

// Import reads a file and publishes its content as an undoable edit.
func (tm *TreeManager) Import(ctx context.Context, filename string) (storage.ImportResult, error) {
	tm.logger.Info(ctx, "Importing file", log.Fields{"filename": filename})

	format, err := storage.FormatFromFilename(filename)
	if err != nil {
		return storage.ImportResult{}, err
	}
	result, err := storage.FileImport(filename, format)
	if err != nil {
		tm.logger.Error(ctx, "Failed to import file", log.Fields{"error": err, "filename": filename})
		return storage.ImportResult{}, fmt.Errorf("failed to import %s: %w", filename, err)
	}
	if err := tm.Replace(ctx, "import "+filename, result.Nodes); err != nil {
		return storage.ImportResult{}, err
	}

	tm.eventManager.Publish(event.Event{Type: event.SnapshotImported, Data: result})
	tm.logger.Info(ctx, "File imported successfully", log.Fields{"filename": filename, "source": string(result.Source), "nodes": len(result.Nodes)})
	return result, nil
}

// Export writes the current snapshot to a file; the format follows the extension.
func (tm *TreeManager) Export(ctx context.Context, filename string) error {
	tm.logger.Info(ctx, "Exporting file", log.Fields{"filename": filename})

	format, err := storage.FormatFromFilename(filename)
	if err != nil {
		return err
	}
	if err := storage.FileExport(tm.Nodes(), filename, format); err != nil {
		tm.logger.Error(ctx, "Failed to export file", log.Fields{"error": err, "filename": filename})
		return fmt.Errorf("failed to export %s: %w", filename, err)
	}
	return nil
}
