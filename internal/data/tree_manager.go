// Package data provides data management functionality for the nestquiz application.
// This file contains the TreeManager, which owns the published snapshot and
// applies every edit by re-encoding the whole forest.
package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"nestquiz/local-app/internal/event"
	"nestquiz/local-app/internal/forest"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
	"nestquiz/local-app/internal/storage"
)

var (
	ErrNodeNotFound    = forest.ErrNodeNotFound
	ErrInvalidMove     = forest.ErrInvalidMove
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrDuplicateID     = errors.New("duplicate node id")
	ErrAmbiguousID     = errors.New("ambiguous node id")
	ErrNoStorage       = errors.New("storage not configured")
)

// Snapshot is an immutable published state of the document. Readers must not
// modify Nodes.
type Snapshot struct {
	Document string
	Revision uint64
	Nodes    []model.FlatNode
}

// TreeManager holds the current snapshot of one document. Readers load the
// snapshot without locking; writers are serialized and publish a new snapshot
// built from a full re-encode.
type TreeManager struct {
	snapshot     atomic.Pointer[Snapshot]
	savedRev     atomic.Uint64
	mu           sync.Mutex
	history      *HistoryManager
	store        storage.SnapshotStore
	stored       *model.SnapshotInfo
	eventManager *event.EventManager
	cfg          model.EditorConfig
	logger       *log.Logger
}

// NewTreeManager creates a TreeManager with an empty document. The store may be
// nil, in which case Save, Load, List and StoredSubtree fail with ErrNoStorage.
func NewTreeManager(store storage.SnapshotStore, eventManager *event.EventManager, cfg model.EditorConfig, logger *log.Logger) (*TreeManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	if eventManager == nil {
		logger.Error(context.Background(), "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}

	tm := &TreeManager{
		history:      NewHistoryManager(cfg.HistoryLimit),
		store:        store,
		eventManager: eventManager,
		cfg:          cfg,
		logger:       logger,
	}
	initial := &Snapshot{Document: cfg.Document, Nodes: []model.FlatNode{}}
	tm.snapshot.Store(initial)
	tm.history.HistoryReset(HistoryEntry{Label: "new", Nodes: initial.Nodes})

	logger.Info(context.Background(), "TreeManager created successfully", log.Fields{"document": cfg.Document})
	return tm, nil
}

// Snapshot returns the currently published snapshot.
func (tm *TreeManager) Snapshot() *Snapshot {
	return tm.snapshot.Load()
}

// Nodes returns the flat nodes of the current snapshot.
func (tm *TreeManager) Nodes() []model.FlatNode {
	return tm.Snapshot().Nodes
}

// Dirty reports whether the current snapshot differs from the last saved or loaded one.
func (tm *TreeManager) Dirty() bool {
	return tm.Snapshot().Revision != tm.savedRev.Load()
}

// Forest returns the hierarchical form of the current snapshot.
func (tm *TreeManager) Forest() []model.Node {
	return mptt.Decode(tm.Nodes())
}

// Document returns the name the current snapshot is saved under.
func (tm *TreeManager) Document() string {
	return tm.Snapshot().Document
}

// NodeAddRoot appends a new root node and returns it as encoded.
func (tm *TreeManager) NodeAddRoot(ctx context.Context, opts ...mptt.NodeOption) (model.FlatNode, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Adding root node", nil)
	cur := tm.Snapshot()
	node := mptt.NewNode(nil, opts...)
	if _, exists := mptt.Find(cur.Nodes, node.ID); exists {
		return model.FlatNode{}, fmt.Errorf("%w: %s", ErrDuplicateID, node.ID)
	}

	f := forest.AddRoot(mptt.Decode(cur.Nodes), mptt.ToNode(node))
	return tm.commitNode(ctx, "add "+node.ID, f, node.ID)
}

// NodeAddChild appends a new node to the children of parentID and returns it as encoded.
func (tm *TreeManager) NodeAddChild(ctx context.Context, parentID string, opts ...mptt.NodeOption) (model.FlatNode, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Adding child node", log.Fields{"parentID": parentID})
	cur := tm.Snapshot()
	node := mptt.NewNode(&parentID, opts...)
	if _, exists := mptt.Find(cur.Nodes, node.ID); exists {
		return model.FlatNode{}, fmt.Errorf("%w: %s", ErrDuplicateID, node.ID)
	}

	f, ok := forest.AddChild(mptt.Decode(cur.Nodes), parentID, mptt.ToNode(node))
	if !ok {
		tm.logger.Warn(ctx, "Parent node not found", log.Fields{"parentID": parentID})
		return model.FlatNode{}, fmt.Errorf("%w: %s", ErrNodeNotFound, parentID)
	}
	return tm.commitNode(ctx, "add "+node.ID, f, node.ID)
}

// NodeUpdate changes the content fields of a node. The structure is untouched, so
// the snapshot is updated in place of a re-encode.
func (tm *TreeManager) NodeUpdate(ctx context.Context, id string, opts ...mptt.NodeOption) (model.FlatNode, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Updating node", log.Fields{"nodeID": id})
	nodes, ok := mptt.UpdateFlat(tm.Snapshot().Nodes, id, opts...)
	if !ok {
		return model.FlatNode{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	tm.publish(ctx, "update "+id, nodes)
	updated, _ := mptt.Find(nodes, id)
	return updated, nil
}

// NodeDelete removes a node with its whole subtree and returns how many nodes were removed.
func (tm *TreeManager) NodeDelete(ctx context.Context, id string) (int, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Deleting node", log.Fields{"nodeID": id})
	cur := tm.Snapshot()
	if _, ok := mptt.Find(cur.Nodes, id); !ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	kept := mptt.DeleteSubtree(cur.Nodes, id)
	nodes := mptt.Encode(mptt.Decode(kept)).Nodes
	tm.publish(ctx, "delete "+id, nodes)

	removed := len(cur.Nodes) - len(kept)
	tm.logger.Info(ctx, "Node deleted successfully", log.Fields{"nodeID": id, "removed": removed})
	return removed, nil
}

// NodeMoveUp swaps a node with its previous sibling.
func (tm *TreeManager) NodeMoveUp(ctx context.Context, id string) error {
	return tm.shift(ctx, id, "up", forest.MoveUp)
}

// NodeMoveDown swaps a node with its next sibling.
func (tm *TreeManager) NodeMoveDown(ctx context.Context, id string) error {
	return tm.shift(ctx, id, "down", forest.MoveDown)
}

func (tm *TreeManager) shift(ctx context.Context, id, direction string, move func([]model.Node, string) ([]model.Node, bool)) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Moving node", log.Fields{"nodeID": id, "direction": direction})
	cur := tm.Snapshot()
	if _, ok := mptt.Find(cur.Nodes, id); !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	f, ok := move(mptt.Decode(cur.Nodes), id)
	if !ok {
		return fmt.Errorf("%w: %s cannot move %s", ErrInvalidMove, id, direction)
	}
	tm.publish(ctx, "move "+direction+" "+id, mptt.Encode(f).Nodes)
	return nil
}

// NodeMove reparents a node with its subtree. A nil newParentID makes it a root.
func (tm *TreeManager) NodeMove(ctx context.Context, id string, newParentID *string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	fields := log.Fields{"nodeID": id}
	if newParentID != nil {
		fields["newParentID"] = *newParentID
	}
	tm.logger.Info(ctx, "Reparenting node", fields)

	f, err := forest.Move(mptt.Decode(tm.Snapshot().Nodes), id, newParentID)
	if err != nil {
		tm.logger.Warn(ctx, "Node move rejected", log.Fields{"nodeID": id, "error": err})
		return err
	}
	tm.publish(ctx, "move "+id, mptt.Encode(f).Nodes)
	return nil
}

// Replace publishes nodes as the new document content, for instance after an import.
// Nodes that fail interval validation are rejected.
func (tm *TreeManager) Replace(ctx context.Context, label string, nodes []model.FlatNode) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if result := mptt.Validate(nodes); !result.Valid {
		tm.logger.Warn(ctx, "Rejected invalid snapshot", log.Fields{"errors": result.Errors})
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(result.Errors, "; "))
	}
	tm.publish(ctx, label, nodes)
	return nil
}

// Undo restores the snapshot published before the last edit and returns the label of
// the undone edit.
func (tm *TreeManager) Undo(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	entry, undone, err := tm.history.Undo()
	if err != nil {
		return "", err
	}
	tm.setSnapshot(ctx, tm.Document(), entry.Nodes)
	tm.logger.Info(ctx, "Undo performed", log.Fields{"undone": undone})
	return undone, nil
}

// Redo re-applies the last undone edit and returns its label.
func (tm *TreeManager) Redo(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	entry, err := tm.history.Redo()
	if err != nil {
		return "", err
	}
	tm.setSnapshot(ctx, tm.Document(), entry.Nodes)
	tm.logger.Info(ctx, "Redo performed", log.Fields{"redone": entry.Label})
	return entry.Label, nil
}

// HistoryDepth returns how many edits can currently be undone and redone.
func (tm *TreeManager) HistoryDepth() (undo, redo int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.history.UndoDepth(), tm.history.RedoDepth()
}

// Validate checks the interval well-formedness of the current snapshot.
func (tm *TreeManager) Validate() model.ValidationResult {
	return mptt.Validate(tm.Nodes())
}

// Stats returns aggregate figures of the current snapshot.
func (tm *TreeManager) Stats() model.TreeStats {
	return mptt.Stats(tm.Nodes())
}

// ResolveID returns the identifier of the node whose id equals ref or, failing that,
// is the only one starting with ref.
func (tm *TreeManager) ResolveID(ref string) (string, error) {
	nodes := tm.Nodes()
	if _, ok := mptt.Find(nodes, ref); ok {
		return ref, nil
	}
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNodeNotFound)
	}

	var matches []string
	for _, n := range nodes {
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d nodes", ErrAmbiguousID, ref, len(matches))
	}
}

// commitNode encodes f, publishes it and returns the encoded node id.
func (tm *TreeManager) commitNode(ctx context.Context, label string, f []model.Node, id string) (model.FlatNode, error) {
	nodes := mptt.Encode(f).Nodes
	tm.publish(ctx, label, nodes)
	n, _ := mptt.Find(nodes, id)
	tm.logger.Info(ctx, "Node added successfully", log.Fields{"nodeID": id, "left": n.Left, "right": n.Right})
	return n, nil
}

// publish makes nodes the current snapshot and records it in the history.
// The caller holds tm.mu.
func (tm *TreeManager) publish(ctx context.Context, label string, nodes []model.FlatNode) {
	tm.history.HistoryAdd(HistoryEntry{Label: label, Nodes: nodes})
	tm.setSnapshot(ctx, tm.Document(), nodes)
}

// setSnapshot swaps in a new snapshot without touching the history. The caller holds tm.mu.
func (tm *TreeManager) setSnapshot(ctx context.Context, document string, nodes []model.FlatNode) {
	next := &Snapshot{Document: document, Revision: tm.Snapshot().Revision + 1, Nodes: nodes}
	tm.snapshot.Store(next)

	tm.logger.Debug(ctx, "Snapshot published", log.Fields{"revision": next.Revision, "nodes": len(nodes)})
	tm.eventManager.Publish(event.Event{Type: event.SnapshotPublished, Data: next})
	tm.eventManager.Publish(event.Event{Type: event.HistoryChanged, Data: tm.history.UndoDepth()})
}
