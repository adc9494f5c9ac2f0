package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
)

// SnapshotStore defines the interface for snapshot-related storage operations.
// Every save creates a new version; loads return the latest version of a name.
type SnapshotStore interface {
	SnapshotSave(ctx context.Context, name string, nodes []model.FlatNode) (model.SnapshotInfo, error)
	SnapshotLoad(ctx context.Context, name string) (model.SnapshotInfo, []model.FlatNode, error)
	SnapshotList(ctx context.Context) ([]model.SnapshotInfo, error)
	SnapshotDelete(ctx context.Context, name string) error
	SubtreeLoad(ctx context.Context, snapshotID int64, nodeID string) ([]model.FlatNode, error)
}

// SnapshotStorage implements the SnapshotStore interface.
type SnapshotStorage struct {
	storage *Storage
	logger  *log.Logger
}

// NewSnapshotStorage creates a new SnapshotStorage instance.
func NewSnapshotStorage(storage *Storage) *SnapshotStorage {
	return &SnapshotStorage{
		storage: storage,
		logger:  storage.logger,
	}
}

const nodeColumns = `node_id, parent_id, title, node_type, description, image, code,
	display_order, randomize, options, lft, rgt, level, has_children, child_count`

// SnapshotSave stores the nodes as a new version of the named snapshot.
func (s *SnapshotStorage) SnapshotSave(ctx context.Context, name string, nodes []model.FlatNode) (model.SnapshotInfo, error) {
	s.logger.Info(ctx, "Saving snapshot", log.Fields{"name": name, "nodes": len(nodes)})

	checksum, err := Checksum(nodes)
	if err != nil {
		return model.SnapshotInfo{}, err
	}

	db := s.storage.GetDatabase().DB()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "Failed to begin transaction", log.Fields{"error": err})
		return model.SnapshotInfo{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (name, checksum, node_count, created) VALUES (?, ?, ?, ?)",
		name, checksum, len(nodes), now,
	)
	if err != nil {
		s.logger.Error(ctx, "Failed to add snapshot", log.Fields{"error": err, "name": name})
		return model.SnapshotInfo{}, fmt.Errorf("failed to add snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.SnapshotInfo{}, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot_nodes (snapshot_id, "+nodeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return model.SnapshotInfo{}, fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		options, err := marshalOptions(n.Options)
		if err != nil {
			return model.SnapshotInfo{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
		var parent sql.NullString
		if n.ParentID != nil {
			parent = sql.NullString{String: *n.ParentID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, n.ID, parent, n.Title, string(n.Type), n.Description, n.Image, n.Code,
			n.Order, n.Randomize, options, n.Left, n.Right, n.Level, n.HasChildren, n.ChildCount); err != nil {
			s.logger.Error(ctx, "Failed to add snapshot node", log.Fields{"error": err, "snapshotID": id, "nodeID": n.ID})
			return model.SnapshotInfo{}, fmt.Errorf("failed to add node %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "Failed to commit transaction", log.Fields{"error": err})
		return model.SnapshotInfo{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	info := model.SnapshotInfo{ID: id, Name: name, Checksum: checksum, NodeCount: len(nodes), Created: now}
	s.logger.Info(ctx, "Snapshot saved successfully", log.Fields{"snapshotID": id, "name": name})
	return info, nil
}

// SnapshotLoad returns the latest version of the named snapshot ordered by left value.
func (s *SnapshotStorage) SnapshotLoad(ctx context.Context, name string) (model.SnapshotInfo, []model.FlatNode, error) {
	s.logger.Info(ctx, "Loading snapshot", log.Fields{"name": name})
	db := s.storage.GetDatabase().DB()

	var info model.SnapshotInfo
	err := db.QueryRowContext(ctx,
		"SELECT id, name, checksum, node_count, created FROM snapshots WHERE name = ? ORDER BY id DESC LIMIT 1", name,
	).Scan(&info.ID, &info.Name, &info.Checksum, &info.NodeCount, &info.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SnapshotInfo{}, nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to read snapshot", log.Fields{"error": err, "name": name})
		return model.SnapshotInfo{}, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT "+nodeColumns+" FROM snapshot_nodes WHERE snapshot_id = ? ORDER BY lft", info.ID)
	if err != nil {
		return model.SnapshotInfo{}, nil, fmt.Errorf("failed to query snapshot nodes: %w", err)
	}
	nodes, err := scanNodes(rows)
	if err != nil {
		return model.SnapshotInfo{}, nil, err
	}

	if err := VerifyChecksum(nodes, info.Checksum); err != nil {
		s.logger.Error(ctx, "Snapshot failed integrity check", log.Fields{"error": err, "snapshotID": info.ID})
		return model.SnapshotInfo{}, nil, err
	}

	s.logger.Debug(ctx, "Snapshot loaded", log.Fields{"snapshotID": info.ID, "nodes": len(nodes)})
	return info, nodes, nil
}

// SnapshotList returns the latest version of every stored snapshot name.
func (s *SnapshotStorage) SnapshotList(ctx context.Context) ([]model.SnapshotInfo, error) {
	db := s.storage.GetDatabase().DB()
	rows, err := db.QueryContext(ctx, `
		SELECT s.id, s.name, s.checksum, s.node_count, s.created
		FROM snapshots s
		WHERE s.id = (SELECT MAX(id) FROM snapshots WHERE name = s.name)
		ORDER BY s.name`)
	if err != nil {
		s.logger.Error(ctx, "Failed to list snapshots", log.Fields{"error": err})
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []model.SnapshotInfo
	for rows.Next() {
		var info model.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Checksum, &info.NodeCount, &info.Created); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// SnapshotDelete removes every version of the named snapshot.
func (s *SnapshotStorage) SnapshotDelete(ctx context.Context, name string) error {
	s.logger.Info(ctx, "Deleting snapshot", log.Fields{"name": name})
	db := s.storage.GetDatabase().DB()

	result, err := db.ExecContext(ctx, "DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		s.logger.Error(ctx, "Failed to delete snapshot", log.Fields{"error": err, "name": name})
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	return nil
}

// SubtreeLoad returns a stored node and all of its descendants with a single range
// query on the nested-set columns.
func (s *SnapshotStorage) SubtreeLoad(ctx context.Context, snapshotID int64, nodeID string) ([]model.FlatNode, error) {
	db := s.storage.GetDatabase().DB()
	rows, err := db.QueryContext(ctx, `
		SELECT n.node_id, n.parent_id, n.title, n.node_type, n.description, n.image, n.code,
			n.display_order, n.randomize, n.options, n.lft, n.rgt, n.level, n.has_children, n.child_count
		FROM snapshot_nodes n
		JOIN snapshot_nodes p ON p.snapshot_id = n.snapshot_id
		WHERE p.snapshot_id = ? AND p.node_id = ? AND n.lft BETWEEN p.lft AND p.rgt
		ORDER BY n.lft`, snapshotID, nodeID)
	if err != nil {
		s.logger.Error(ctx, "Failed to load subtree", log.Fields{"error": err, "snapshotID": snapshotID, "nodeID": nodeID})
		return nil, fmt.Errorf("failed to load subtree: %w", err)
	}
	return scanNodes(rows)
}

func scanNodes(rows *sql.Rows) ([]model.FlatNode, error) {
	defer rows.Close()

	nodes := make([]model.FlatNode, 0)
	for rows.Next() {
		var (
			n        model.FlatNode
			parent   sql.NullString
			nodeType string
			options  string
		)
		if err := rows.Scan(&n.ID, &parent, &n.Title, &nodeType, &n.Description, &n.Image, &n.Code,
			&n.Order, &n.Randomize, &options, &n.Left, &n.Right, &n.Level, &n.HasChildren, &n.ChildCount); err != nil {
			return nil, fmt.Errorf("failed to scan node row: %w", err)
		}
		n.Type = model.NodeType(nodeType)
		if parent.Valid {
			p := parent.String
			n.ParentID = &p
		}
		if err := json.Unmarshal([]byte(options), &n.Options); err != nil {
			return nil, fmt.Errorf("node %s: failed to decode options: %w", n.ID, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate node rows: %w", err)
	}
	return nodes, nil
}

func marshalOptions(options []model.Option) (string, error) {
	if options == nil {
		options = []model.Option{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	return string(data), nil
}
