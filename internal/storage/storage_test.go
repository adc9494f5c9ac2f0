package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	cfg := &model.Config{Database: model.DatabaseConfig{Type: "sqlite", Dir: t.TempDir(), File: "test.db"}}
	s, err := NewStorage(cfg, log.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func quizNode(id string, children ...model.Node) model.Node {
	return model.Node{
		NodeData: model.NodeData{ID: id, Title: "title " + id, Type: model.NodeSection, Order: 1, Options: []model.Option{}},
		Children: children,
	}
}

// sampleSnapshot encodes A[B[D], C] and E[Q], where Q is a choice question.
func sampleSnapshot() []model.FlatNode {
	q := quizNode("Q")
	q.Type = model.NodeSingleChoice
	q.Options = []model.Option{{ID: "o1", Text: "yes", Correct: true}, {ID: "o2", Text: "no"}}

	forest := []model.Node{
		quizNode("A", quizNode("B", quizNode("D")), quizNode("C")),
		quizNode("E", q),
	}
	return mptt.Encode(forest).Nodes
}

func TestNewStorage_RejectsUnknownDriver(t *testing.T) {
	cfg := &model.Config{Database: model.DatabaseConfig{Type: "oracle", Dir: t.TempDir(), File: "x.db"}}
	_, err := NewStorage(cfg, log.Nop())
	assert.Error(t, err)
}

func TestNewStorage_ReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.Config{Database: model.DatabaseConfig{Type: "sqlite", Dir: dir, File: "quiz.db"}}

	first, err := NewStorage(cfg, log.Nop())
	require.NoError(t, err)
	_, err = first.SnapshotSave(context.Background(), "doc", sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStorage(cfg, log.Nop())
	require.NoError(t, err)
	defer second.Close()
	_, nodes, err := second.SnapshotLoad(context.Background(), "doc")
	require.NoError(t, err)
	assert.Len(t, nodes, 6)
	assert.FileExists(t, filepath.Join(dir, "quiz.db"))
}

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	nodes := sampleSnapshot()

	info, err := s.SnapshotSave(ctx, "doc", nodes)
	require.NoError(t, err)
	assert.Equal(t, "doc", info.Name)
	assert.Equal(t, len(nodes), info.NodeCount)

	loaded, got, err := s.SnapshotLoad(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, info.ID, loaded.ID)
	assert.Equal(t, info.Checksum, loaded.Checksum)
	assert.Equal(t, nodes, got)
}

func TestSnapshotStore_LoadReturnsLatestVersion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	nodes := sampleSnapshot()

	_, err := s.SnapshotSave(ctx, "doc", nodes)
	require.NoError(t, err)
	second, err := s.SnapshotSave(ctx, "doc", nodes[:4])
	require.NoError(t, err)

	info, got, err := s.SnapshotLoad(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, second.ID, info.ID)
	assert.Len(t, got, 4)
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	s := newTestStorage(t)
	_, _, err := s.SnapshotLoad(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_ListAndDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	nodes := sampleSnapshot()

	for _, name := range []string{"beta", "alpha", "beta"} {
		_, err := s.SnapshotSave(ctx, name, nodes)
		require.NoError(t, err)
	}

	infos, err := s.SnapshotList(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "beta", infos[1].Name)
	assert.Equal(t, int64(3), infos[1].ID)

	require.NoError(t, s.SnapshotDelete(ctx, "beta"))
	infos, err = s.SnapshotList(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	var orphaned int
	require.NoError(t, s.GetDatabase().DB().QueryRow(
		"SELECT COUNT(*) FROM snapshot_nodes WHERE snapshot_id IN (2, 3)").Scan(&orphaned))
	assert.Zero(t, orphaned)

	assert.ErrorIs(t, s.SnapshotDelete(ctx, "beta"), ErrSnapshotNotFound)
}

func TestSnapshotStore_SubtreeLoad(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	info, err := s.SnapshotSave(ctx, "doc", sampleSnapshot())
	require.NoError(t, err)

	sub, err := s.SubtreeLoad(ctx, info.ID, "A")
	require.NoError(t, err)
	got := make([]string, 0, len(sub))
	for _, n := range sub {
		got = append(got, n.ID)
	}
	assert.Equal(t, []string{"A", "B", "D", "C"}, got)

	leaf, err := s.SubtreeLoad(ctx, info.ID, "D")
	require.NoError(t, err)
	require.Len(t, leaf, 1)

	none, err := s.SubtreeLoad(ctx, info.ID, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSnapshotStore_DetectsTampering(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	info, err := s.SnapshotSave(ctx, "doc", sampleSnapshot())
	require.NoError(t, err)

	_, err = s.GetDatabase().DB().Exec(
		"UPDATE snapshot_nodes SET rgt = rgt + 1 WHERE snapshot_id = ? AND node_id = 'E'", info.ID)
	require.NoError(t, err)

	_, _, err = s.SnapshotLoad(ctx, "doc")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestChecksum_IndependentOfOrderAndNilOptions(t *testing.T) {
	nodes := sampleSnapshot()
	want, err := Checksum(nodes)
	require.NoError(t, err)

	reversed := make([]model.FlatNode, len(nodes))
	for i, n := range nodes {
		n.Options = nil
		if n.ID == "Q" {
			n.Options = nodes[i].Options
		}
		reversed[len(nodes)-1-i] = n
	}
	got, err := Checksum(reversed)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	reversed[0].Title = "changed"
	changed, err := Checksum(reversed)
	require.NoError(t, err)
	assert.NotEqual(t, want, changed)
}
