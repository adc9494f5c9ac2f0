package data

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquiz/local-app/internal/event"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
	"nestquiz/local-app/internal/storage"
)

func editorConfig() model.EditorConfig {
	return model.EditorConfig{Document: "default", HistoryLimit: 50, ValidateOnSave: true}
}

func newTestManager(t *testing.T) *TreeManager {
	t.Helper()
	tm, err := NewTreeManager(nil, event.NewEventManager(nil), editorConfig(), log.Nop())
	require.NoError(t, err)
	return tm
}

func newStoredManager(t *testing.T) (*TreeManager, *event.EventManager) {
	t.Helper()
	cfg := &model.Config{Database: model.DatabaseConfig{Type: "sqlite", Dir: t.TempDir(), File: "test.db"}}
	store, err := storage.NewStorage(cfg, log.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	em := event.NewEventManager(nil)
	tm, err := NewTreeManager(store, em, editorConfig(), log.Nop())
	require.NoError(t, err)
	return tm, em
}

// build creates A[B[D], C] and E.
func build(t *testing.T, tm *TreeManager) {
	t.Helper()
	ctx := context.Background()
	for _, step := range []struct{ id, parent string }{
		{"A", ""}, {"B", "A"}, {"D", "B"}, {"C", "A"}, {"E", ""},
	} {
		opts := []mptt.NodeOption{mptt.WithID(step.id), mptt.WithTitle("title " + step.id)}
		var err error
		if step.parent == "" {
			_, err = tm.NodeAddRoot(ctx, opts...)
		} else {
			_, err = tm.NodeAddChild(ctx, step.parent, opts...)
		}
		require.NoError(t, err)
	}
}

func order(nodes []model.FlatNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestNewTreeManager_RequiresDependencies(t *testing.T) {
	_, err := NewTreeManager(nil, nil, editorConfig(), log.Nop())
	assert.Error(t, err)
	_, err = NewTreeManager(nil, event.NewEventManager(nil), editorConfig(), nil)
	assert.Error(t, err)
}

func TestTreeManager_AddEncodesWholeForest(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)

	nodes := tm.Nodes()
	assert.Equal(t, []string{"A", "B", "D", "C", "E"}, order(nodes))
	assert.True(t, tm.Validate().Valid)

	a, _ := tm.Find("A")
	assert.Equal(t, 1, a.Left)
	assert.Equal(t, 8, a.Right)
	assert.Equal(t, 2, a.ChildCount)

	e, _ := tm.Find("E")
	assert.Equal(t, 9, e.Left)
	assert.Equal(t, 10, e.Right)
	assert.Equal(t, 5, tm.Stats().TotalNodes)
}

func TestTreeManager_AddChildErrors(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	ctx := context.Background()

	_, err := tm.NodeAddChild(ctx, "missing", mptt.WithTitle("x"))
	assert.ErrorIs(t, err, ErrNodeNotFound)

	_, err = tm.NodeAddRoot(ctx, mptt.WithID("A"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, tm.Nodes(), 5)
}

func TestTreeManager_UpdateKeepsStructure(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	before, _ := tm.Find("B")

	updated, err := tm.NodeUpdate(context.Background(), "B",
		mptt.WithTitle("renamed"), mptt.WithType(model.NodeSingleChoice),
		mptt.WithOptions(model.Option{ID: "o1", Text: "yes", Correct: true}))
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, before.Left, updated.Left)
	assert.Equal(t, before.Right, updated.Right)
	assert.Len(t, updated.Options, 1)

	_, err = tm.NodeUpdate(context.Background(), "missing", mptt.WithTitle("x"))
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestTreeManager_DeleteRemovesSubtree(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)

	removed, err := tm.NodeDelete(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"A", "C", "E"}, order(tm.Nodes()))
	assert.True(t, tm.Validate().Valid)

	a, _ := tm.Find("A")
	assert.Equal(t, 4, a.Right)
	assert.Equal(t, 1, a.ChildCount)

	_, err = tm.NodeDelete(context.Background(), "B")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestTreeManager_MoveUpDown(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	ctx := context.Background()

	require.NoError(t, tm.NodeMoveUp(ctx, "C"))
	assert.Equal(t, []string{"A", "C", "B", "D", "E"}, order(tm.Nodes()))

	require.NoError(t, tm.NodeMoveDown(ctx, "A"))
	assert.Equal(t, []string{"E", "A", "C", "B", "D"}, order(tm.Nodes()))
	assert.True(t, tm.Validate().Valid)

	assert.ErrorIs(t, tm.NodeMoveUp(ctx, "E"), ErrInvalidMove)
	assert.ErrorIs(t, tm.NodeMoveDown(ctx, "D"), ErrInvalidMove)
	assert.ErrorIs(t, tm.NodeMoveUp(ctx, "missing"), ErrNodeNotFound)
}

func TestTreeManager_Move(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	ctx := context.Background()

	e := "E"
	require.NoError(t, tm.NodeMove(ctx, "B", &e))
	assert.Equal(t, []string{"A", "C", "E", "B", "D"}, order(tm.Nodes()))
	assert.True(t, tm.IsDescendant("E", "D"))

	require.NoError(t, tm.NodeMove(ctx, "D", nil))
	d, _ := tm.Find("D")
	assert.True(t, d.IsRoot())
	assert.Equal(t, 0, d.Level)

	a := "A"
	assert.ErrorIs(t, tm.NodeMove(ctx, "A", &a), ErrInvalidMove)
	c := "C"
	assert.ErrorIs(t, tm.NodeMove(ctx, "A", &c), ErrInvalidMove)
	assert.True(t, tm.Validate().Valid)
}

func TestTreeManager_UndoRedo(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	ctx := context.Background()

	_, err := tm.NodeDelete(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, order(tm.Nodes()))

	label, err := tm.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "delete A", label)
	assert.Equal(t, []string{"A", "B", "D", "C", "E"}, order(tm.Nodes()))

	label, err = tm.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "delete A", label)
	assert.Equal(t, []string{"E"}, order(tm.Nodes()))

	_, err = tm.Redo(ctx)
	assert.ErrorIs(t, err, ErrNothingToRedo)

	for i := 0; i < 6; i++ {
		_, err = tm.Undo(ctx)
		require.NoError(t, err)
	}
	assert.Empty(t, tm.Nodes())
	_, err = tm.Undo(ctx)
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestTreeManager_PublishedSnapshotsAreImmutable(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	before := tm.Snapshot()
	beforeIDs := order(before.Nodes)

	_, err := tm.NodeUpdate(context.Background(), "A", mptt.WithTitle("changed"))
	require.NoError(t, err)
	_, err = tm.NodeDelete(context.Background(), "B")
	require.NoError(t, err)

	assert.Equal(t, beforeIDs, order(before.Nodes))
	a, _ := mptt.Find(before.Nodes, "A")
	assert.Equal(t, "title A", a.Title)
	assert.Greater(t, tm.Snapshot().Revision, before.Revision)
}

func TestTreeManager_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	tm := newTestManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					assert.True(t, mptt.Validate(tm.Nodes()).Valid)
				}
			}
		}()
	}

	root, err := tm.NodeAddRoot(ctx, mptt.WithTitle("root"))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err := tm.NodeAddChild(ctx, root.ID, mptt.WithTitle("child"))
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
	assert.Len(t, tm.Nodes(), 51)
}

func TestTreeManager_ResolveID(t *testing.T) {
	tm := newTestManager(t)
	ctx := context.Background()
	for _, id := range []string{"abc123", "abd456", "xyz"} {
		_, err := tm.NodeAddRoot(ctx, mptt.WithID(id), mptt.WithTitle(id))
		require.NoError(t, err)
	}

	id, err := tm.ResolveID("xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", id)

	id, err = tm.ResolveID("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = tm.ResolveID("ab")
	assert.ErrorIs(t, err, ErrAmbiguousID)
	_, err = tm.ResolveID("q")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestTreeManager_NodeFind(t *testing.T) {
	tm := newTestManager(t)
	ctx := context.Background()
	for _, title := range []string{"Capital cities", "Rivers of Europe", "Capitol building"} {
		_, err := tm.NodeAddRoot(ctx, mptt.WithTitle(title))
		require.NoError(t, err)
	}
	_, err := tm.NodeAddRoot(ctx, mptt.WithTitle("Loops"), mptt.WithCode("for i := range items {}"))
	require.NoError(t, err)

	results := tm.NodeFind("capital", 0)
	require.Len(t, results, 2)
	assert.Equal(t, "Capital cities", results[0].Node.Title)
	assert.Equal(t, 0, results[0].Distance)
	assert.Equal(t, "Capitol building", results[1].Node.Title)
	assert.Equal(t, 1, results[1].Distance)

	results = tm.NodeFind("RANGE", 1)
	require.Len(t, results, 1)
	assert.Equal(t, "Loops", results[0].Node.Title)

	assert.Empty(t, tm.NodeFind("  ", 0))
	assert.Empty(t, tm.NodeFind("zebra", 0))
}

func TestTreeManager_Queries(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)

	assert.Equal(t, []string{"B", "C"}, order(tm.Children("A")))
	assert.Equal(t, []string{"B", "D", "C"}, order(tm.Descendants("A")))
	assert.Equal(t, []string{"A", "B"}, order(tm.Ancestors("D")))
	assert.Equal(t, []string{"A", "B", "D"}, order(tm.Path("D")))
	assert.Equal(t, []string{"E"}, order(tm.Siblings("A")))

	root, ok := tm.Root("D")
	require.True(t, ok)
	assert.Equal(t, "A", root.ID)
	assert.Len(t, tm.Forest(), 2)
}

func TestTreeManager_SaveLoad(t *testing.T) {
	tm, em := newStoredManager(t)
	ctx := context.Background()

	var saved sync.WaitGroup
	saved.Add(1)
	em.Subscribe(event.SnapshotSaved, func(e event.Event) {
		info := e.Data.(model.SnapshotInfo)
		assert.Equal(t, "quiz", info.Name)
		saved.Done()
	})

	build(t, tm)
	info, err := tm.Save(ctx, "quiz")
	require.NoError(t, err)
	saved.Wait()
	assert.Equal(t, 5, info.NodeCount)
	assert.Equal(t, "quiz", tm.Document())
	assert.False(t, tm.Dirty())

	_, err = tm.NodeDelete(ctx, "A")
	require.NoError(t, err)
	assert.True(t, tm.Dirty())

	_, err = tm.Load(ctx, "quiz")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C", "E"}, order(tm.Nodes()))
	assert.False(t, tm.Dirty())
	_, err = tm.Undo(ctx)
	assert.ErrorIs(t, err, ErrNothingToUndo)

	infos, err := tm.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	sub, err := tm.StoredSubtree(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, order(sub))

	_, err = tm.StoredSubtree(ctx, "missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	require.NoError(t, tm.Drop(ctx, "quiz"))
	_, err = tm.Load(ctx, "quiz")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
	_, err = tm.StoredSubtree(ctx, "B")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
}

func TestTreeManager_WithoutStorage(t *testing.T) {
	tm := newTestManager(t)
	ctx := context.Background()

	_, err := tm.Save(ctx, "")
	assert.ErrorIs(t, err, ErrNoStorage)
	_, err = tm.Load(ctx, "x")
	assert.ErrorIs(t, err, ErrNoStorage)
	_, err = tm.List(ctx)
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestTreeManager_ExportImport(t *testing.T) {
	tm := newTestManager(t)
	build(t, tm)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quiz.json")

	require.NoError(t, tm.Export(ctx, path))
	want := tm.Nodes()

	_, err := tm.NodeDelete(ctx, "A")
	require.NoError(t, err)

	result, err := tm.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, storage.SourceEnvelope, result.Source)
	assert.Equal(t, order(want), order(tm.Nodes()))

	label, err := tm.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "import "+path, label)

	assert.ErrorIs(t, tm.Export(ctx, "quiz.csv"), storage.ErrUnsupportedFormat)
}

func TestTreeManager_ReplaceRejectsInvalid(t *testing.T) {
	tm := newTestManager(t)
	bad := []model.FlatNode{
		{NodeData: model.NodeData{ID: "a"}, Left: 1, Right: 3},
		{NodeData: model.NodeData{ID: "b"}, Left: 2, Right: 4},
	}
	err := tm.Replace(context.Background(), "import", bad)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Empty(t, tm.Nodes())
}
