package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryManager_UndoRedo(t *testing.T) {
	hm := NewHistoryManager(10)
	hm.HistoryReset(HistoryEntry{Label: "new"})
	hm.HistoryAdd(HistoryEntry{Label: "one"})
	hm.HistoryAdd(HistoryEntry{Label: "two"})

	entry, undone, err := hm.Undo()
	require.NoError(t, err)
	assert.Equal(t, "two", undone)
	assert.Equal(t, "one", entry.Label)

	entry, err = hm.Redo()
	require.NoError(t, err)
	assert.Equal(t, "two", entry.Label)

	_, err = hm.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestHistoryManager_AddDiscardsRedo(t *testing.T) {
	hm := NewHistoryManager(10)
	hm.HistoryReset(HistoryEntry{Label: "new"})
	hm.HistoryAdd(HistoryEntry{Label: "one"})
	_, _, err := hm.Undo()
	require.NoError(t, err)
	assert.Equal(t, 1, hm.RedoDepth())

	hm.HistoryAdd(HistoryEntry{Label: "other"})
	assert.Equal(t, 0, hm.RedoDepth())
	assert.Equal(t, 1, hm.UndoDepth())
}

func TestHistoryManager_Limit(t *testing.T) {
	hm := NewHistoryManager(2)
	hm.HistoryReset(HistoryEntry{Label: "new"})
	for _, label := range []string{"a", "b", "c", "d"} {
		hm.HistoryAdd(HistoryEntry{Label: label})
	}
	assert.Equal(t, 2, hm.UndoDepth())

	_, undone, err := hm.Undo()
	require.NoError(t, err)
	assert.Equal(t, "d", undone)
	entry, undone, err := hm.Undo()
	require.NoError(t, err)
	assert.Equal(t, "c", undone)
	assert.Equal(t, "b", entry.Label)

	_, _, err = hm.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestHistoryManager_ZeroLimitKeepsCurrent(t *testing.T) {
	hm := NewHistoryManager(0)
	hm.HistoryReset(HistoryEntry{Label: "new"})
	hm.HistoryAdd(HistoryEntry{Label: "a"})

	assert.Equal(t, 0, hm.UndoDepth())
	_, _, err := hm.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}
