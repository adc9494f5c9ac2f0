// Package data provides data management functionality for the nestquiz application.
// This file contains the implementation of the history system for undo and redo operations.
package data

import (
	"nestquiz/local-app/internal/model"
)

// HistoryEntry is a published snapshot together with the edit that produced it.
type HistoryEntry struct {
	Label string
	Nodes []model.FlatNode
}

// HistoryManager keeps a bounded list of published snapshots for undo and redo.
// Snapshots are never modified after publication, so entries share them freely.
type HistoryManager struct {
	history      []HistoryEntry
	historyIndex int
	limit        int
}

// NewHistoryManager creates a new HistoryManager keeping at most limit undo steps.
// A non-positive limit keeps only the current state.
func NewHistoryManager(limit int) *HistoryManager {
	if limit < 0 {
		limit = 0
	}
	return &HistoryManager{
		history:      []HistoryEntry{},
		historyIndex: -1,
		limit:        limit,
	}
}

// HistoryAdd records a new current state and discards anything that could be redone.
func (hm *HistoryManager) HistoryAdd(entry HistoryEntry) {
	if hm.historyIndex == len(hm.history)-1 {
		hm.history = append(hm.history, entry)
	} else {
		hm.history = append(hm.history[:hm.historyIndex+1], entry)
	}
	hm.historyIndex++

	if excess := len(hm.history) - (hm.limit + 1); excess > 0 {
		hm.history = append([]HistoryEntry(nil), hm.history[excess:]...)
		hm.historyIndex -= excess
	}
}

// HistoryReset clears the history and makes entry the only known state.
func (hm *HistoryManager) HistoryReset(entry HistoryEntry) {
	hm.history = []HistoryEntry{entry}
	hm.historyIndex = 0
}

// Undo steps back one state and returns it together with the label of the edit
// being undone.
func (hm *HistoryManager) Undo() (HistoryEntry, string, error) {
	if hm.historyIndex <= 0 {
		return HistoryEntry{}, "", ErrNothingToUndo
	}
	undone := hm.history[hm.historyIndex].Label
	hm.historyIndex--
	return hm.history[hm.historyIndex], undone, nil
}

// Redo steps forward one state and returns it.
func (hm *HistoryManager) Redo() (HistoryEntry, error) {
	if hm.historyIndex >= len(hm.history)-1 {
		return HistoryEntry{}, ErrNothingToRedo
	}
	hm.historyIndex++
	return hm.history[hm.historyIndex], nil
}

// UndoDepth returns how many steps can be undone.
func (hm *HistoryManager) UndoDepth() int {
	if hm.historyIndex < 0 {
		return 0
	}
	return hm.historyIndex
}

// RedoDepth returns how many steps can be redone.
func (hm *HistoryManager) RedoDepth() int {
	return len(hm.history) - 1 - hm.historyIndex
}
