// Package data provides data management functionality for the nestquiz application.
// This file contains the answer option edits of choice questions.
package data

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nestquiz/local-app/internal/forest"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

var (
	ErrOptionNotFound = errors.New("option not found")
	ErrNoOptions      = errors.New("node type has no answer options")
)

// Subtree returns the hierarchical form of a node together with its descendants.
func (tm *TreeManager) Subtree(id string) (model.Node, bool) {
	return forest.Find(tm.Forest(), id)
}

// OptionAdd appends an answer option to a choice question. A correct option added
// to a single-choice question becomes its only correct option.
func (tm *TreeManager) OptionAdd(ctx context.Context, id, text string, correct bool) (model.Option, error) {
	option := mptt.NewOption(text, false)
	err := tm.editOptions(ctx, "option add "+id, id, func(n model.Node) ([]model.Option, error) {
		options := append(append([]model.Option{}, n.Options...), option)
		if correct {
			options = mptt.MarkCorrect(n.Type, options, option.ID)
		}
		return options, nil
	})
	if err != nil {
		return model.Option{}, err
	}
	option.Correct = correct
	return option, nil
}

// OptionCorrect marks an option of a question correct. On a single-choice question
// the other options become incorrect; on a multiple-choice question the flag is toggled.
// The option is given by 1-based position, identifier or unique identifier prefix.
func (tm *TreeManager) OptionCorrect(ctx context.Context, id, optionRef string) (model.Option, error) {
	var marked model.Option
	err := tm.editOptions(ctx, "option correct "+id, id, func(n model.Node) ([]model.Option, error) {
		optionID, err := resolveOption(n.Options, optionRef)
		if err != nil {
			return nil, err
		}
		options := mptt.MarkCorrect(n.Type, n.Options, optionID)
		for _, o := range options {
			if o.ID == optionID {
				marked = o
			}
		}
		return options, nil
	})
	return marked, err
}

// OptionDelete removes an option from a question.
func (tm *TreeManager) OptionDelete(ctx context.Context, id, optionRef string) error {
	return tm.editOptions(ctx, "option delete "+id, id, func(n model.Node) ([]model.Option, error) {
		optionID, err := resolveOption(n.Options, optionRef)
		if err != nil {
			return nil, err
		}
		return mptt.RemoveOption(n.Options, optionID), nil
	})
}

func (tm *TreeManager) editOptions(ctx context.Context, label, id string, edit func(model.Node) ([]model.Option, error)) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Info(ctx, "Editing answer options", log.Fields{"nodeID": id, "edit": label})
	f := mptt.Decode(tm.Snapshot().Nodes)
	n, ok := forest.Find(f, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if !n.Type.HasOptions() {
		return fmt.Errorf("%w: %s is %s", ErrNoOptions, id, n.Type)
	}

	options, err := edit(n)
	if err != nil {
		tm.logger.Warn(ctx, "Option edit rejected", log.Fields{"nodeID": id, "error": err})
		return err
	}
	f, _ = forest.Update(f, id, mptt.WithOptions(options...))
	tm.publish(ctx, label, mptt.Encode(f).Nodes)
	return nil
}

// resolveOption finds an option by 1-based position, identifier or unique identifier prefix.
func resolveOption(options []model.Option, ref string) (string, error) {
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > len(options) {
			return "", fmt.Errorf("%w: position %d of %d", ErrOptionNotFound, pos, len(options))
		}
		return options[pos-1].ID, nil
	}

	var matches []string
	for _, o := range options {
		if o.ID == ref {
			return o.ID, nil
		}
		if ref != "" && strings.HasPrefix(o.ID, ref) {
			matches = append(matches, o.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrOptionNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d options", ErrAmbiguousID, ref, len(matches))
	}
}
