// Package mptt implements the nested-set (modified preorder tree traversal) encoding
// of quiz node forests: encoding a hierarchical forest into interval-annotated flat
// nodes, decoding it back, and answering structural queries over a flat snapshot.
//
// Every function in this package is pure. Inputs are never modified and results never
// share mutable state (option slices, parent references) with their inputs, so a
// snapshot can be published to readers while a writer builds the next one.
package mptt

import (
	"github.com/google/uuid"

	"nestquiz/local-app/internal/model"
)

// NodeOption overrides a field of a node created by NewNode.
type NodeOption func(*model.NodeData)

func WithID(id string) NodeOption {
	return func(d *model.NodeData) { d.ID = id }
}

func WithTitle(title string) NodeOption {
	return func(d *model.NodeData) { d.Title = title }
}

// WithType sets the node type. Changing the type resets the answer options to the
// defaults of the new type, so WithOptions must come after it.
func WithType(t model.NodeType) NodeOption {
	return func(d *model.NodeData) {
		if d.Type != t {
			d.Options = DefaultOptions(t)
		}
		d.Type = t
	}
}

func WithDescription(description string) NodeOption {
	return func(d *model.NodeData) { d.Description = description }
}

func WithImage(image string) NodeOption {
	return func(d *model.NodeData) { d.Image = image }
}

func WithCode(code string) NodeOption {
	return func(d *model.NodeData) { d.Code = code }
}

func WithOrder(order int) NodeOption {
	return func(d *model.NodeData) { d.Order = order }
}

func WithRandomize(randomize bool) NodeOption {
	return func(d *model.NodeData) { d.Randomize = randomize }
}

// WithOptions replaces the answer options. The slice is copied.
func WithOptions(options ...model.Option) NodeOption {
	return func(d *model.NodeData) { d.Options = cloneOptions(options) }
}

// NewNode creates a node with a fresh identifier and default field values.
// The interval fields are placeholders until the forest is encoded again.
// Options are applied last and win over the defaults; the answer option rules
// of ConformOptions hold on the result.
func NewNode(parentID *string, opts ...NodeOption) model.FlatNode {
	n := model.FlatNode{
		NodeData: model.NodeData{
			ID:      uuid.NewString(),
			Type:    model.NodeSection,
			Order:   1,
			Options: []model.Option{},
		},
		ParentID: copyID(parentID),
	}
	for _, opt := range opts {
		opt(&n.NodeData)
	}
	n.NodeData = ConformOptions(n.NodeData)
	return n
}

// NewOption creates an answer option with a fresh identifier.
func NewOption(text string, correct bool) model.Option {
	return model.Option{ID: uuid.NewString(), Text: text, Correct: correct}
}

// ToNode returns the hierarchical form of a flat node, without children.
func ToNode(n model.FlatNode) model.Node {
	return model.Node{NodeData: cloneData(n.NodeData)}
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneOptions(options []model.Option) []model.Option {
	if options == nil {
		return nil
	}
	out := make([]model.Option, len(options))
	copy(out, options)
	return out
}

func cloneData(d model.NodeData) model.NodeData {
	d.Options = cloneOptions(d.Options)
	return d
}
