// Package forest provides immutable editing helpers for hierarchical node forests.
// Every helper takes the full forest and returns a new one; the input is never
// modified and the result shares no memory with it.
package forest

import (
	"errors"
	"fmt"
	"slices"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrInvalidMove  = errors.New("invalid move")
)

// Clone returns a deep copy of the forest.
func Clone(forest []model.Node) []model.Node {
	if forest == nil {
		return nil
	}
	out := make([]model.Node, len(forest))
	for i, n := range forest {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n model.Node) model.Node {
	if n.Options != nil {
		n.Options = slices.Clone(n.Options)
	}
	n.Children = Clone(n.Children)
	return n
}

// Find returns a copy of the node with the given identifier, including its subtree.
func Find(forest []model.Node, id string) (model.Node, bool) {
	list, i := locate(&forest, id)
	if list == nil {
		return model.Node{}, false
	}
	return cloneNode((*list)[i]), true
}

// AddRoot appends node as the last root.
func AddRoot(forest []model.Node, node model.Node) []model.Node {
	return append(Clone(forest), cloneNode(node))
}

// AddChild appends node as the last child of parentID.
func AddChild(forest []model.Node, parentID string, node model.Node) ([]model.Node, bool) {
	out := Clone(forest)
	list, i := locate(&out, parentID)
	if list == nil {
		return out, false
	}
	parent := &(*list)[i]
	parent.Children = append(parent.Children, cloneNode(node))
	return out, true
}

// Update overrides fields of one node. Its identifier and children are kept, and
// the answer option rules of mptt.ConformOptions hold on the result.
func Update(forest []model.Node, id string, opts ...mptt.NodeOption) ([]model.Node, bool) {
	out := Clone(forest)
	list, i := locate(&out, id)
	if list == nil {
		return out, false
	}
	n := &(*list)[i]
	for _, opt := range opts {
		opt(&n.NodeData)
	}
	n.ID = id
	n.NodeData = mptt.ConformOptions(n.NodeData)
	return out, true
}

// MoveUp swaps a node with its previous sibling.
func MoveUp(forest []model.Node, id string) ([]model.Node, bool) {
	return swap(forest, id, -1)
}

// MoveDown swaps a node with its next sibling.
func MoveDown(forest []model.Node, id string) ([]model.Node, bool) {
	return swap(forest, id, 1)
}

func swap(forest []model.Node, id string, delta int) ([]model.Node, bool) {
	out := Clone(forest)
	list, i := locate(&out, id)
	if list == nil {
		return out, false
	}
	j := i + delta
	if j < 0 || j >= len(*list) {
		return out, false
	}
	(*list)[i], (*list)[j] = (*list)[j], (*list)[i]
	return out, true
}

// Move reparents a node, subtree included, to the end of newParentID's children.
// A nil newParentID makes it the last root. A node cannot move into itself or
// into its own subtree.
func Move(forest []model.Node, id string, newParentID *string) ([]model.Node, error) {
	out := Clone(forest)
	list, i := locate(&out, id)
	if list == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node := (*list)[i]

	if newParentID != nil {
		target := *newParentID
		if target == id {
			return nil, fmt.Errorf("%w: node %s cannot be its own parent", ErrInvalidMove, id)
		}
		if inner, _ := locate(&node.Children, target); inner != nil {
			return nil, fmt.Errorf("%w: %s is inside the subtree of %s", ErrInvalidMove, target, id)
		}
		if parentList, _ := locate(&out, target); parentList == nil {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, target)
		}
	}

	*list = slices.Delete(*list, i, i+1)
	if newParentID == nil {
		return append(out, node), nil
	}
	parentList, pi := locate(&out, *newParentID)
	parent := &(*parentList)[pi]
	parent.Children = append(parent.Children, node)
	return out, nil
}

// locate returns the sibling list holding id and its index there.
func locate(nodes *[]model.Node, id string) (*[]model.Node, int) {
	for i := range *nodes {
		if (*nodes)[i].ID == id {
			return nodes, i
		}
		if list, j := locate(&(*nodes)[i].Children, id); list != nil {
			return list, j
		}
	}
	return nil, -1
}
