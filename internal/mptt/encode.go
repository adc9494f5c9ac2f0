package mptt

import "nestquiz/local-app/internal/model"

// EncodeResult is the output of an encode pass.
type EncodeResult struct {
	Nodes    []model.FlatNode
	NextLeft int
}

// Encode converts a forest into flat nodes numbered from 1 at level 0.
func Encode(forest []model.Node) EncodeResult {
	return EncodeFrom(forest, 1, 0, nil)
}

// EncodeFrom converts a forest into flat nodes in preorder. Each node takes the
// counter as its left value on entry and as its right value after its children,
// so sibling order becomes interval order and a leaf gets right = left + 1.
// Top-level nodes get parentID (nil for roots) and startLevel.
func EncodeFrom(forest []model.Node, startLeft, startLevel int, parentID *string) EncodeResult {
	e := &encoder{
		counter: startLeft,
		out:     make([]model.FlatNode, 0, Count(forest)),
	}
	e.walk(forest, startLevel, parentID)
	return EncodeResult{Nodes: e.out, NextLeft: e.counter}
}

type encoder struct {
	counter int
	out     []model.FlatNode
}

func (e *encoder) walk(nodes []model.Node, level int, parentID *string) {
	for _, n := range nodes {
		idx := len(e.out)
		e.out = append(e.out, model.FlatNode{
			NodeData:    cloneData(n.NodeData),
			Left:        e.counter,
			Level:       level,
			ParentID:    copyID(parentID),
			HasChildren: len(n.Children) > 0,
			ChildCount:  len(n.Children),
		})
		e.counter++

		if len(n.Children) > 0 {
			id := n.ID
			e.walk(n.Children, level+1, &id)
		}

		e.out[idx].Right = e.counter
		e.counter++
	}
}

// Count returns the total number of nodes in a forest.
func Count(forest []model.Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}
