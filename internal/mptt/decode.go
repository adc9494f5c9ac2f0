package mptt

import (
	"cmp"
	"slices"

	"nestquiz/local-app/internal/model"
)

// Decode rebuilds the forest from flat nodes given in any order. A node whose
// parent reference does not resolve within the set becomes a root, so a partially
// filtered snapshot still decodes. Children and roots are ordered by left value.
func Decode(flat []model.FlatNode) []model.Node {
	known := make(map[string]struct{}, len(flat))
	for _, n := range flat {
		known[n.ID] = struct{}{}
	}

	children := make(map[string][]model.FlatNode)
	roots := make([]model.FlatNode, 0)
	for _, n := range flat {
		if n.ParentID != nil {
			if _, ok := known[*n.ParentID]; ok {
				children[*n.ParentID] = append(children[*n.ParentID], n)
				continue
			}
		}
		roots = append(roots, n)
	}

	for id := range children {
		sortByLeft(children[id])
	}
	sortByLeft(roots)

	d := &decoder{children: children, visited: make(map[string]bool, len(flat))}
	return d.build(roots)
}

type decoder struct {
	children map[string][]model.FlatNode
	visited  map[string]bool
}

func (d *decoder) build(flat []model.FlatNode) []model.Node {
	out := make([]model.Node, 0, len(flat))
	for _, n := range flat {
		// duplicate identifiers break the grouping; never expand one twice
		if d.visited[n.ID] {
			continue
		}
		d.visited[n.ID] = true

		node := ToNode(n)
		if kids := d.children[n.ID]; len(kids) > 0 {
			node.Children = d.build(kids)
		}
		out = append(out, node)
	}
	return out
}

func sortByLeft(nodes []model.FlatNode) {
	slices.SortStableFunc(nodes, func(a, b model.FlatNode) int {
		return cmp.Compare(a.Left, b.Left)
	})
}
