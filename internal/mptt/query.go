package mptt

import "nestquiz/local-app/internal/model"

// Find returns the node with the given identifier.
func Find(nodes []model.FlatNode, id string) (model.FlatNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return model.FlatNode{}, false
}

// Children returns the direct children of id ordered by left value.
func Children(nodes []model.FlatNode, id string) []model.FlatNode {
	return filterSorted(nodes, func(n model.FlatNode) bool {
		return n.ParentID != nil && *n.ParentID == id
	})
}

// Descendants returns every node whose interval lies inside the interval of id.
func Descendants(nodes []model.FlatNode, id string) []model.FlatNode {
	node, ok := Find(nodes, id)
	if !ok {
		return []model.FlatNode{}
	}
	return filterSorted(nodes, func(n model.FlatNode) bool {
		return n.Left > node.Left && n.Right < node.Right
	})
}

// Ancestors returns every node whose interval encloses the interval of id,
// root first and direct parent last.
func Ancestors(nodes []model.FlatNode, id string) []model.FlatNode {
	node, ok := Find(nodes, id)
	if !ok {
		return []model.FlatNode{}
	}
	return filterSorted(nodes, func(n model.FlatNode) bool {
		return n.Left < node.Left && n.Right > node.Right
	})
}

// Siblings returns the nodes sharing the parent of id, excluding id itself.
// Roots are siblings of each other.
func Siblings(nodes []model.FlatNode, id string) []model.FlatNode {
	node, ok := Find(nodes, id)
	if !ok {
		return []model.FlatNode{}
	}
	return filterSorted(nodes, func(n model.FlatNode) bool {
		return n.ID != id && sameParent(n.ParentID, node.ParentID)
	})
}

// Root returns the outermost ancestor of id, or the node itself when it is a root.
func Root(nodes []model.FlatNode, id string) (model.FlatNode, bool) {
	if ancestors := Ancestors(nodes, id); len(ancestors) > 0 {
		return ancestors[0], true
	}
	return Find(nodes, id)
}

// IsDescendant reports whether childID lies strictly inside parentID.
func IsDescendant(nodes []model.FlatNode, parentID, childID string) bool {
	parent, ok := Find(nodes, parentID)
	if !ok {
		return false
	}
	child, ok := Find(nodes, childID)
	if !ok {
		return false
	}
	return parent.Contains(child)
}

// Path returns the breadcrumb from the root down to id, inclusive.
func Path(nodes []model.FlatNode, id string) []model.FlatNode {
	node, ok := Find(nodes, id)
	if !ok {
		return []model.FlatNode{}
	}
	return append(Ancestors(nodes, id), node)
}

// filterSorted never returns nil, so an empty result encodes as [] in JSON.
func filterSorted(nodes []model.FlatNode, keep func(model.FlatNode) bool) []model.FlatNode {
	out := make([]model.FlatNode, 0)
	for _, n := range nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sortByLeft(out)
	return out
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
