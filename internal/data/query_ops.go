// Package data provides data management functionality for the nestquiz application.
// This file contains the read-only queries over the current snapshot.
package data

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

func (tm *TreeManager) Find(id string) (model.FlatNode, bool) {
	return mptt.Find(tm.Nodes(), id)
}

func (tm *TreeManager) Children(id string) []model.FlatNode {
	return mptt.Children(tm.Nodes(), id)
}

func (tm *TreeManager) Descendants(id string) []model.FlatNode {
	return mptt.Descendants(tm.Nodes(), id)
}

func (tm *TreeManager) Ancestors(id string) []model.FlatNode {
	return mptt.Ancestors(tm.Nodes(), id)
}

func (tm *TreeManager) Siblings(id string) []model.FlatNode {
	return mptt.Siblings(tm.Nodes(), id)
}

func (tm *TreeManager) Root(id string) (model.FlatNode, bool) {
	return mptt.Root(tm.Nodes(), id)
}

func (tm *TreeManager) IsDescendant(parentID, childID string) bool {
	return mptt.IsDescendant(tm.Nodes(), parentID, childID)
}

func (tm *TreeManager) Path(id string) []model.FlatNode {
	return mptt.Path(tm.Nodes(), id)
}

// FindResult is a node matched by NodeFind with its edit distance to the query.
type FindResult struct {
	Node     model.FlatNode
	Distance int
}

// NodeFind searches titles and code snippets, case-insensitively. Substring matches
// rank first with distance 0; other nodes match when their title or code is within
// a small edit distance of the query. Results are ordered by distance, then by
// document position. A non-positive limit returns every match.
func (tm *TreeManager) NodeFind(query string, limit int) []FindResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	maxDistance := max(2, len([]rune(query))/3)

	var results []FindResult
	for _, n := range tm.Nodes() {
		best := -1
		for _, field := range []string{n.Title, n.Code} {
			if field == "" {
				continue
			}
			d := matchDistance(query, strings.ToLower(field))
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= maxDistance {
			results = append(results, FindResult{Node: n, Distance: best})
		}
	}

	slices.SortStableFunc(results, func(a, b FindResult) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Node.Left, b.Node.Left)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchDistance is 0 for a substring match, otherwise the smallest edit distance
// between the query and the field or any of its words.
func matchDistance(query, field string) int {
	if strings.Contains(field, query) {
		return 0
	}
	best := levenshtein.ComputeDistance(query, field)
	for _, word := range strings.Fields(field) {
		if d := levenshtein.ComputeDistance(query, word); d < best {
			best = d
		}
	}
	return best
}
