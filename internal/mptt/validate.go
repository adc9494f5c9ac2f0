package mptt

import (
	"fmt"

	"nestquiz/local-app/internal/model"
)

// Validate checks the interval well-formedness of a flat snapshot and reports every
// problem found as a message. It compares all pairs of nodes, which is quadratic in
// the snapshot size.
//
// Two intervals are accepted when they are disjoint or when one properly contains the
// other. Intervals that only touch (a.Right == b.Left) are disjoint. Anything else is
// reported as an overlap, including intervals sharing a left or a right endpoint
// (a.Left == b.Left or a.Right == b.Right).
//
// Parent references that do not resolve inside the snapshot are not errors, since a
// partially filtered snapshot is still decodable.
func Validate(nodes []model.FlatNode) model.ValidationResult {
	errs := make([]string, 0)

	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if first, dup := seen[n.ID]; dup {
			errs = append(errs, fmt.Sprintf("node %s: duplicate identifier at positions %d and %d", n.ID, first, i))
		} else {
			seen[n.ID] = i
		}
		if n.Left >= n.Right {
			errs = append(errs, fmt.Sprintf("node %s: left (%d) must be less than right (%d)", n.ID, n.Left, n.Right))
		}
	}

	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		if a.Left >= a.Right {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			if b.Left >= b.Right {
				continue
			}
			if overlaps(a, b) {
				errs = append(errs, fmt.Sprintf("nodes %s and %s: invalid overlap between [%d,%d] and [%d,%d]",
					a.ID, b.ID, a.Left, a.Right, b.Left, b.Right))
			}
		}
	}

	errs = append(errs, checkParents(nodes, seen)...)

	return model.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func overlaps(a, b model.FlatNode) bool {
	disjoint := a.Right <= b.Left || b.Right <= a.Left
	return !disjoint && !a.Contains(b) && !b.Contains(a)
}

// checkParents verifies containment, level and child counts along parent references.
func checkParents(nodes []model.FlatNode, index map[string]int) []string {
	var errs []string
	counts := make(map[string]int, len(nodes))

	for _, c := range nodes {
		if c.ParentID == nil {
			continue
		}
		pi, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		p := nodes[pi]
		counts[p.ID]++
		if !p.Contains(c) {
			errs = append(errs, fmt.Sprintf("node %s: interval [%d,%d] is not inside parent %s [%d,%d]",
				c.ID, c.Left, c.Right, p.ID, p.Left, p.Right))
		}
		if c.Level != p.Level+1 {
			errs = append(errs, fmt.Sprintf("node %s: level %d does not follow parent %s level %d",
				c.ID, c.Level, p.ID, p.Level))
		}
	}

	for i, n := range nodes {
		if index[n.ID] != i {
			continue
		}
		if n.ChildCount != counts[n.ID] {
			errs = append(errs, fmt.Sprintf("node %s: children_count %d but %d children reference it",
				n.ID, n.ChildCount, counts[n.ID]))
		}
		if n.HasChildren != (n.ChildCount > 0) {
			errs = append(errs, fmt.Sprintf("node %s: has_children %t disagrees with children_count %d",
				n.ID, n.HasChildren, n.ChildCount))
		}
	}
	return errs
}
