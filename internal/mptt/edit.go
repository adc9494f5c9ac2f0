package mptt

import "nestquiz/local-app/internal/model"

// DeleteSubtree returns a copy of the snapshot without id and every node inside its
// interval. The result keeps stale interval values; re-encode it before publishing.
// An unknown id returns an unchanged copy.
func DeleteSubtree(nodes []model.FlatNode, id string) []model.FlatNode {
	target, ok := Find(nodes, id)
	if !ok {
		return append([]model.FlatNode(nil), nodes...)
	}
	out := make([]model.FlatNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Left >= target.Left && n.Right <= target.Right {
			continue
		}
		out = append(out, n)
	}
	return out
}

// UpdateFlat returns a copy of the snapshot with the non-structural fields of id
// overridden. The identifier itself cannot be changed this way, and the answer
// option rules of ConformOptions hold on the result.
func UpdateFlat(nodes []model.FlatNode, id string, opts ...NodeOption) ([]model.FlatNode, bool) {
	out := make([]model.FlatNode, len(nodes))
	copy(out, nodes)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		data := cloneData(out[i].NodeData)
		for _, opt := range opts {
			opt(&data)
		}
		data.ID = id
		out[i].NodeData = ConformOptions(data)
		return out, true
	}
	return out, false
}
