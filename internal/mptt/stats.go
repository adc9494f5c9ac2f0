package mptt

import "nestquiz/local-app/internal/model"

// Stats computes aggregate figures over a flat snapshot. MaxDepth counts levels, so
// a forest of lone roots has depth 1. An empty snapshot yields all zeros.
func Stats(nodes []model.FlatNode) model.TreeStats {
	if len(nodes) == 0 {
		return model.TreeStats{}
	}

	stats := model.TreeStats{TotalNodes: len(nodes)}
	maxLevel, levelSum := 0, 0
	for _, n := range nodes {
		if n.ParentID == nil {
			stats.RootNodes++
		}
		if !n.HasChildren {
			stats.LeafNodes++
		}
		if n.Level > maxLevel {
			maxLevel = n.Level
		}
		levelSum += n.Level
	}
	stats.MaxDepth = maxLevel + 1
	stats.AvgDepth = float64(levelSum) / float64(len(nodes))
	return stats
}
