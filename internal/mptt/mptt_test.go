package mptt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nestquiz/local-app/internal/model"
)

func node(id string, children ...model.Node) model.Node {
	return model.Node{
		NodeData: model.NodeData{ID: id, Title: "title " + id, Type: model.NodeSection, Order: 1},
		Children: children,
	}
}

func ids(nodes []model.FlatNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func byID(t *testing.T, nodes []model.FlatNode, id string) model.FlatNode {
	t.Helper()
	n, ok := Find(nodes, id)
	require.True(t, ok, "node %s not found", id)
	return n
}

// sampleForest is two trees: A[B[D, E], C] and F[G].
func sampleForest() []model.Node {
	return []model.Node{
		node("A", node("B", node("D"), node("E")), node("C")),
		node("F", node("G")),
	}
}

// chain builds a straight line of n nodes named c0..c{n-1}.
func chain(n int) model.Node {
	leaf := node("c" + itoa(n-1))
	for i := n - 2; i >= 0; i-- {
		leaf = node("c"+itoa(i), leaf)
	}
	return leaf
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
