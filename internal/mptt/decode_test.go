package mptt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquiz/local-app/internal/model"
)

// TestDecode_RoundTrip checks decode(encode(f)) reproduces the forest.
func TestDecode_RoundTrip(t *testing.T) {
	forests := map[string][]model.Node{
		"single":   {node("A")},
		"sample":   sampleForest(),
		"chain":    {chain(6)},
		"siblings": {node("A"), node("B"), node("C")},
	}
	for name, forest := range forests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, forest, Decode(Encode(forest).Nodes))
		})
	}
}

// TestDecode_AnyOrder decodes a shuffled flat list.
func TestDecode_AnyOrder(t *testing.T) {
	forest := sampleForest()
	flat := Encode(forest).Nodes
	r := rand.New(rand.NewSource(7))
	r.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })

	assert.Equal(t, forest, Decode(flat))
}

// TestDecode_OrphanPromotedToRoot keeps nodes whose parent is missing from the set.
func TestDecode_OrphanPromotedToRoot(t *testing.T) {
	flat := Encode(sampleForest()).Nodes
	var filtered []model.FlatNode
	for _, n := range flat {
		if n.ID != "B" {
			filtered = append(filtered, n)
		}
	}

	forest := Decode(filtered)
	var roots []string
	for _, n := range forest {
		roots = append(roots, n.ID)
	}
	// D and E lost their parent; they sort among the roots by left value
	assert.Equal(t, []string{"A", "D", "E", "F"}, roots)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "C", forest[0].Children[0].ID)
}

// TestDecode_Empty returns an empty forest.
func TestDecode_Empty(t *testing.T) {
	assert.Empty(t, Decode(nil))
}

// TestDecode_DropsFlatFields checks the hierarchical nodes carry only node data.
func TestDecode_DropsFlatFields(t *testing.T) {
	flat := Encode([]model.Node{node("A", node("B"))}).Nodes
	forest := Decode(flat)
	require.Len(t, forest, 1)
	assert.Equal(t, flat[0].NodeData, forest[0].NodeData)
	assert.Equal(t, flat[1].NodeData, forest[0].Children[0].NodeData)
}
