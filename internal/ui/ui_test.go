package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

func section(id string, children ...model.Node) model.Node {
	return model.Node{
		NodeData: model.NodeData{ID: id, Title: "T" + id, Type: model.NodeSection},
		Children: children,
	}
}

func TestUI_TreeDrawsBranches(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	forest := []model.Node{section("a", section("b", section("d")), section("c"))}

	u.Tree(forest, mptt.Encode(forest).Nodes, true)

	want := strings.Join([]string{
		"Ta [section] a (1,8)",
		"├── Tb [section] b (2,5)",
		"│   └── Td [section] d (3,4)",
		"└── Tc [section] c (6,7)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestUI_TreeEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewUI(&buf, false).Tree(nil, nil, false)
	assert.Equal(t, "(empty)\n", buf.String())
}

func TestUI_FlatTableAligned(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	forest := []model.Node{section("root", section("child"))}

	u.FlatTable(mptt.Encode(forest).Nodes)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID     LEFT  RIGHT"))
	assert.True(t, strings.HasPrefix(lines[2], "child  2     3      1      root"))
}

func TestUI_Messages(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	u.Success("done")
	u.Warning("careful")
	u.Error("broken")
	u.Message("%d items", 3)

	assert.Equal(t, "done\n? careful\n! broken\n3 items\n", buf.String())
	assert.Equal(t, "quiz* > ", u.PromptString("quiz", true))
}

func TestUI_Validation(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	u.Validation(model.ValidationResult{Valid: false, Errors: []string{"x overlaps y"}})
	assert.Contains(t, buf.String(), "1 problems")
	assert.Contains(t, buf.String(), "  - x overlaps y")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", Short("abc"))
	assert.Equal(t, "12345678", Short("123456789abc"))
}
