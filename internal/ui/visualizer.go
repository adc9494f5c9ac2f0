package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nestquiz/local-app/internal/model"
)

// ShortID is the number of identifier characters shown in trees and tables.
const ShortID = 8

// Short returns the leading characters of an identifier.
func Short(id string) string {
	if len(id) <= ShortID {
		return id
	}
	return id[:ShortID]
}

// Tree prints a forest with box-drawing branches. With intervals set, every flat
// node's left and right values are shown next to it.
func (u *UI) Tree(forest []model.Node, flat []model.FlatNode, intervals bool) {
	if len(forest) == 0 {
		u.Info("(empty)")
		return
	}
	index := make(map[string]model.FlatNode, len(flat))
	for _, n := range flat {
		index[n.ID] = n
	}
	for _, root := range forest {
		u.Println(u.nodeLine(root.NodeData, index, intervals))
		u.treeChildren(root.Children, "", index, intervals)
	}
}

func (u *UI) treeChildren(children []model.Node, prefix string, index map[string]model.FlatNode, intervals bool) {
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		u.Println(u.styles.branch.Render(prefix+branch) + u.nodeLine(child.NodeData, index, intervals))
		u.treeChildren(child.Children, prefix+indent, index, intervals)
	}
}

func (u *UI) nodeLine(d model.NodeData, index map[string]model.FlatNode, intervals bool) string {
	line := u.styles.title.Render(d.Title) + " " +
		u.styles.nodeType.Render("["+string(d.Type)+"]") + " " +
		u.styles.id.Render(Short(d.ID))
	if intervals {
		if n, ok := index[d.ID]; ok {
			line += " " + u.styles.interval.Render(fmt.Sprintf("(%d,%d)", n.Left, n.Right))
		}
	}
	return line
}

// FlatTable prints flat nodes as an aligned table in the given order.
func (u *UI) FlatTable(nodes []model.FlatNode) {
	if len(nodes) == 0 {
		u.Info("(empty)")
		return
	}
	headers := []string{"ID", "LEFT", "RIGHT", "LEVEL", "PARENT", "CHILDREN", "TYPE", "TITLE"}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			Short(n.ID),
			strconv.Itoa(n.Left),
			strconv.Itoa(n.Right),
			strconv.Itoa(n.Level),
			Short(n.Parent()),
			strconv.Itoa(n.ChildCount),
			string(n.Type),
			n.Title,
		})
	}
	u.table(headers, rows)
}

// Stats prints aggregate tree figures.
func (u *UI) Stats(stats model.TreeStats) {
	u.table([]string{"METRIC", "VALUE"}, [][]string{
		{"total nodes", strconv.Itoa(stats.TotalNodes)},
		{"root nodes", strconv.Itoa(stats.RootNodes)},
		{"leaf nodes", strconv.Itoa(stats.LeafNodes)},
		{"max depth", strconv.Itoa(stats.MaxDepth)},
		{"avg depth", strconv.FormatFloat(stats.AvgDepth, 'f', 2, 64)},
	})
}

// Validation prints the outcome of a validation run.
func (u *UI) Validation(result model.ValidationResult) {
	if result.Valid {
		u.Success("Tree structure is valid.")
		return
	}
	u.Error(fmt.Sprintf("Tree structure is invalid (%d problems):", len(result.Errors)))
	for _, e := range result.Errors {
		u.Println("  - " + e)
	}
}

func (u *UI) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				parts[i] = style.Render(cell)
				continue
			}
			parts[i] = style.Render(cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
		return strings.Join(parts, "  ")
	}

	u.Println(render(headers, u.styles.header))
	plain := lipgloss.NewStyle()
	for _, row := range rows {
		u.Println(render(row, plain))
	}
}
