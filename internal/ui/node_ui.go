package ui

import (
	"fmt"
	"strconv"
	"strings"

	"nestquiz/local-app/internal/model"
)

// NodeInfo prints every field of a single node.
func (u *UI) NodeInfo(n model.FlatNode) {
	field := func(label, value string) {
		u.Println(u.styles.label.Render(fmt.Sprintf("%-12s", label)) + value)
	}
	field("ID", u.styles.id.Render(n.ID))
	field("Title", u.styles.title.Render(n.Title))
	field("Type", u.styles.nodeType.Render(string(n.Type)))
	if n.Description != "" {
		field("Description", n.Description)
	}
	if n.Image != "" {
		field("Image", n.Image)
	}
	if n.Code != "" {
		field("Code", strings.ReplaceAll(n.Code, "\n", "\n"+strings.Repeat(" ", 12)))
	}
	field("Order", strconv.Itoa(n.Order))
	field("Randomize", strconv.FormatBool(n.Randomize))
	field("Interval", u.styles.interval.Render(fmt.Sprintf("(%d,%d)", n.Left, n.Right)))
	field("Level", strconv.Itoa(n.Level))
	if !n.IsRoot() {
		field("Parent", n.Parent())
	}
	field("Children", strconv.Itoa(n.ChildCount))
	for i, opt := range n.Options {
		mark := " "
		if opt.Correct {
			mark = u.styles.correct.Render("*")
		}
		field(fmt.Sprintf("Option %d", i+1), fmt.Sprintf("%s %s (%s)", mark, opt.Text, opt.ID))
	}
}

// NodeList prints one line per node: short id, indentation by level, title and type.
func (u *UI) NodeList(nodes []model.FlatNode) {
	if len(nodes) == 0 {
		u.Info("No nodes.")
		return
	}
	for _, n := range nodes {
		u.Println(u.styles.id.Render(Short(n.ID)) + " " + strings.Repeat("  ", n.Level) +
			u.styles.title.Render(n.Title) + " " + u.styles.nodeType.Render("["+string(n.Type)+"]"))
	}
}

// FindResults prints the matches of a fuzzy search.
func (u *UI) FindResults(nodes []model.FlatNode, distances []int) {
	if len(nodes) == 0 {
		u.Info("No matches found.")
		return
	}
	u.Message("Found %d matches:", len(nodes))
	for i, n := range nodes {
		u.Println(fmt.Sprintf("  %s %s %s", u.styles.id.Render(Short(n.ID)), n.Title,
			u.styles.label.Render(fmt.Sprintf("(distance %d)", distances[i]))))
	}
}

// Snapshots prints stored document versions.
func (u *UI) Snapshots(infos []model.SnapshotInfo) {
	if len(infos) == 0 {
		u.Info("No saved documents.")
		return
	}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			strconv.FormatInt(info.ID, 10),
			strconv.Itoa(info.NodeCount),
			info.Created.Local().Format("2006-01-02 15:04:05"),
			Short(info.Checksum),
		})
	}
	u.table([]string{"NAME", "VERSION", "NODES", "SAVED", "CHECKSUM"}, rows)
}
