// Package cli provides the interactive command-line interface of nestquiz.
// This file contains handlers for document-level commands.
package cli

import (
	"context"
	"fmt"

	"nestquiz/local-app/internal/data"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

// ExecuteTreeCommand routes a tree command to the appropriate handler.
func (c *CLI) ExecuteTreeCommand(ctx context.Context, operation string, args []string) error {
	switch operation {
	case "", "view", "show":
		return c.TreeView(args)
	case "flat":
		c.UI.FlatTable(c.Tree.Nodes())
		return nil
	case "stats":
		c.UI.Stats(c.Tree.Stats())
		return nil
	case "validate":
		c.UI.Validation(c.Tree.Validate())
		return nil
	case "undo":
		label, err := c.Tree.Undo(ctx)
		if err != nil {
			return err
		}
		c.UI.Success(fmt.Sprintf("Undone: %s", label))
		return nil
	case "redo":
		label, err := c.Tree.Redo(ctx)
		if err != nil {
			return err
		}
		c.UI.Success(fmt.Sprintf("Redone: %s", label))
		return nil
	case "save":
		return c.TreeSave(ctx, args)
	case "load":
		return c.TreeLoad(ctx, args)
	case "list":
		infos, err := c.Tree.List(ctx)
		if err != nil {
			return err
		}
		c.UI.Snapshots(infos)
		return nil
	case "drop":
		return c.TreeDrop(ctx, args)
	case "subtree":
		return c.TreeSubtree(ctx, args)
	case "import":
		return c.TreeImport(ctx, args)
	case "export":
		return c.TreeExport(ctx, args)
	default:
		return fmt.Errorf("unknown tree operation: %s", operation)
	}
}

// TreeView handles 'tree view [node] [--intervals]'.
func (c *CLI) TreeView(args []string) error {
	intervals := false
	var ref string
	for _, arg := range args {
		switch {
		case arg == "--intervals" || arg == "-i":
			intervals = true
		case ref == "":
			ref = arg
		default:
			return fmt.Errorf("usage: tree view [node] [--intervals]")
		}
	}

	nodes := c.Tree.Nodes()
	if ref == "" {
		c.UI.Tree(mptt.Decode(nodes), nodes, intervals)
		return nil
	}
	id, err := c.resolve(ref)
	if err != nil {
		return err
	}
	sub, ok := c.Tree.Subtree(id)
	if !ok {
		return fmt.Errorf("%w: %s", data.ErrNodeNotFound, id)
	}
	c.UI.Tree([]model.Node{sub}, nodes, intervals)
	return nil
}

// TreeSave handles 'tree save [name]'.
func (c *CLI) TreeSave(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: tree save [name]")
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	info, err := c.Tree.Save(ctx, name)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Saved '%s' (version %d, %d nodes).", info.Name, info.ID, info.NodeCount))
	return nil
}

// TreeLoad handles 'tree load <name>'.
func (c *CLI) TreeLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tree load <name>")
	}
	if c.Tree.Dirty() {
		c.UI.Warning("Unsaved edits are discarded.")
	}
	info, err := c.Tree.Load(ctx, args[0])
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Loaded '%s' (version %d, %d nodes).", info.Name, info.ID, info.NodeCount))
	return nil
}

// TreeDrop handles 'tree drop <name>'.
func (c *CLI) TreeDrop(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tree drop <name>")
	}
	if err := c.Tree.Drop(ctx, args[0]); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Dropped '%s'.", args[0]))
	return nil
}

// TreeSubtree handles 'tree subtree <node>'.
func (c *CLI) TreeSubtree(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tree subtree <node>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	nodes, err := c.Tree.StoredSubtree(ctx, id)
	if err != nil {
		return err
	}
	c.UI.FlatTable(nodes)
	return nil
}

// TreeImport handles 'tree import <file>'.
func (c *CLI) TreeImport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tree import <file>")
	}
	result, err := c.Tree.Import(ctx, args[0])
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Imported %d nodes from %s (%s).", len(result.Nodes), args[0], result.Source))
	return nil
}

// TreeExport handles 'tree export <file>'.
func (c *CLI) TreeExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tree export <file>")
	}
	if err := c.Tree.Export(ctx, args[0]); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Exported %d nodes to %s.", len(c.Tree.Nodes()), args[0]))
	return nil
}
