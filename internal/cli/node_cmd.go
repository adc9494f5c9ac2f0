// Package cli provides the interactive command-line interface of nestquiz.
// This file contains handlers for node-related commands.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

// ExecuteNodeCommand routes a node command to the appropriate handler.
func (c *CLI) ExecuteNodeCommand(ctx context.Context, operation string, args []string) error {
	switch operation {
	case "add":
		return c.NodeAdd(ctx, args)
	case "child":
		return c.NodeChild(ctx, args)
	case "update":
		return c.NodeUpdate(ctx, args)
	case "delete", "del":
		return c.NodeDelete(ctx, args)
	case "up":
		return c.nodeShift(ctx, args, "up")
	case "down":
		return c.nodeShift(ctx, args, "down")
	case "move":
		return c.NodeMove(ctx, args)
	case "find":
		return c.NodeFind(args)
	case "show":
		return c.NodeShow(args)
	case "option":
		return c.NodeOption(ctx, args)
	case "correct":
		return c.NodeCorrect(ctx, args)
	case "optdel":
		return c.NodeOptionDelete(ctx, args)
	default:
		return fmt.Errorf("unknown node operation: %s", operation)
	}
}

// NodeAdd handles 'node add <title> [field:value]...'.
func (c *CLI) NodeAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: node add <title> [field:value]...")
	}
	opts, err := parseFields(args[1:], false)
	if err != nil {
		return err
	}
	opts = append([]mptt.NodeOption{mptt.WithTitle(args[0])}, opts...)

	n, err := c.Tree.NodeAddRoot(ctx, opts...)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %s added.", n.ID))
	return nil
}

// NodeChild handles 'node child <parent> <title> [field:value]...'.
func (c *CLI) NodeChild(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: node child <parent> <title> [field:value]...")
	}
	parentID, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	opts, err := parseFields(args[2:], false)
	if err != nil {
		return err
	}
	opts = append([]mptt.NodeOption{mptt.WithTitle(args[1])}, opts...)

	n, err := c.Tree.NodeAddChild(ctx, parentID, opts...)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %s added under %s.", n.ID, parentID))
	return nil
}

// NodeUpdate handles 'node update <node> [field:value]...'.
func (c *CLI) NodeUpdate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: node update <node> [title:<text>] [field:value]...")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	opts, err := parseFields(args[1:], true)
	if err != nil {
		return err
	}
	if _, err := c.Tree.NodeUpdate(ctx, id, opts...); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %s updated.", id))
	return nil
}

// NodeDelete handles 'node delete <node>'.
func (c *CLI) NodeDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: node delete <node>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	removed, err := c.Tree.NodeDelete(ctx, id)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Deleted %d node(s).", removed))
	return nil
}

func (c *CLI) nodeShift(ctx context.Context, args []string, direction string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: node %s <node>", direction)
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	if direction == "up" {
		err = c.Tree.NodeMoveUp(ctx, id)
	} else {
		err = c.Tree.NodeMoveDown(ctx, id)
	}
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %s moved %s.", id, direction))
	return nil
}

// NodeMove handles 'node move <node> <parent|root>'.
func (c *CLI) NodeMove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: node move <node> <parent|root>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}

	var parent *string
	if args[1] != "root" {
		p, err := c.resolve(args[1])
		if err != nil {
			return err
		}
		parent = &p
	}
	if err := c.Tree.NodeMove(ctx, id, parent); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Node %s moved.", id))
	return nil
}

// NodeFind handles 'node find <query> [limit]'.
func (c *CLI) NodeFind(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: node find <query> [limit]")
	}
	limit := 0
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid limit: %s", args[1])
		}
		limit = n
	}

	results := c.Tree.NodeFind(args[0], limit)
	nodes := make([]model.FlatNode, len(results))
	distances := make([]int, len(results))
	for i, r := range results {
		nodes[i], distances[i] = r.Node, r.Distance
	}
	c.UI.FindResults(nodes, distances)
	return nil
}

// NodeShow handles 'node show <node>'.
func (c *CLI) NodeShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: node show <node>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	n, _ := c.Tree.Find(id)
	c.UI.NodeInfo(n)
	return nil
}

// NodeOption handles 'node option <node> <text> [correct]'.
func (c *CLI) NodeOption(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "correct") {
		return fmt.Errorf("usage: node option <node> <text> [correct]")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	option, err := c.Tree.OptionAdd(ctx, id, args[1], len(args) == 3)
	if err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Option %s added to %s.", option.ID, id))
	return nil
}

// NodeCorrect handles 'node correct <node> <option>'.
func (c *CLI) NodeCorrect(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: node correct <node> <option>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	option, err := c.Tree.OptionCorrect(ctx, id, args[1])
	if err != nil {
		return err
	}
	state := "correct"
	if !option.Correct {
		state = "incorrect"
	}
	c.UI.Success(fmt.Sprintf("Option '%s' is now %s.", option.Text, state))
	return nil
}

// NodeOptionDelete handles 'node optdel <node> <option>'.
func (c *CLI) NodeOptionDelete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: node optdel <node> <option>")
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	if err := c.Tree.OptionDelete(ctx, id, args[1]); err != nil {
		return err
	}
	c.UI.Success(fmt.Sprintf("Option %s deleted.", args[1]))
	return nil
}

// parseFields converts field:value arguments into node options. The title field is
// accepted only when allowTitle is set. Answer options are collected in order and
// applied as one replacement.
func parseFields(args []string, allowTitle bool) ([]mptt.NodeOption, error) {
	var opts []mptt.NodeOption
	var options []model.Option
	optionsSet := false

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid field %q, expected field:value", arg)
		}
		switch strings.ToLower(key) {
		case "title":
			if !allowTitle {
				return nil, fmt.Errorf("title is given as an argument, not as a field")
			}
			if value == "" {
				return nil, fmt.Errorf("title cannot be empty")
			}
			opts = append(opts, mptt.WithTitle(value))
		case "type":
			t := model.NodeType(value)
			if !t.Valid() {
				return nil, fmt.Errorf("invalid node type %q", value)
			}
			opts = append(opts, mptt.WithType(t))
		case "desc", "description":
			opts = append(opts, mptt.WithDescription(value))
		case "image":
			opts = append(opts, mptt.WithImage(value))
		case "code":
			opts = append(opts, mptt.WithCode(value))
		case "order":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid order %q", value)
			}
			opts = append(opts, mptt.WithOrder(n))
		case "randomize":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid randomize value %q", value)
			}
			opts = append(opts, mptt.WithRandomize(b))
		case "option", "correct":
			options = append(options, mptt.NewOption(value, strings.EqualFold(key, "correct")))
			optionsSet = true
		case "options":
			if value != "none" {
				return nil, fmt.Errorf("invalid options value %q, only 'none' is accepted", value)
			}
			options = []model.Option{}
			optionsSet = true
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}

	if optionsSet {
		opts = append(opts, mptt.WithOptions(options...))
	}
	return opts, nil
}
