// Package cli provides the interactive command-line interface of nestquiz.
// This file contains handlers for structural queries.
package cli

import (
	"fmt"

	"nestquiz/local-app/internal/model"
)

// ExecuteQueryCommand routes a query command to the appropriate handler.
func (c *CLI) ExecuteQueryCommand(operation string, args []string) error {
	if operation == "isdesc" {
		if len(args) != 2 {
			return fmt.Errorf("usage: query isdesc <ancestor> <node>")
		}
		ancestor, err := c.resolve(args[0])
		if err != nil {
			return err
		}
		node, err := c.resolve(args[1])
		if err != nil {
			return err
		}
		if c.Tree.IsDescendant(ancestor, node) {
			c.UI.Message("yes: %s is below %s", node, ancestor)
		} else {
			c.UI.Message("no: %s is not below %s", node, ancestor)
		}
		return nil
	}

	var lookup func(string) []model.FlatNode
	switch operation {
	case "children":
		lookup = c.Tree.Children
	case "descendants":
		lookup = c.Tree.Descendants
	case "ancestors":
		lookup = c.Tree.Ancestors
	case "siblings":
		lookup = c.Tree.Siblings
	case "path":
		lookup = c.Tree.Path
	case "root":
		lookup = func(id string) []model.FlatNode {
			if root, ok := c.Tree.Root(id); ok {
				return []model.FlatNode{root}
			}
			return nil
		}
	default:
		return fmt.Errorf("unknown query operation: %s", operation)
	}

	if len(args) != 1 {
		return fmt.Errorf("usage: query %s <node>", operation)
	}
	id, err := c.resolve(args[0])
	if err != nil {
		return err
	}
	c.UI.NodeList(lookup(id))
	return nil
}
