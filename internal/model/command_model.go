package model

import "strings"

// Command is one parsed shell line: a scope such as "node" or "tree", an
// optional operation within it, and the remaining arguments.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}

// String renders the command back into a single line.
func (c Command) String() string {
	parts := []string{c.Scope}
	if c.Operation != "" {
		parts = append(parts, c.Operation)
	}
	return strings.Join(append(parts, c.Args...), " ")
}
