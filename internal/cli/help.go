// Package cli provides the interactive command-line interface of nestquiz.
// This file handles the help system, providing detailed information about
// commands and their usage.
package cli

import "fmt"

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}

var scopes = []string{"node", "tree", "query"}

// HandleHelp shows general help, scope help or operation help.
func (c *CLI) HandleHelp(args []string) error {
	switch len(args) {
	case 0:
		return c.showGeneralHelp()
	case 1:
		return c.showScopeHelp(args[0])
	case 2:
		return c.showOperationHelp(args[0], args[1])
	default:
		return fmt.Errorf("invalid help command. Use 'help [scope] [operation]'")
	}
}

func (c *CLI) showGeneralHelp() error {
	c.UI.Message("Command syntax: <scope> <operation> [arguments]")
	c.UI.Message("Nodes can be given by full id or by a unique id prefix.")
	c.UI.Message("\nAvailable commands:")

	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			c.UI.Message("\n%s:", cmd.Scope)
			currentScope = cmd.Scope
		}
		c.UI.Message("  %-12s %s", cmd.Operation, cmd.ShortDesc)
	}
	return nil
}

func (c *CLI) showScopeHelp(scope string) error {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				c.UI.Message("Commands for %s:\n", scope)
				found = true
			}
			c.UI.Message("%-12s %s", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		return fmt.Errorf("unknown scope: %s", scope)
	}
	return nil
}

func (c *CLI) showOperationHelp(scope, operation string) error {
	for _, cmd := range commandHelps {
		if cmd.Scope != scope || cmd.Operation != operation {
			continue
		}
		c.UI.Message("Command: %s %s", scope, operation)
		desc := cmd.LongDesc
		if desc == "" {
			desc = cmd.ShortDesc
		}
		c.UI.Message("Description: %s", desc)
		c.UI.Message("Syntax: %s", cmd.Syntax)
		if len(cmd.Arguments) > 0 {
			c.UI.Message("Arguments:")
			for _, arg := range cmd.Arguments {
				c.UI.Message("  %s", arg)
			}
		}
		if len(cmd.Options) > 0 {
			c.UI.Message("Options:")
			for _, opt := range cmd.Options {
				c.UI.Message("  %s", opt)
			}
		}
		if len(cmd.Examples) > 0 {
			c.UI.Message("Examples:")
			for _, ex := range cmd.Examples {
				c.UI.Message("  %s", ex)
			}
		}
		return nil
	}
	return fmt.Errorf("no help found for %s %s", scope, operation)
}

var fieldOptions = []string{
	"type:<t>: section, multiple-choice, single-choice or open-answer",
	"desc:<text>: Description",
	"image:<url>: Image reference",
	"code:<text>: Code snippet",
	"order:<n>: Display order",
	"randomize:<bool>: Shuffle answer options",
	"option:<text>: Add a wrong answer option (repeatable)",
	"correct:<text>: Add a correct answer option (repeatable)",
	"Changing the type resets the answer options; a single-choice question keeps one correct option",
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = []CommandHelp{
	{
		Scope:     "node",
		Operation: "add",
		ShortDesc: "Add a root node",
		LongDesc:  "Appends a new top-level node to the document.",
		Syntax:    "node add <title> [field:value]...",
		Arguments: []string{"title: The title of the new node"},
		Options:   fieldOptions,
		Examples:  []string{`node add "Geography"`, `node add "Capital of France?" type:single-choice correct:Paris option:Lyon`},
	},
	{
		Scope:     "node",
		Operation: "child",
		ShortDesc: "Add a child node",
		LongDesc:  "Appends a new node to the children of an existing node.",
		Syntax:    "node child <parent> <title> [field:value]...",
		Arguments: []string{"parent: The id or id prefix of the parent node", "title: The title of the new node"},
		Options:   fieldOptions,
		Examples:  []string{`node child 3f2a "Rivers" type:open-answer`},
	},
	{
		Scope:     "node",
		Operation: "update",
		ShortDesc: "Update node fields",
		LongDesc:  "Changes the content fields of a node. Giving any option replaces all options.",
		Syntax:    "node update <node> [title:<text>] [field:value]...",
		Arguments: []string{"node: The id or id prefix of the node"},
		Options:   append([]string{"title:<text>: New title", "options:none: Remove all answer options"}, fieldOptions...),
		Examples:  []string{`node update 3f2a title:"Rivers of Europe" order:2`},
	},
	{
		Scope:     "node",
		Operation: "delete",
		ShortDesc: "Delete a node and its subtree",
		LongDesc:  "Removes a node together with every node below it.",
		Syntax:    "node delete <node>",
		Arguments: []string{"node: The id or id prefix of the node"},
		Examples:  []string{"node delete 3f2a"},
	},
	{
		Scope:     "node",
		Operation: "up",
		ShortDesc: "Move a node before its previous sibling",
		LongDesc:  "Swaps a node with its previous sibling. Works for roots and nested nodes.",
		Syntax:    "node up <node>",
		Examples:  []string{"node up 3f2a"},
	},
	{
		Scope:     "node",
		Operation: "down",
		ShortDesc: "Move a node after its next sibling",
		LongDesc:  "Swaps a node with its next sibling. Works for roots and nested nodes.",
		Syntax:    "node down <node>",
		Examples:  []string{"node down 3f2a"},
	},
	{
		Scope:     "node",
		Operation: "move",
		ShortDesc: "Reparent a node",
		LongDesc:  "Moves a node with its subtree to the end of another node's children, or to the top level.",
		Syntax:    "node move <node> <parent|root>",
		Arguments: []string{"node: The node to move", "parent: The new parent, or 'root' for the top level"},
		Examples:  []string{"node move 3f2a 9c1d", "node move 3f2a root"},
	},
	{
		Scope:     "node",
		Operation: "find",
		ShortDesc: "Fuzzy search titles and code",
		LongDesc:  "Finds nodes whose title or code contains the query or is within a small edit distance of it.",
		Syntax:    "node find <query> [limit]",
		Examples:  []string{`node find "capitol"`, "node find loop 5"},
	},
	{
		Scope:     "node",
		Operation: "show",
		ShortDesc: "Show all fields of a node",
		LongDesc:  "Prints the content and nested-set fields of a node.",
		Syntax:    "node show <node>",
		Examples:  []string{"node show 3f2a"},
	},
	{
		Scope:     "node",
		Operation: "option",
		ShortDesc: "Add an answer option to a question",
		LongDesc:  "Appends an answer option to a choice question. A correct option added to a single-choice question becomes its only correct option.",
		Syntax:    "node option <node> <text> [correct]",
		Arguments: []string{"node: The id or id prefix of the question", "text: The answer text", "correct: Mark the new option correct"},
		Examples:  []string{`node option 3f2a "Marseille"`, `node option 3f2a Paris correct`},
	},
	{
		Scope:     "node",
		Operation: "correct",
		ShortDesc: "Mark an answer option correct",
		LongDesc:  "On a single-choice question the option becomes the only correct one. On a multiple-choice question its correct flag is toggled.",
		Syntax:    "node correct <node> <option>",
		Arguments: []string{"node: The id or id prefix of the question", "option: The position (from 1), id or id prefix of the option"},
		Examples:  []string{"node correct 3f2a 2"},
	},
	{
		Scope:     "node",
		Operation: "optdel",
		ShortDesc: "Delete an answer option",
		Syntax:    "node optdel <node> <option>",
		Arguments: []string{"node: The id or id prefix of the question", "option: The position (from 1), id or id prefix of the option"},
		Examples:  []string{"node optdel 3f2a 1"},
	},
	{
		Scope:     "tree",
		Operation: "view",
		ShortDesc: "Show the document as a tree",
		LongDesc:  "Prints the hierarchical form of the document, or of one subtree.",
		Syntax:    "tree view [node] [--intervals]",
		Options:   []string{"--intervals: Show left and right values"},
		Examples:  []string{"tree view", "tree view 3f2a --intervals"},
	},
	{
		Scope:     "tree",
		Operation: "flat",
		ShortDesc: "Show the flat nested-set table",
		LongDesc:  "Prints every node with its left, right and level values in document order.",
		Syntax:    "tree flat",
	},
	{
		Scope:     "tree",
		Operation: "stats",
		ShortDesc: "Show tree statistics",
		LongDesc:  "Prints node, root and leaf counts with maximum and average depth.",
		Syntax:    "tree stats",
	},
	{
		Scope:     "tree",
		Operation: "validate",
		ShortDesc: "Check interval consistency",
		LongDesc:  "Reports duplicate ids, malformed and overlapping intervals and parent mismatches.",
		Syntax:    "tree validate",
	},
	{
		Scope:     "tree",
		Operation: "undo",
		ShortDesc: "Undo the last edit",
		LongDesc:  "Restores the document as it was before the last edit.",
		Syntax:    "tree undo",
	},
	{
		Scope:     "tree",
		Operation: "redo",
		ShortDesc: "Redo the last undone edit",
		LongDesc:  "Re-applies the edit undone most recently.",
		Syntax:    "tree redo",
	},
	{
		Scope:     "tree",
		Operation: "save",
		ShortDesc: "Save the document",
		LongDesc:  "Stores the document as a new version in the database.",
		Syntax:    "tree save [name]",
		Arguments: []string{"name: (Optional) Save under a different name"},
		Examples:  []string{"tree save", "tree save geography"},
	},
	{
		Scope:     "tree",
		Operation: "load",
		ShortDesc: "Load a saved document",
		LongDesc:  "Replaces the document with the latest stored version of name and clears the history.",
		Syntax:    "tree load <name>",
		Examples:  []string{"tree load geography"},
	},
	{
		Scope:     "tree",
		Operation: "list",
		ShortDesc: "List saved documents",
		LongDesc:  "Lists every stored document with its latest version.",
		Syntax:    "tree list",
	},
	{
		Scope:     "tree",
		Operation: "drop",
		ShortDesc: "Delete a saved document",
		LongDesc:  "Deletes every stored version of a document. The open document is kept.",
		Syntax:    "tree drop <name>",
		Examples:  []string{"tree drop geography"},
	},
	{
		Scope:     "tree",
		Operation: "subtree",
		ShortDesc: "Read a subtree from storage",
		LongDesc:  "Loads a node and its descendants from the last saved version with a single range query.",
		Syntax:    "tree subtree <node>",
		Examples:  []string{"tree subtree 3f2a"},
	},
	{
		Scope:     "tree",
		Operation: "import",
		ShortDesc: "Import a JSON or XML file",
		LongDesc:  "Replaces the document with the content of a file. Accepts exported files, a bare node array, or an object with a nodes or quiz array.",
		Syntax:    "tree import <file>",
		Examples:  []string{"tree import quiz.json"},
	},
	{
		Scope:     "tree",
		Operation: "export",
		ShortDesc: "Export to a JSON or XML file",
		LongDesc:  "Writes the document with stats, checksum and both flat and hierarchical forms. The format follows the extension.",
		Syntax:    "tree export <file>",
		Examples:  []string{"tree export quiz.xml"},
	},
	{
		Scope:     "query",
		Operation: "children",
		ShortDesc: "Direct children of a node",
		Syntax:    "query children <node>",
	},
	{
		Scope:     "query",
		Operation: "descendants",
		ShortDesc: "Every node below a node",
		Syntax:    "query descendants <node>",
	},
	{
		Scope:     "query",
		Operation: "ancestors",
		ShortDesc: "Every node above a node",
		Syntax:    "query ancestors <node>",
	},
	{
		Scope:     "query",
		Operation: "siblings",
		ShortDesc: "Nodes sharing a node's parent",
		Syntax:    "query siblings <node>",
	},
	{
		Scope:     "query",
		Operation: "root",
		ShortDesc: "Top-level ancestor of a node",
		Syntax:    "query root <node>",
	},
	{
		Scope:     "query",
		Operation: "path",
		ShortDesc: "Path from the root to a node",
		Syntax:    "query path <node>",
	},
	{
		Scope:     "query",
		Operation: "isdesc",
		ShortDesc: "Check whether a node lies below another",
		Syntax:    "query isdesc <ancestor> <node>",
	},
}
