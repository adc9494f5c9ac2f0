// Package cli provides the interactive command-line interface of nestquiz.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"nestquiz/local-app/internal/data"
	"nestquiz/local-app/internal/log"
	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/ui"
)

// ErrExit is returned by ExecuteCommand when the user asks to leave the shell.
var ErrExit = errors.New("exit requested")

// CLI is the readline-driven shell operating on one TreeManager.
type CLI struct {
	Tree   *data.TreeManager
	UI     *ui.UI
	cfg    model.CLIConfig
	rl     *readline.Instance
	logger *log.Logger
}

// NewCLI creates a CLI writing to standard output.
func NewCLI(tree *data.TreeManager, cfg model.CLIConfig, logger *log.Logger) (*CLI, error) {
	return newCLI(tree, ui.NewUI(os.Stdout, cfg.Color), cfg, logger)
}

func newCLI(tree *data.TreeManager, u *ui.UI, cfg model.CLIConfig, logger *log.Logger) (*CLI, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree manager not initialized")
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &CLI{Tree: tree, UI: u, cfg: cfg, logger: logger}, nil
}

// Run reads and executes commands until exit, end of input or Stop.
func (c *CLI) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.prompt(),
		HistoryFile:     c.cfg.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	c.UI.Message("Welcome to the nestquiz shell!")
	c.UI.Message("Type 'help' for a list of commands or 'exit' to quit.")

	ctx := context.Background()
	for {
		rl.SetPrompt(c.prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := c.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			c.UI.Error(err.Error())
		}
	}
}

// Stop interrupts a running Run loop.
func (c *CLI) Stop() {
	if c.rl != nil {
		c.rl.Close()
	}
}

// Execute parses and runs one input line.
func (c *CLI) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	c.logger.LogCommand(ctx, line)

	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	if err := c.ExecuteCommand(ctx, cmd); err != nil {
		if !errors.Is(err, ErrExit) {
			c.logger.Warn(ctx, "Command failed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "error": err})
		}
		return err
	}
	return nil
}

// ExecuteCommand routes a command to the handler of its scope.
func (c *CLI) ExecuteCommand(ctx context.Context, cmd model.Command) error {
	if err := validateCommand(cmd); err != nil {
		return err
	}

	switch cmd.Scope {
	case "node":
		return c.ExecuteNodeCommand(ctx, cmd.Operation, cmd.Args)
	case "tree":
		return c.ExecuteTreeCommand(ctx, cmd.Operation, cmd.Args)
	case "query":
		return c.ExecuteQueryCommand(cmd.Operation, cmd.Args)
	case "help":
		if cmd.Operation == "" {
			return c.HandleHelp(nil)
		}
		return c.HandleHelp(append([]string{cmd.Operation}, cmd.Args...))
	default:
		c.UI.Println("Exiting...")
		return ErrExit
	}
}

// ParseCommand splits an input line into scope, operation and arguments.
func ParseCommand(line string) (model.Command, error) {
	args, err := ParseArgs(line)
	if err != nil {
		return model.Command{}, err
	}
	if len(args) == 0 {
		return model.Command{}, fmt.Errorf("no command provided")
	}

	cmd := model.Command{Scope: strings.ToLower(args[0]), Args: []string{}}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}
	return cmd, nil
}

// validateCommand checks that the scope exists and that scopes needing an
// operation have one.
func validateCommand(cmd model.Command) error {
	switch cmd.Scope {
	case "node", "query":
		if cmd.Operation == "" {
			return fmt.Errorf("missing %s operation. Use 'help %s'", cmd.Scope, cmd.Scope)
		}
	case "tree", "help", "exit", "quit":
	case "":
		return fmt.Errorf("command scope is required")
	default:
		return fmt.Errorf("unknown command: %s", cmd.Scope)
	}
	return nil
}

// ParseArgs splits a line on spaces, keeping double-quoted sections together.
// A backslash escapes the next character inside quotes.
func ParseArgs(input string) ([]string, error) {
	var args []string
	var currentArg strings.Builder
	inQuotes, escaped, quotedArg := false, false, false

	for _, char := range input {
		switch {
		case escaped:
			currentArg.WriteRune(char)
			escaped = false
		case char == '\\' && inQuotes:
			escaped = true
		case char == '"':
			inQuotes = !inQuotes
			quotedArg = true
		case char == ' ' && !inQuotes:
			if currentArg.Len() > 0 || quotedArg {
				args = append(args, currentArg.String())
				currentArg.Reset()
				quotedArg = false
			}
		default:
			currentArg.WriteRune(char)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if currentArg.Len() > 0 || quotedArg {
		args = append(args, currentArg.String())
	}
	return args, nil
}

func (c *CLI) prompt() string {
	return c.UI.PromptString(c.Tree.Document(), c.Tree.Dirty())
}

func (c *CLI) resolve(ref string) (string, error) {
	return c.Tree.ResolveID(ref)
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(scopes))
	for _, scope := range scopes {
		var ops []readline.PrefixCompleterInterface
		for _, h := range commandHelps {
			if h.Scope == scope {
				ops = append(ops, readline.PcItem(h.Operation))
			}
		}
		items = append(items, readline.PcItem(scope, ops...))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}
