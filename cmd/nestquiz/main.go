// Package main is the entry point for the nestquiz application.
// Without a subcommand it starts the interactive shell; the subcommands work on
// files directly without touching the database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
