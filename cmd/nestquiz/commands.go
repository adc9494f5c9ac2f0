package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
	"nestquiz/local-app/internal/storage"
)

var (
	configFile string
	outputFile string
	outFormat  string

	rootCmd = &cobra.Command{
		Use:   "nestquiz",
		Short: "Edit quiz trees stored in nested-set form",
		Long: `nestquiz edits quiz documents made of sections and questions. Documents are kept
as nested-set snapshots with left and right values on every node.

Run without a subcommand to start the interactive shell.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap(configFile)
		},
	}
	encodeCmd = &cobra.Command{
		Use:   "encode <input>",
		Short: "Encode a hierarchical JSON or XML file into a nested-set envelope",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncode,
	}
	decodeCmd = &cobra.Command{
		Use:   "decode <input>",
		Short: "Print the hierarchical form of a file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	validateCmd = &cobra.Command{
		Use:   "validate <input>",
		Short: "Check the interval consistency of a file",
		Long:  "Prints the validation result as JSON and exits non-zero when the file is not well formed.",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	statsCmd = &cobra.Command{
		Use:   "stats <input>",
		Short: "Print tree statistics of a file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	queryCmd = &cobra.Command{
		Use:       "query <children|descendants|ancestors|siblings|root|path|isdesc> <input> <id> [id]",
		Short:     "Run a structural query against a file",
		Args:      cobra.RangeArgs(3, 4),
		ValidArgs: []string{"children", "descendants", "ancestors", "siblings", "root", "path", "isdesc"},
		RunE:      runQuery,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./data/config.json or $NESTQUIZ_CONFIG)")

	encodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the envelope to a file instead of stdout")
	encodeCmd.Flags().StringVarP(&outFormat, "format", "f", "", "output format, json or xml (default from the output extension, else json)")

	rootCmd.AddCommand(encodeCmd, decodeCmd, validateCmd, statsCmd, queryCmd, logsCmd)
}

// readInput loads any supported file shape as flat nodes.
func readInput(path string) ([]model.FlatNode, error) {
	format, err := storage.FormatFromFilename(path)
	if err != nil {
		return nil, err
	}
	result, err := storage.FileImport(path, format)
	if err != nil {
		return nil, err
	}
	return result.Nodes, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runEncode(cmd *cobra.Command, args []string) error {
	nodes, err := readInput(args[0])
	if err != nil {
		return err
	}

	format := outFormat
	if format == "" {
		format = "json"
		if outputFile != "" {
			if f, err := storage.FormatFromFilename(outputFile); err == nil {
				format = f
			}
		}
	}

	if outputFile != "" {
		if err := storage.FileExport(nodes, outputFile, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Encoded %d nodes into %s\n", len(nodes), outputFile)
		return nil
	}
	out, err := storage.MarshalEnvelope(nodes, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func runDecode(cmd *cobra.Command, args []string) error {
	nodes, err := readInput(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), mptt.Decode(nodes))
}

func runValidate(cmd *cobra.Command, args []string) error {
	nodes, err := readInput(args[0])
	if err != nil {
		return err
	}
	result := mptt.Validate(nodes)
	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s: %d problems found", args[0], len(result.Errors))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	nodes, err := readInput(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), mptt.Stats(nodes))
}

func runQuery(cmd *cobra.Command, args []string) error {
	op, path, id := args[0], args[1], args[2]
	nodes, err := readInput(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch op {
	case "isdesc":
		if len(args) != 4 {
			return fmt.Errorf("isdesc needs an ancestor and a node id")
		}
		return writeJSON(out, mptt.IsDescendant(nodes, id, args[3]))
	case "root":
		root, ok := mptt.Root(nodes, id)
		if !ok {
			return fmt.Errorf("node not found: %s", id)
		}
		return writeJSON(out, root)
	}

	if len(args) != 3 {
		return fmt.Errorf("%s takes a single node id", op)
	}
	var result []model.FlatNode
	switch op {
	case "children":
		result = mptt.Children(nodes, id)
	case "descendants":
		result = mptt.Descendants(nodes, id)
	case "ancestors":
		result = mptt.Ancestors(nodes, id)
	case "siblings":
		result = mptt.Siblings(nodes, id)
	case "path":
		result = mptt.Path(nodes, id)
	default:
		return fmt.Errorf("unknown query: %s", op)
	}
	return writeJSON(out, result)
}
