package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nestquiz/local-app/internal/config"
)

var (
	logFilter string
	logLevel  string
	logPlain  bool

	logsCmd = &cobra.Command{
		Use:   "logs [log directory]",
		Short: "Print the JSON log files in a compact, colored format",
		Long: `Reads every *.log file in the log directory (default: the configured log folder),
merges the entries by time and prints them one per record with their fields indented below.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogs,
	}

	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	levelStyle = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func init() {
	logsCmd.Flags().StringVarP(&logFilter, "filter", "g", "", "only show entries containing this text")
	logsCmd.Flags().StringVarP(&logLevel, "level", "l", "", "only show entries of this level (debug, info, warn, error)")
	logsCmd.Flags().BoolVar(&logPlain, "plain", false, "disable colors")
}

// LogEntry is one decoded JSON log record.
type LogEntry map[string]interface{}

func (e LogEntry) time() time.Time {
	s, _ := e["time"].(string)
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	} else {
		if configFile != "" {
			if err := config.ConfigLoadFrom(configFile); err != nil {
				return err
			}
		} else if err := config.ConfigLoad(); err != nil {
			return err
		}
		dir = config.ConfigGet().Log.Folder
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no log files found in %s", dir)
	}

	var entries []LogEntry
	for _, file := range files {
		fileEntries, err := readLogFile(file)
		if err != nil {
			return err
		}
		entries = append(entries, fileEntries...)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].time().Before(entries[j].time()) })

	out := cmd.OutOrStdout()
	for _, entry := range entries {
		line := formatLogEntry(entry, !logPlain)
		if !matchesLevel(entry, logLevel) || (logFilter != "" && !strings.Contains(line, logFilter)) {
			continue
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func readLogFile(path string) ([]LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	return parseLogEntries(f)
}

// parseLogEntries decodes one JSON record per line, skipping lines that are not JSON.
func parseLogEntries(r io.Reader) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return entries, nil
}

func matchesLevel(entry LogEntry, level string) bool {
	if level == "" {
		return true
	}
	l, _ := entry["level"].(string)
	return strings.EqualFold(l, level)
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000000")
}

func formatLogEntry(entry LogEntry, color bool) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	level = strings.ToUpper(level)
	paddedLevel := fmt.Sprintf("%-5s", level)
	formattedTime := formatTimestamp(timestamp)
	if color {
		formattedTime = timeStyle.Render(formattedTime)
		if style, ok := levelStyle[level]; ok {
			paddedLevel = style.Render(paddedLevel)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", formattedTime, paddedLevel, msg)

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "time" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		label := key + ":"
		if color {
			label = fieldStyle.Render(label)
		}
		fmt.Fprintf(&sb, "\n    %s %v", label, entry[key])
	}
	return sb.String()
}
