// Package storage provides functionality for persisting and retrieving nestquiz data.
// This file handles the import and export of snapshots to and from files.
package storage

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"nestquiz/local-app/internal/model"
	"nestquiz/local-app/internal/mptt"
)

const (
	EnvelopeFormat  = "MPTT"
	EnvelopeVersion = "1.0"
)

// ImportSource names the shape an imported document was recognized as.
type ImportSource string

const (
	SourceEnvelope ImportSource = "envelope"
	SourceArray    ImportSource = "array"
	SourceNodesKey ImportSource = "nodes"
	SourceQuizKey  ImportSource = "quiz"
)

// ImportResult is a parsed import document converted to its flat form.
type ImportResult struct {
	Source ImportSource
	Nodes  []model.FlatNode
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type importBatch struct {
	Nodes []model.Node `validate:"dive"`
}

// FormatFromFilename derives the file format from the file extension.
func FormatFromFilename(filename string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext {
	case "json", "xml":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// BuildEnvelope wraps a flat snapshot with its stats, checksum and hierarchical form.
func BuildEnvelope(nodes []model.FlatNode) (model.Envelope, error) {
	checksum, err := Checksum(nodes)
	if err != nil {
		return model.Envelope{}, err
	}
	return model.Envelope{
		Format:       EnvelopeFormat,
		Version:      EnvelopeVersion,
		Timestamp:    time.Now().UTC(),
		Stats:        mptt.Stats(nodes),
		Checksum:     checksum,
		Nodes:        nodes,
		Hierarchical: mptt.Decode(nodes),
	}, nil
}

// MarshalEnvelope renders a snapshot envelope in the given format (json or xml).
func MarshalEnvelope(nodes []model.FlatNode, format string) ([]byte, error) {
	env, err := BuildEnvelope(nodes)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(env, "", "  ")
	case "xml":
		data, err = xml.MarshalIndent(env, "", "  ")
		if err == nil {
			data = append([]byte(xml.Header), data...)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// FileExport writes a snapshot envelope to a file in the specified format (JSON or XML).
func FileExport(nodes []model.FlatNode, filename, format string) error {
	data, err := MarshalEnvelope(nodes, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads a file in the specified format (JSON or XML) and converts it to a
// flat snapshot.
func FileImport(filename, format string) (ImportResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseImport(data, format)
}

// ParseImport recognizes a native envelope, a bare array of hierarchical nodes, or an
// object holding hierarchical nodes under "nodes" or "quiz". Envelope nodes are used
// as-is; hierarchical nodes are validated and then encoded.
func ParseImport(data []byte, format string) (ImportResult, error) {
	switch format {
	case "json":
		return parseJSONImport(data)
	case "xml":
		var env model.Envelope
		if err := xml.Unmarshal(data, &env); err != nil {
			return ImportResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedImport, err)
		}
		if env.Format != EnvelopeFormat {
			return ImportResult{}, fmt.Errorf("%w: xml document is not an %s envelope", ErrUnrecognizedImport, EnvelopeFormat)
		}
		return envelopeResult(env)
	default:
		return ImportResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func parseJSONImport(data []byte) (ImportResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ImportResult{}, fmt.Errorf("%w: empty document", ErrUnrecognizedImport)
	}

	if trimmed[0] == '[' {
		var forest []model.Node
		if err := json.Unmarshal(trimmed, &forest); err != nil {
			return ImportResult{}, fmt.Errorf("failed to unmarshal node array: %w", err)
		}
		return hierarchicalResult(SourceArray, forest)
	}

	var probe struct {
		Format string          `json:"format"`
		Nodes  json.RawMessage `json:"nodes"`
		Quiz   json.RawMessage `json:"quiz"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrUnrecognizedImport, err)
	}

	switch {
	case probe.Format == EnvelopeFormat:
		var env model.Envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return ImportResult{}, fmt.Errorf("failed to unmarshal envelope: %w", err)
		}
		return envelopeResult(env)
	case probe.Nodes != nil:
		var forest []model.Node
		if err := json.Unmarshal(probe.Nodes, &forest); err != nil {
			return ImportResult{}, fmt.Errorf("failed to unmarshal nodes: %w", err)
		}
		return hierarchicalResult(SourceNodesKey, forest)
	case probe.Quiz != nil:
		var forest []model.Node
		if err := json.Unmarshal(probe.Quiz, &forest); err != nil {
			return ImportResult{}, fmt.Errorf("failed to unmarshal quiz: %w", err)
		}
		return hierarchicalResult(SourceQuizKey, forest)
	default:
		return ImportResult{}, ErrUnrecognizedImport
	}
}

func envelopeResult(env model.Envelope) (ImportResult, error) {
	nodes := env.Nodes
	if nodes == nil {
		nodes = []model.FlatNode{}
	}
	for i := range nodes {
		if nodes[i].Options == nil {
			nodes[i].Options = []model.Option{}
		}
	}
	if env.Checksum != "" {
		if err := VerifyChecksum(nodes, env.Checksum); err != nil {
			return ImportResult{}, err
		}
	}
	return ImportResult{Source: SourceEnvelope, Nodes: nodes}, nil
}

func hierarchicalResult(source ImportSource, forest []model.Node) (ImportResult, error) {
	if err := ValidateForest(forest); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Source: source, Nodes: mptt.Encode(forest).Nodes}, nil
}

// ValidateForest checks the field constraints of every node in a hierarchical forest.
func ValidateForest(forest []model.Node) error {
	err := validate.Struct(importBatch{Nodes: forest})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", strings.TrimPrefix(fe.Namespace(), "importBatch."), fe.Tag()))
		}
		return fmt.Errorf("invalid import: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid import: %w", err)
}
