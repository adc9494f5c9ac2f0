package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestquiz/local-app/internal/mptt"
)

func TestFormatFromFilename(t *testing.T) {
	f, err := FormatFromFilename("quiz.JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", f)

	f, err = FormatFromFilename("dir/quiz.xml")
	require.NoError(t, err)
	assert.Equal(t, "xml", f)

	_, err = FormatFromFilename("quiz.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileExportImport_RoundTrip(t *testing.T) {
	nodes := sampleSnapshot()
	for _, format := range []string{"json", "xml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quiz."+format)
			require.NoError(t, FileExport(nodes, path, format))

			result, err := FileImport(path, format)
			require.NoError(t, err)
			assert.Equal(t, SourceEnvelope, result.Source)
			assert.Equal(t, nodes, result.Nodes)
		})
	}
}

func TestBuildEnvelope(t *testing.T) {
	nodes := sampleSnapshot()
	env, err := BuildEnvelope(nodes)
	require.NoError(t, err)

	assert.Equal(t, "MPTT", env.Format)
	assert.Equal(t, "1.0", env.Version)
	assert.Equal(t, 6, env.Stats.TotalNodes)
	assert.Equal(t, 2, env.Stats.RootNodes)
	assert.Len(t, env.Hierarchical, 2)
	assert.NotEmpty(t, env.Checksum)
}

func TestParseImport_DetectsShapes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		source ImportSource
		count  int
	}{
		{
			name:   "bare array",
			input:  `[{"id":"a","title":"A","type":"section","children":[{"id":"b","title":"B","type":"open-answer"}]}]`,
			source: SourceArray,
			count:  2,
		},
		{
			name:   "nodes key",
			input:  `{"nodes":[{"id":"a","title":"A","type":"section"},{"id":"b","title":"B","type":"section"}]}`,
			source: SourceNodesKey,
			count:  2,
		},
		{
			name:   "quiz key",
			input:  `{"quiz":[{"id":"a","title":"A","type":"multiple-choice","options":[{"id":"o","text":"x","correct":true}]}]}`,
			source: SourceQuizKey,
			count:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseImport([]byte(tt.input), "json")
			require.NoError(t, err)
			assert.Equal(t, tt.source, result.Source)
			assert.Len(t, result.Nodes, tt.count)
			assert.True(t, mptt.Validate(result.Nodes).Valid)
		})
	}
}

func TestParseImport_Rejects(t *testing.T) {
	_, err := ParseImport([]byte(`{"something":1}`), "json")
	assert.ErrorIs(t, err, ErrUnrecognizedImport)

	_, err = ParseImport([]byte(`   `), "json")
	assert.ErrorIs(t, err, ErrUnrecognizedImport)

	_, err = ParseImport([]byte(`<quiz/>`), "xml")
	assert.ErrorIs(t, err, ErrUnrecognizedImport)

	_, err = ParseImport([]byte(`[]`), "yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseImport_ValidatesHierarchicalFields(t *testing.T) {
	_, err := ParseImport([]byte(`[{"id":"a","title":"","type":"section"}]`), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title")

	_, err = ParseImport([]byte(`[{"id":"a","title":"A","type":"essay"}]`), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestParseImport_VerifiesEnvelopeChecksum(t *testing.T) {
	data, err := MarshalEnvelope(sampleSnapshot(), "json")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "quiz.json")
	tampered := []byte(strings.Replace(string(data), `"title A"`, `"title Z"`, 1))
	require.NoError(t, os.WriteFile(path, tampered, 0644))

	_, err = FileImport(path, "json")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
