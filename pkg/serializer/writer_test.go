package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type report struct {
	Valid      bool     `json:"valid" yaml:"valid"`
	AppName    string   `json:"appName" yaml:"appName"`
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`
	Violations []string `json:"violations,omitempty" yaml:"violations,omitempty"`
}

var sampleReport = report{
	Valid:   true,
	AppName: "web",
	Files:   []string{"namespace.yaml", "deployment-api.yaml"},
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTable} {
		assert.False(t, f.IsUnknown(), f)
	}
	for _, f := range []Format{"", "xml", "YAML"} {
		assert.True(t, f.IsUnknown(), f)
	}
	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.yaml", FormatYAML},
		{"report.YML", FormatYAML},
		{"report.json", FormatJSON},
		{"report.txt", FormatTable},
		{"report", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(context.Background(), sampleReport))

	assert.True(t, strings.Contains(buf.String(), "\n  \"appName\": \"web\""), "expected indented JSON, got %s", buf.String())

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport, got)
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), sampleReport))

	assert.Equal(t, "valid: true\nappName: web\nfiles:\n  - namespace.yaml\n  - deployment-api.yaml\n", buf.String())

	var got report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport, got)
}

func TestWriter_Table(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{
			name: "struct",
			data: sampleReport,
			want: []string{"FIELD", "AppName", "web", "Files[0]", "namespace.yaml", "Files[1]", "Valid", "true"},
		},
		{
			name: "map",
			data: map[string]any{"tiers": map[string]int{"api": 2}},
			want: []string{"tiers.api", "2"},
		},
		{
			name: "nil pointer field",
			data: struct{ Service *report }{},
			want: []string{"Service", "<nil>"},
		},
		{
			name: "empty",
			data: struct{}{},
			want: []string{"<empty>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), tt.data))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestWriter_TableRowsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(),
		map[string]string{"zeta": "1", "alpha": "2"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "alpha"))
	assert.True(t, strings.HasPrefix(lines[2], "zeta"))
}

func TestNewWriter_Fallbacks(t *testing.T) {
	w := NewWriter("xml", nil)
	assert.Equal(t, FormatJSON, w.format)
	assert.Equal(t, os.Stdout, w.output)
	assert.NoError(t, w.Close())

	s := NewStdoutWriter(FormatTable)
	assert.Equal(t, FormatTable, s.format)
}

func TestWriter_SerializeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, sampleReport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestWriter_EncodingError(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(context.Background(), make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serialize to json")
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		for _, p := range []string{"", "  ", StdoutURI} {
			s, err := NewFileWriterOrStdout(FormatYAML, p)
			require.NoError(t, err)
			w, ok := s.(*Writer)
			require.True(t, ok)
			assert.Equal(t, os.Stdout, w.output)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		s, err := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, err)
		require.NoError(t, s.Serialize(context.Background(), sampleReport))

		c, ok := s.(Closer)
		require.True(t, ok)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close(), "second close is a no-op")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "appName: web")
	})

	t.Run("unwritable path", func(t *testing.T) {
		s, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "report.json"))
		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "failed to create output file")
	})
}
