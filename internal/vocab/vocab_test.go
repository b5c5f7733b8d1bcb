package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeTagsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_SkipsCommentsAndBlankLines(t *testing.T) {
	path := writeTagsFile(t, "ai\n# comment\n\nweb\n")

	v := Load(path, zap.NewNop())

	assert.Equal(t, []string{"ai", "web"}, v.Tags())
	assert.Equal(t, 2, v.Len())
}

func TestLoad_TrimsAndKeepsOrder(t *testing.T) {
	path := writeTagsFile(t, "  golang  \n\t# indented comment\nMachine Learning\r\n   \npython")

	v := Load(path, zap.NewNop())

	assert.Equal(t, []string{"golang", "Machine Learning", "python"}, v.Tags())
}

func TestLoad_KeepsDuplicates(t *testing.T) {
	path := writeTagsFile(t, "go\ngo\n")

	v := Load(path, zap.NewNop())

	assert.Equal(t, []string{"go", "go"}, v.Tags())
}

func TestLoad_MissingFile(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	v := Load(filepath.Join(t.TempDir(), "nope.txt"), logger)

	require.NotNil(t, v)
	assert.Empty(t, v.Tags())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 1, logs.FilterMessage("Tags file not found").Len())
}

func TestLookup(t *testing.T) {
	v := New([]string{"Python", "web", "Machine Learning"})

	tests := []struct {
		name      string
		candidate string
		want      string
		wantOK    bool
	}{
		{name: "exact", candidate: "web", want: "web", wantOK: true},
		{name: "lowercased candidate", candidate: "python", want: "Python", wantOK: true},
		{name: "multi word", candidate: "machine learning", want: "Machine Learning", wantOK: true},
		{name: "unknown", candidate: "blockchain", wantOK: false},
		{name: "empty", candidate: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Lookup(tt.candidate)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, v.Contains(tt.candidate))
		})
	}
}

func TestTagsReturnsCopy(t *testing.T) {
	v := New([]string{"a", "b"})
	tags := v.Tags()
	tags[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, v.Tags())
}
