package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
}

func names(files []ports.DiscoveredFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestSource_Discover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.md":                 "# B",
		"a.markdown":           "# A",
		"notes.txt":            "skip",
		"UPPER.MD":             "# Upper",
		"sub/c.md":             "# C",
		"sub/deeper/d.md":      "# D",
		"sub/deeper/image.png": "png",
	})

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{name: "top level only", recursive: false, want: []string{"UPPER.MD", "a.markdown", "b.md"}},
		{name: "recursive", recursive: true, want: []string{"UPPER.MD", "a.markdown", "b.md", "sub/c.md", "sub/deeper/d.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := NewSource().Discover(context.Background(), root, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(files))
		})
	}
}

func TestSource_DiscoverSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"talk.txt": "# Talk"})
	path := filepath.Join(root, "talk.txt")

	files, err := NewSource().Discover(context.Background(), path, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)
	assert.Equal(t, "talk.txt", files[0].Name)
}

func TestSource_DiscoverErrors(t *testing.T) {
	_, err := NewSource().Discover(context.Background(), filepath.Join(t.TempDir(), "missing"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input")

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.md": "# A"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewSource().Discover(ctx, root, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_DiscoverEmptyDirectory(t *testing.T) {
	files, err := NewSource().Discover(context.Background(), t.TempDir(), true)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSource_Load(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bom.md":     "\xef\xbb\xbf# Title",
		"invalid.md": "ok \xff end",
	})

	source := NewSource()
	files, err := source.Discover(context.Background(), root, false)
	require.NoError(t, err)

	docs, err := source.Load(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "bom.md", docs[0].Name)
	assert.Equal(t, "# Title", docs[0].Content)
	assert.Equal(t, "ok � end", docs[1].Content)
}

func TestSource_LoadMissingFile(t *testing.T) {
	_, err := NewSource().Load(context.Background(), []ports.DiscoveredFile{
		{Path: filepath.Join(t.TempDir(), "gone.md"), Name: "gone.md"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("a.md"))
	assert.True(t, IsMarkdown("dir/b.Markdown"))
	assert.False(t, IsMarkdown("c.mdx"))
	assert.False(t, IsMarkdown("README"))
}
