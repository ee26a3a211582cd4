package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// faultyFS fails the n-th call (1-based) of one operation
type faultyFS struct {
	ports.FileSystem
	op    string
	fail  int
	calls int
}

func (f *faultyFS) hit(op string) error {
	if op != f.op {
		return nil
	}
	f.calls++
	if f.calls == f.fail {
		return errors.New("injected " + op + " failure")
	}
	return nil
}

func (f *faultyFS) CreateTemp(dir, pattern string) (ports.File, error) {
	if err := f.hit("create"); err != nil {
		return nil, err
	}
	return f.FileSystem.CreateTemp(dir, pattern)
}

func (f *faultyFS) Rename(oldpath, newpath string) error {
	if err := f.hit("rename"); err != nil {
		return err
	}
	return f.FileSystem.Rename(oldpath, newpath)
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	require.NoError(t, filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	}))
	return out
}

func artifacts() []entities.Artifact {
	return []entities.Artifact{
		{Name: "intro.pptx", Data: []byte("one")},
		{Name: "sub/details.pptx", Data: []byte("two")},
	}
}

func TestSink_Persist(t *testing.T) {
	dest := t.TempDir()

	require.NoError(t, NewSink().Persist(context.Background(), dest, artifacts()))

	assert.ElementsMatch(t, []string{"intro.pptx", "sub/details.pptx"}, listFiles(t, dest))
	data, err := os.ReadFile(filepath.Join(dest, "sub", "details.pptx"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestSink_PersistOverwrites(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "intro.pptx"), []byte("old"), 0600))

	require.NoError(t, NewSink().Persist(context.Background(), dest, artifacts()[:1]))

	data, err := os.ReadFile(filepath.Join(dest, "intro.pptx"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestSink_Rollback(t *testing.T) {
	tests := []struct {
		name      string
		op        string
		fail      int
		wantFiles []string
	}{
		{name: "staging failure leaves nothing", op: "create", fail: 2, wantFiles: nil},
		{name: "commit failure removes remaining temps", op: "rename", fail: 2, wantFiles: []string{"intro.pptx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := t.TempDir()
			fs := &faultyFS{FileSystem: ports.NewRealFileSystem(), op: tt.op, fail: tt.fail}

			err := NewSink(WithSinkFileSystem(fs)).Persist(context.Background(), dest, artifacts())

			require.Error(t, err)
			assert.True(t, entities.IsKind(err, entities.ErrorPersistenceFailure))
			assert.Equal(t, tt.wantFiles, listFiles(t, dest))
		})
	}
}

func TestSink_RejectsEscapingNames(t *testing.T) {
	for _, name := range []string{"", "../evil.pptx", "/abs.pptx"} {
		t.Run(name, func(t *testing.T) {
			dest := t.TempDir()
			err := NewSink().Persist(context.Background(), dest, []entities.Artifact{
				{Name: "ok.pptx", Data: []byte("x")},
				{Name: name, Data: []byte("y")},
			})

			require.Error(t, err)
			assert.True(t, entities.IsKind(err, entities.ErrorPersistenceFailure))
			assert.Empty(t, listFiles(t, dest))
		})
	}
}

func TestSink_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSink().Persist(ctx, t.TempDir(), artifacts())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
