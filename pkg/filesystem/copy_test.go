package filesystem_test

import (
	"io/fs"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootsplash/splashgen/pkg/filesystem"
	"github.com/bootsplash/splashgen/pkg/testutil"
)

func TestCopyFile(t *testing.T) {
	fsys := testutil.NewMemFS()
	require.NoError(t, fsys.MkdirAll("/src", 0755))
	require.NoError(t, fsys.WriteFile("/src/a.txt", []byte("hello"), 0600))
	require.NoError(t, fsys.MkdirAll("/dst", 0755))

	require.NoError(t, filesystem.CopyFile(fsys, "/src/a.txt", "/dst/a.txt"))

	data, err := fsys.ReadFile("/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCopyFile_MissingSource(t *testing.T) {
	fsys := testutil.NewMemFS()
	assert.Error(t, filesystem.CopyFile(fsys, "/nope", "/dst"))
}

func TestCopyTree(t *testing.T) {
	fsys := testutil.NewMemFS()
	require.NoError(t, fsys.MkdirAll("/src/sub/deep", 0755))
	require.NoError(t, fsys.WriteFile("/src/top.txt", []byte("top"), 0644))
	require.NoError(t, fsys.WriteFile("/src/sub/mid.txt", []byte("mid"), 0644))
	require.NoError(t, fsys.WriteFile("/src/sub/deep/leaf.txt", []byte("leaf"), 0644))

	require.NoError(t, filesystem.CopyTree(fsys, "/src", "/dst"))

	for path, want := range map[string]string{
		"/dst/top.txt":           "top",
		"/dst/sub/mid.txt":       "mid",
		"/dst/sub/deep/leaf.txt": "leaf",
	} {
		data, err := fsys.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, string(data))
	}
}

func TestWalkFiles(t *testing.T) {
	fsys := testutil.NewMemFS()
	require.NoError(t, fsys.MkdirAll("/root/a/b", 0755))
	require.NoError(t, fsys.WriteFile("/root/one", []byte("1"), 0644))
	require.NoError(t, fsys.WriteFile("/root/a/two", []byte("2"), 0644))
	require.NoError(t, fsys.WriteFile("/root/a/b/three", []byte("3"), 0644))

	var visited []string
	err := filesystem.WalkFiles(fsys, "/root", func(path string, entry fs.DirEntry) error {
		assert.False(t, entry.IsDir())
		rel, err := filepath.Rel("/root", path)
		require.NoError(t, err)
		visited = append(visited, rel)
		return nil
	})
	require.NoError(t, err)

	sort.Strings(visited)
	assert.Equal(t, []string{"a/b/three", "a/two", "one"}, visited)
}
