// Package testutil provides helpers for building in-memory theme
// repositories in tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/bootsplash/splashgen/pkg/filesystem"
	"github.com/bootsplash/splashgen/pkg/types"
)

// NewMemFS returns an empty in-memory filesystem
func NewMemFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// ThemeSpec describes a fake theme to create
type ThemeSpec struct {
	Name   string
	Module string

	// Refs are theme names the descriptor references through
	// build-store paths under StoreRoot
	Refs []string

	// ExtraFiles maps relative paths inside the theme directory to
	// file content
	ExtraFiles map[string]string
}

// StoreRoot is the build-store root used by all test fixtures
const StoreRoot = "/blk/store"

// StoreThemePath returns a build-store reference to a theme, the way
// descriptors embed them
func StoreThemePath(theme string) string {
	return fmt.Sprintf("%s/abc123-plymouth/share/plymouth/themes/%s", StoreRoot, theme)
}

// WriteTheme creates a theme directory with a descriptor under dir
func WriteTheme(t *testing.T, fsys types.FS, dir string, spec ThemeSpec) {
	t.Helper()

	themeDir := filepath.Join(dir, spec.Name)
	require.NoError(t, fsys.MkdirAll(themeDir, 0755))

	content := "[Plymouth Theme]\n"
	content += "Name=" + spec.Name + "\n"
	content += "ModuleName=" + spec.Module + "\n"
	for i, ref := range spec.Refs {
		content += fmt.Sprintf("Ref%d=%s/%s.plymouth\n", i, StoreThemePath(ref), ref)
	}

	descriptorPath := filepath.Join(themeDir, spec.Name+".plymouth")
	require.NoError(t, fsys.WriteFile(descriptorPath, []byte(content), 0644))

	for rel, data := range spec.ExtraFiles {
		path := filepath.Join(themeDir, rel)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(data), 0644))
	}
}

// WritePlugins populates a plugin directory with fake module binaries
// and renderers
func WritePlugins(t *testing.T, fsys types.FS, dir string, modules, renderers []string) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "renderers"), 0755))
	for _, name := range modules {
		require.NoError(t, fsys.WriteFile(filepath.Join(dir, name), []byte("module "+name), 0644))
	}
	for _, name := range renderers {
		require.NoError(t, fsys.WriteFile(filepath.Join(dir, "renderers", name), []byte("renderer "+name), 0644))
	}
}

// Exists reports whether a path exists on the filesystem
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}
