// Package repository builds the theme repository index: the catalog of
// every theme available to an assembly pass, keyed by name.
//
// The index is built once, from the base themes directory plus any
// extra theme package directories from the selection, and is immutable
// afterwards. Extra packages are merged after the base directory and
// override themes with the same name.
package repository

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bootsplash/splashgen/pkg/descriptor"
	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/types"
)

// DescriptorExt is the filename extension of theme descriptor files
const DescriptorExt = ".plymouth"

// Index catalogs the themes available for resolution and assembly
type Index struct {
	themes map[string]types.Theme
}

// Build scans the base themes directory and every extra package
// directory for theme subdirectories. A valid theme directory holds
// exactly one *.plymouth descriptor naming the theme's renderer
// module; directories violating that invariant are skipped with a
// warning so one broken theme package cannot break the whole index.
func Build(fsys types.FS, baseDir string, extraDirs ...string) (*Index, error) {
	logger := logging.GetLogger("repository")
	ix := &Index{themes: make(map[string]types.Theme)}

	dirs := append([]string{baseDir}, extraDirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			if dir == baseDir {
				return nil, errors.Wrapf(err, errors.ErrRepositoryAccess,
					"cannot read themes directory %s", dir)
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("skipping unreadable theme package")
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			theme, err := discover(fsys, filepath.Join(dir, entry.Name()), entry.Name())
			if err != nil {
				logger.Warn().Err(err).Str("theme", entry.Name()).Msg("skipping invalid theme directory")
				continue
			}
			if _, exists := ix.themes[theme.Name]; exists {
				logger.Debug().Str("theme", theme.Name).Str("dir", dir).Msg("theme overridden by later package")
			}
			ix.themes[theme.Name] = theme
		}
	}

	logger.Debug().Int("themes", len(ix.themes)).Msg("repository index built")
	return ix, nil
}

// discover validates a single theme directory and returns its record
func discover(fsys types.FS, assetDir, name string) (types.Theme, error) {
	entries, err := fsys.ReadDir(assetDir)
	if err != nil {
		return types.Theme{}, errors.Wrapf(err, errors.ErrThemeInvalid,
			"cannot read theme directory %s", assetDir)
	}

	var descriptors []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), DescriptorExt) {
			descriptors = append(descriptors, entry.Name())
		}
	}
	if len(descriptors) != 1 {
		return types.Theme{}, errors.Newf(errors.ErrThemeInvalid,
			"theme %s has %d descriptor files, want exactly 1", name, len(descriptors))
	}

	descriptorFile := filepath.Join(assetDir, descriptors[0])
	data, err := fsys.ReadFile(descriptorFile)
	if err != nil {
		return types.Theme{}, errors.Wrapf(err, errors.ErrThemeInvalid,
			"cannot read descriptor %s", descriptorFile)
	}
	moduleName, err := descriptor.ModuleName(data)
	if err != nil {
		return types.Theme{}, err
	}

	return types.Theme{
		Name:           name,
		ModuleName:     moduleName,
		AssetDir:       assetDir,
		DescriptorFile: descriptorFile,
	}, nil
}

// Lookup returns the theme with the given name
func (ix *Index) Lookup(name string) (types.Theme, bool) {
	t, ok := ix.themes[name]
	return t, ok
}

// Names returns all cataloged theme names, sorted
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.themes))
	for name := range ix.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of cataloged themes
func (ix *Index) Len() int {
	return len(ix.themes)
}
