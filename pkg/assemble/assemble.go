// Package assemble materializes a resolved theme set into a
// destination tree for one target environment.
//
// Assembly runs in two phases: planning produces the full artifact
// list for the pass (pure, no writes), then the artifacts are written.
// Theme copies are independent of each other once the closure is
// known, so each theme's artifacts are written on their own goroutine.
// The path rewriter runs strictly after all writes for the tree
// complete. A failed pass removes whatever it wrote: consumers get
// a complete tree or none.
package assemble

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/filesystem"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/rewrite"
	"github.com/bootsplash/splashgen/pkg/types"
)

// Options parameterize one assembly pass
type Options struct {
	Env types.TargetEnvironment
	Set *types.ThemeSet

	// Selected is the root theme name, used in diagnostics when the
	// selection cannot be satisfied
	Selected string

	// Logo and Font are source paths for the boot logo and font file
	Logo string
	Font string

	// Defaults is the daemon's shipped plymouthd.defaults, copied into
	// the tree when set
	Defaults string

	// DaemonConf is the generated plymouthd.conf content
	DaemonConf []byte
}

// Assemble builds the destination tree for opts.Env. The theme set is
// never mutated; only the destination root is written to.
func Assemble(ctx types.BuildContext, opts Options) error {
	logger := logging.GetLogger("assemble")
	done := logging.LogOperationStart(logger, "assemble-"+opts.Env.String())
	defer done()

	root := ctx.RootFor(opts.Env)

	themeGroups, shared, err := plan(ctx, opts, root)
	if err != nil {
		return err
	}

	if err := writeAll(ctx, themeGroups, shared); err != nil {
		// All-or-nothing per environment: drop the partial tree so no
		// downstream consumer picks it up.
		if rmErr := ctx.FS.RemoveAll(root); rmErr != nil {
			logger.Error().Err(rmErr).Str("root", root).Msg("failed to remove partial tree")
		}
		return err
	}

	if err := rewrite.Tree(ctx, opts.Env); err != nil {
		if rmErr := ctx.FS.RemoveAll(root); rmErr != nil {
			logger.Error().Err(rmErr).Str("root", root).Msg("failed to remove partial tree")
		}
		return err
	}

	logger.Info().
		Str("env", opts.Env.String()).
		Str("root", root).
		Strs("themes", opts.Set.Names()).
		Msg("destination tree assembled")
	return nil
}

// plan computes every artifact of the pass before anything is written.
// Theme artifacts are grouped per theme so writes can be parallelized.
func plan(ctx types.BuildContext, opts Options, root string) (map[string][]types.Artifact, []types.Artifact, error) {
	themeGroups := make(map[string][]types.Artifact)
	for _, theme := range opts.Set.Themes() {
		if _, err := ctx.FS.Stat(theme.AssetDir); err != nil {
			if theme.Name == opts.Selected {
				return nil, nil, errors.Wrapf(err, errors.ErrThemeNotFound,
					"assets for theme %q (selected by splash.theme) are missing", theme.Name).
					WithDetail("theme", theme.Name).
					WithDetail("option", "splash.theme")
			}
			return nil, nil, errors.Wrapf(err, errors.ErrFileCopy,
				"assets for theme %q are missing", theme.Name)
		}
		group, err := planTree(ctx.FS, theme.AssetDir, paths.ThemeDir(root, theme.Name))
		if err != nil {
			return nil, nil, err
		}
		themeGroups[theme.Name] = group
	}

	shared, err := planShared(ctx, opts, root)
	if err != nil {
		return nil, nil, err
	}
	return themeGroups, shared, nil
}

// planTree lists one source tree's files as copy artifacts
func planTree(fsys types.FS, src, dst string) ([]types.Artifact, error) {
	var artifacts []types.Artifact
	err := filesystem.WalkFiles(fsys, src, func(path string, entry fs.DirEntry) error {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, types.Artifact{
			DestinationPath: filepath.Join(dst, rel),
			SourcePath:      path,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCopy, "cannot plan copy of %s", src)
	}
	return artifacts, nil
}

// planShared lists the non-theme artifacts: plugins, renderers, logo,
// font, logo aliases, the generated config and the shipped defaults
func planShared(ctx types.BuildContext, opts Options, root string) ([]types.Artifact, error) {
	logger := logging.GetLogger("assemble")
	var artifacts []types.Artifact

	plugins, err := planPlugins(ctx, opts.Env, root)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, plugins...)

	if opts.Logo != "" {
		artifacts = append(artifacts, types.Artifact{
			DestinationPath: paths.LogoPath(root),
			SourcePath:      opts.Logo,
		})
		// The spinner theme reads its watermark, and bgrt its header
		// image, from inside the theme directory. Aliasing the logo
		// there only makes sense in the full tree.
		if opts.Env == types.EnvFull {
			if opts.Set.Contains("spinner") {
				artifacts = append(artifacts, types.Artifact{
					DestinationPath: filepath.Join(paths.ThemeDir(root, "spinner"), paths.WatermarkName),
					SourcePath:      opts.Logo,
				})
			}
			if opts.Set.Contains("bgrt") {
				artifacts = append(artifacts, types.Artifact{
					DestinationPath: filepath.Join(paths.ThemeDir(root, "bgrt"), paths.HeaderImageName),
					SourcePath:      opts.Logo,
				})
			}
		}
	}

	if opts.Font != "" {
		artifacts = append(artifacts, types.Artifact{
			DestinationPath: filepath.Join(paths.FontsDir(root), filepath.Base(opts.Font)),
			SourcePath:      opts.Font,
		})
	}

	// The shipped defaults file is optional; not every daemon package
	// installs one
	if opts.Defaults != "" {
		if _, err := ctx.FS.Stat(opts.Defaults); err == nil {
			artifacts = append(artifacts, types.Artifact{
				DestinationPath: paths.DaemonDefaultsPath(root),
				SourcePath:      opts.Defaults,
			})
		} else {
			logger.Debug().Str("path", opts.Defaults).Msg("defaults file not present, skipping")
		}
	}

	artifacts = append(artifacts, types.Artifact{
		DestinationPath: paths.DaemonConfPath(root),
		Content:         opts.DaemonConf,
	})
	return artifacts, nil
}

// planPlugins lists the renderer and module binaries to ship. The
// minimal tree takes only .so binaries and drops the windowing
// renderer: no display server can run before the root filesystem is
// mounted.
func planPlugins(ctx types.BuildContext, env types.TargetEnvironment, root string) ([]types.Artifact, error) {
	if ctx.PluginsDir == "" {
		return nil, nil
	}

	var artifacts []types.Artifact
	entries, err := ctx.FS.ReadDir(ctx.PluginsDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCopy, "cannot read plugins directory %s", ctx.PluginsDir)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if name != paths.RenderersDirName {
				continue
			}
			renderers, err := ctx.FS.ReadDir(filepath.Join(ctx.PluginsDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileCopy, "cannot read renderers directory")
			}
			for _, renderer := range renderers {
				if renderer.IsDir() {
					continue
				}
				if env == types.EnvMinimal && renderer.Name() == paths.WindowingRenderer {
					continue
				}
				artifacts = append(artifacts, types.Artifact{
					DestinationPath: filepath.Join(paths.RenderersDir(root), renderer.Name()),
					SourcePath:      filepath.Join(ctx.PluginsDir, name, renderer.Name()),
				})
			}
			continue
		}
		if env == types.EnvMinimal && !strings.HasSuffix(name, ".so") {
			continue
		}
		artifacts = append(artifacts, types.Artifact{
			DestinationPath: filepath.Join(paths.PluginsDir(root), name),
			SourcePath:      filepath.Join(ctx.PluginsDir, name),
		})
	}
	return artifacts, nil
}

// writeAll writes theme groups concurrently, one goroutine per theme.
// The theme groups touch disjoint paths, so they can race freely; the
// shared artifacts are written after every theme group has finished,
// because the logo aliases land inside theme directories and must
// overwrite any same-named file the theme ships.
func writeAll(ctx types.BuildContext, themeGroups map[string][]types.Artifact, shared []types.Artifact) error {
	var g errgroup.Group
	for name, group := range themeGroups {
		name, group := name, group
		g.Go(func() error {
			for _, artifact := range group {
				if err := writeArtifact(ctx.FS, artifact); err != nil {
					return errors.Wrapf(err, errors.ErrFileCopy, "copying theme %s failed", name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, artifact := range shared {
		if err := writeArtifact(ctx.FS, artifact); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact materializes one artifact, creating parent directories
func writeArtifact(fsys types.FS, artifact types.Artifact) error {
	if err := fsys.MkdirAll(filepath.Dir(artifact.DestinationPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(artifact.DestinationPath))
	}
	if artifact.SourcePath != "" {
		return filesystem.CopyFile(fsys, artifact.SourcePath, artifact.DestinationPath)
	}
	if err := fsys.WriteFile(artifact.DestinationPath, artifact.Content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", artifact.DestinationPath)
	}
	return nil
}
