// Package build orchestrates a complete splashgen run: index the
// theme repository, resolve the selected theme's closure, render the
// daemon config, and assemble the requested destination trees.
package build

import (
	"golang.org/x/sync/errgroup"

	"github.com/bootsplash/splashgen/pkg/assemble"
	"github.com/bootsplash/splashgen/pkg/config"
	"github.com/bootsplash/splashgen/pkg/daemonconf"
	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/lifecycle"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/repository"
	"github.com/bootsplash/splashgen/pkg/resolver"
	"github.com/bootsplash/splashgen/pkg/types"
)

// Request describes one build run
type Request struct {
	Config *config.Config
	FS     types.FS
	Envs   []types.TargetEnvironment
}

// Result reports what a successful run produced
type Result struct {
	// Roots maps each assembled environment to its destination root
	Roots map[types.TargetEnvironment]string

	// Themes is the resolved closure, in resolution order
	Themes []string

	// Missing lists referenced themes absent from the index. The run
	// still succeeded; the operator gets a warning per entry.
	Missing []resolver.MissingDependency
}

// Run executes the build. Environment assemblies are independent
// (disjoint destination roots) and run in parallel; a failure in one
// aborts the run, but the all-or-nothing guarantee holds per
// environment, not across environments.
func Run(req Request) (*Result, error) {
	logger := logging.GetLogger("build")
	cfg := req.Config
	ctx := cfg.BuildContext(req.FS)

	ix, err := repository.Build(req.FS, ctx.ThemesDir, cfg.Splash.ThemePackages...)
	if err != nil {
		return nil, err
	}

	resolved, err := resolver.Resolve(ctx, ix, cfg.Splash.Theme)
	if err != nil {
		return nil, err
	}

	conf := daemonconf.Render(cfg.Options())

	var g errgroup.Group
	for _, env := range req.Envs {
		env := env
		g.Go(func() error {
			opts := assemble.Options{
				Env:        env,
				Set:        resolved.Set,
				Selected:   cfg.Splash.Theme,
				Logo:       cfg.Splash.Logo,
				Font:       cfg.Splash.Font,
				Defaults:   cfg.Trees.DefaultsFile,
				DaemonConf: conf,
			}
			if err := assemble.Assemble(ctx, opts); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), "%s assembly failed", env)
			}

			manifest := lifecycle.BuildManifest(ctx, env)
			data, err := manifest.Marshal()
			if err != nil {
				return cleanupEnv(ctx, env, err)
			}
			manifestPath := paths.LifecycleManifestPath(ctx.RootFor(env))
			if err := req.FS.WriteFile(manifestPath, data, 0644); err != nil {
				return cleanupEnv(ctx, env,
					errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", manifestPath))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Roots:   make(map[types.TargetEnvironment]string, len(req.Envs)),
		Themes:  resolved.Set.Names(),
		Missing: resolved.Missing,
	}
	for _, env := range req.Envs {
		result.Roots[env] = ctx.RootFor(env)
	}

	logger.Info().
		Strs("themes", result.Themes).
		Int("environments", len(req.Envs)).
		Msg("build completed")
	return result, nil
}

// cleanupEnv drops the assembled tree for env after a late failure, so
// a tree missing its lifecycle manifest is never left for consumers.
func cleanupEnv(ctx types.BuildContext, env types.TargetEnvironment, cause error) error {
	root := ctx.RootFor(env)
	if rmErr := ctx.FS.RemoveAll(root); rmErr != nil {
		logger := logging.GetLogger("build")
		logger.Error().Err(rmErr).Str("root", root).Msg("failed to remove partial tree")
	}
	return cause
}
