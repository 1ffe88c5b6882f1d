package assemble_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootsplash/splashgen/pkg/assemble"
	"github.com/bootsplash/splashgen/pkg/daemonconf"
	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/repository"
	"github.com/bootsplash/splashgen/pkg/resolver"
	"github.com/bootsplash/splashgen/pkg/testutil"
	"github.com/bootsplash/splashgen/pkg/types"
)

const (
	themesDir  = "/usr/share/plymouth/themes"
	pluginsDir = "/usr/lib/plymouth"
	logoPath   = "/usr/share/pixmaps/logo.png"
	fontPath   = "/usr/share/fonts/OpenSans-Regular.ttf"
)

// fixture builds a realistic source layout: two themes where bgrt
// references spinner, module plugins and renderers including the
// windowing one, a logo and a font.
func fixture(t *testing.T) (types.BuildContext, *types.ThemeSet) {
	t.Helper()
	fsys := testutil.NewMemFS()

	testutil.WriteTheme(t, fsys, themesDir, testutil.ThemeSpec{
		Name:   "bgrt",
		Module: "two-step",
		Refs:   []string{"spinner"},
		ExtraFiles: map[string]string{
			"images/progress.png": "png bytes",
		},
	})
	testutil.WriteTheme(t, fsys, themesDir, testutil.ThemeSpec{
		Name:   "spinner",
		Module: "two-step",
	})
	testutil.WritePlugins(t, fsys, pluginsDir,
		[]string{"two-step.so", "script.so", "label.so", "plymouthd.defaults"},
		[]string{"drm.so", "frame-buffer.so", "x11.so"})

	require.NoError(t, fsys.MkdirAll(filepath.Dir(logoPath), 0755))
	require.NoError(t, fsys.WriteFile(logoPath, []byte("logo bytes"), 0644))
	require.NoError(t, fsys.MkdirAll(filepath.Dir(fontPath), 0755))
	require.NoError(t, fsys.WriteFile(fontPath, []byte("font bytes"), 0644))

	ctx := types.BuildContext{
		FS:          fsys,
		StoreRoot:   testutil.StoreRoot,
		ThemesDir:   themesDir,
		PluginsDir:  pluginsDir,
		FullRoot:    "/etc/plymouth",
		MinimalRoot: "/initrd/etc/plymouth",
		RuntimeDir:  "/run/plymouth",
	}

	ix, err := repository.Build(fsys, themesDir)
	require.NoError(t, err)
	resolved, err := resolver.Resolve(ctx, ix, "bgrt")
	require.NoError(t, err)
	require.Equal(t, []string{"bgrt", "spinner"}, resolved.Set.Names())

	return ctx, resolved.Set
}

func options(env types.TargetEnvironment, set *types.ThemeSet) assemble.Options {
	return assemble.Options{
		Env:      env,
		Set:      set,
		Selected: "bgrt",
		Logo:     logoPath,
		Font:     fontPath,
		DaemonConf: daemonconf.Render(types.ConfigOptions{
			Theme: "bgrt",
		}),
	}
}

func TestAssemble_Full(t *testing.T) {
	ctx, set := fixture(t)
	require.NoError(t, assemble.Assemble(ctx, options(types.EnvFull, set)))

	root := ctx.FullRoot
	fsys := ctx.FS

	// Both resolved themes copied in full
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "bgrt"), "bgrt.plymouth")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "bgrt"), "images", "progress.png")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "spinner"), "spinner.plymouth")))

	// Full keeps every plugin file and renderer, including windowing
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.PluginsDir(root), "two-step.so")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.PluginsDir(root), "plymouthd.defaults")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.RenderersDir(root), "drm.so")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.RenderersDir(root), paths.WindowingRenderer)))

	// Logo, aliases, font and config in place
	logo, err := fsys.ReadFile(paths.LogoPath(root))
	require.NoError(t, err)
	assert.Equal(t, "logo bytes", string(logo))

	watermark, err := fsys.ReadFile(filepath.Join(paths.ThemeDir(root, "spinner"), paths.WatermarkName))
	require.NoError(t, err)
	assert.Equal(t, "logo bytes", string(watermark))

	header, err := fsys.ReadFile(filepath.Join(paths.ThemeDir(root, "bgrt"), paths.HeaderImageName))
	require.NoError(t, err)
	assert.Equal(t, "logo bytes", string(header))

	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.FontsDir(root), "OpenSans-Regular.ttf")))

	conf, err := fsys.ReadFile(paths.DaemonConfPath(root))
	require.NoError(t, err)
	assert.Equal(t, "[Daemon]\nShowDelay=0\nDeviceTimeout=0\nTheme=bgrt\n", string(conf))

	// Store references rewritten after copy
	data, err := fsys.ReadFile(filepath.Join(paths.ThemeDir(root, "bgrt"), "bgrt.plymouth"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), testutil.StoreRoot)
	assert.Contains(t, string(data), paths.ThemeDir(root, "spinner"))
}

func TestAssemble_Minimal(t *testing.T) {
	ctx, set := fixture(t)
	require.NoError(t, assemble.Assemble(ctx, options(types.EnvMinimal, set)))

	root := ctx.MinimalRoot
	fsys := ctx.FS

	// Themes still complete
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "bgrt"), "bgrt.plymouth")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "spinner"), "spinner.plymouth")))

	// Only .so module binaries; the windowing renderer is stripped
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.PluginsDir(root), "two-step.so")))
	assert.False(t, testutil.Exists(fsys, filepath.Join(paths.PluginsDir(root), "plymouthd.defaults")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.RenderersDir(root), "drm.so")))
	assert.True(t, testutil.Exists(fsys, filepath.Join(paths.RenderersDir(root), "frame-buffer.so")))
	assert.False(t, testutil.Exists(fsys, filepath.Join(paths.RenderersDir(root), paths.WindowingRenderer)))

	// No alias links outside the full tree
	assert.False(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "spinner"), paths.WatermarkName)))
	assert.False(t, testutil.Exists(fsys, filepath.Join(paths.ThemeDir(root, "bgrt"), paths.HeaderImageName)))

	// Logo and generated config still ship
	assert.True(t, testutil.Exists(fsys, paths.LogoPath(root)))
	assert.True(t, testutil.Exists(fsys, paths.DaemonConfPath(root)))

	// Rewritten references point at the minimal root
	data, err := fsys.ReadFile(filepath.Join(paths.ThemeDir(root, "bgrt"), "bgrt.plymouth"))
	require.NoError(t, err)
	assert.Contains(t, string(data), paths.ThemeDir(root, "spinner"))
}

func TestAssemble_EnvironmentsAreDisjoint(t *testing.T) {
	ctx, set := fixture(t)
	require.NoError(t, assemble.Assemble(ctx, options(types.EnvFull, set)))
	require.NoError(t, assemble.Assemble(ctx, options(types.EnvMinimal, set)))

	// The full tree is unaffected by the minimal pass
	assert.True(t, testutil.Exists(ctx.FS, filepath.Join(paths.RenderersDir(ctx.FullRoot), paths.WindowingRenderer)))
	assert.False(t, testutil.Exists(ctx.FS, filepath.Join(paths.RenderersDir(ctx.MinimalRoot), paths.WindowingRenderer)))
}

func TestAssemble_MissingSelectedAssetsIsFatal(t *testing.T) {
	ctx, set := fixture(t)
	require.NoError(t, ctx.FS.RemoveAll(filepath.Join(themesDir, "bgrt")))

	err := assemble.Assemble(ctx, options(types.EnvFull, set))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))
	assert.Contains(t, err.Error(), `"bgrt"`)
	assert.Contains(t, err.Error(), "splash.theme")

	// Nothing was written
	assert.False(t, testutil.Exists(ctx.FS, ctx.FullRoot))
}

// A theme may ship its own watermark; the configured logo must still
// win, so the alias write has to land after the theme copy.
func TestAssemble_ConfiguredLogoOverridesThemeWatermark(t *testing.T) {
	fsys := testutil.NewMemFS()
	testutil.WriteTheme(t, fsys, themesDir, testutil.ThemeSpec{
		Name:   "spinner",
		Module: "two-step",
		ExtraFiles: map[string]string{
			paths.WatermarkName: "theme shipped watermark",
		},
	})
	require.NoError(t, fsys.MkdirAll(filepath.Dir(logoPath), 0755))
	require.NoError(t, fsys.WriteFile(logoPath, []byte("logo bytes"), 0644))

	ctx := types.BuildContext{
		FS:        fsys,
		StoreRoot: testutil.StoreRoot,
		ThemesDir: themesDir,
		FullRoot:  "/etc/plymouth",
	}
	ix, err := repository.Build(fsys, themesDir)
	require.NoError(t, err)
	resolved, err := resolver.Resolve(ctx, ix, "spinner")
	require.NoError(t, err)

	require.NoError(t, assemble.Assemble(ctx, assemble.Options{
		Env:      types.EnvFull,
		Set:      resolved.Set,
		Selected: "spinner",
		Logo:     logoPath,
		DaemonConf: daemonconf.Render(types.ConfigOptions{
			Theme: "spinner",
		}),
	}))

	watermark, err := fsys.ReadFile(filepath.Join(paths.ThemeDir(ctx.FullRoot, "spinner"), paths.WatermarkName))
	require.NoError(t, err)
	assert.Equal(t, "logo bytes", string(watermark))
}

func TestAssemble_MissingDefaultsFileIsSkipped(t *testing.T) {
	ctx, set := fixture(t)
	opts := options(types.EnvFull, set)
	opts.Defaults = "/etc/plymouth-src/plymouthd.defaults"

	require.NoError(t, assemble.Assemble(ctx, opts))
	assert.False(t, testutil.Exists(ctx.FS, paths.DaemonDefaultsPath(ctx.FullRoot)))
	assert.True(t, testutil.Exists(ctx.FS, paths.DaemonConfPath(ctx.FullRoot)))
}

func TestAssemble_FailedPassLeavesNoPartialTree(t *testing.T) {
	ctx, set := fixture(t)

	// Break a transitive theme's assets after resolution so planning
	// fails mid-way
	require.NoError(t, ctx.FS.RemoveAll(filepath.Join(themesDir, "spinner")))

	err := assemble.Assemble(ctx, options(types.EnvFull, set))
	require.Error(t, err)
	assert.False(t, testutil.Exists(ctx.FS, ctx.FullRoot))
}
