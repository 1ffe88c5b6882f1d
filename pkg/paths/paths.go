// Package paths provides centralized path handling for splashgen. It
// defines the fixed layout of an assembled destination tree and the
// pattern build-store theme references follow, so the resolver and the
// rewriter agree on what a reference looks like.
package paths

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Destination tree layout.
// IMPORTANT: These constants define the layout the external daemon and
// the init-system units expect and are NOT user-configurable. Only the
// tree roots themselves come from configuration.
const (
	// DaemonConfName is the generated daemon configuration file
	DaemonConfName = "plymouthd.conf"

	// DaemonDefaultsName is the daemon's shipped defaults file
	DaemonDefaultsName = "plymouthd.defaults"

	// LogoName is the boot logo file at the tree root
	LogoName = "logo.png"

	// ThemesDirName is the subdirectory holding assembled themes
	ThemesDirName = "themes"

	// PluginsDirName is the subdirectory for renderer module binaries
	PluginsDirName = "plugins"

	// RenderersDirName is the subdirectory for display renderers
	RenderersDirName = "renderers"

	// FontsDirName is the subdirectory for font files
	FontsDirName = "fonts"

	// WindowingRenderer is the renderer that needs a running display
	// server. It is useless before the root filesystem is mounted, so
	// minimal-environment assembly strips it.
	WindowingRenderer = "x11.so"

	// WatermarkName is the generic logo alias consumed by the spinner
	// theme
	WatermarkName = "watermark.png"

	// HeaderImageName is the logo alias consumed by the bgrt theme
	HeaderImageName = "header-image.png"

	// StoreThemesSegment is the path segment under a build-store
	// component where shipped themes live
	StoreThemesSegment = "share/plymouth/themes"

	// LifecycleManifestName is the declarative wire-up record written
	// at the tree root for the init-system consumer
	LifecycleManifestName = "lifecycle.yaml"
)

// DaemonConfPath returns the daemon config path under a tree root
func DaemonConfPath(root string) string {
	return filepath.Join(root, DaemonConfName)
}

// DaemonDefaultsPath returns the defaults file path under a tree root
func DaemonDefaultsPath(root string) string {
	return filepath.Join(root, DaemonDefaultsName)
}

// LogoPath returns the logo path under a tree root
func LogoPath(root string) string {
	return filepath.Join(root, LogoName)
}

// ThemesDir returns the themes directory under a tree root
func ThemesDir(root string) string {
	return filepath.Join(root, ThemesDirName)
}

// ThemeDir returns a single theme's directory under a tree root
func ThemeDir(root, theme string) string {
	return filepath.Join(root, ThemesDirName, theme)
}

// PluginsDir returns the plugins directory under a tree root
func PluginsDir(root string) string {
	return filepath.Join(root, PluginsDirName)
}

// RenderersDir returns the renderers directory under a tree root
func RenderersDir(root string) string {
	return filepath.Join(root, RenderersDirName)
}

// LifecycleManifestPath returns the wire-up manifest path under a
// tree root
func LifecycleManifestPath(root string) string {
	return filepath.Join(root, LifecycleManifestName)
}

// FontsDir returns the fonts directory under a tree root
func FontsDir(root string) string {
	return filepath.Join(root, FontsDirName)
}

// themeName matches the directory names plymouth themes use
const themeName = `[A-Za-z0-9._][A-Za-z0-9._-]*`

// StoreThemeRef compiles the pattern a build-store theme reference
// follows: <storeRoot>/<component>/share/plymouth/themes/<theme>.
// Submatch 1 is the theme name. The pattern is a strict superset match
// over the store-root prefix, so text produced by rewriting such a
// reference can never match it again.
func StoreThemeRef(storeRoot string) *regexp.Regexp {
	root := strings.TrimRight(storeRoot, "/")
	return regexp.MustCompile(
		regexp.QuoteMeta(root) + `/[^/\s]+/` + regexp.QuoteMeta(StoreThemesSegment) + `/(` + themeName + `)`)
}
