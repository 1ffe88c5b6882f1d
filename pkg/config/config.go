// Package config loads the build selection: which theme, logo and
// font to assemble, the daemon timing options, and the tree roots for
// both target environments.
//
// Configuration is layered with koanf: embedded defaults first, then
// an optional splashgen.toml. The file is found via an explicit path,
// the SPLASHGEN_CONFIG environment variable, or splashgen.toml in the
// working directory, in that order.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/types"
)

// EnvConfigFile overrides the selection file location
const EnvConfigFile = "SPLASHGEN_CONFIG"

// DefaultConfigFile is looked up in the working directory when no
// explicit path is given
const DefaultConfigFile = "splashgen.toml"

// Splash is the theme selection and daemon options
type Splash struct {
	Theme         string   `koanf:"theme"`
	Logo          string   `koanf:"logo"`
	Font          string   `koanf:"font"`
	ShowDelay     int      `koanf:"show_delay"`
	DeviceTimeout int      `koanf:"device_timeout"`
	ExtraConfig   []string `koanf:"extra_config"`
	ThemePackages []string `koanf:"theme_packages"`
}

// Trees locates the source directories and destination roots
type Trees struct {
	StoreRoot    string `koanf:"store_root"`
	ThemesDir    string `koanf:"themes_dir"`
	PluginsDir   string `koanf:"plugins_dir"`
	DefaultsFile string `koanf:"defaults_file"`
	FullRoot     string `koanf:"full_root"`
	MinimalRoot  string `koanf:"minimal_root"`
	RuntimeDir   string `koanf:"runtime_dir"`
}

// Config is the full build selection
type Config struct {
	Splash Splash `koanf:"splash"`
	Trees  Trees  `koanf:"trees"`
}

// Load reads the layered configuration. path may be empty; the
// environment variable and working-directory fallbacks apply then.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("selection file loaded")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration")
	}
	return &cfg, nil
}

// Options converts the selection into daemon config options
func (c *Config) Options() types.ConfigOptions {
	return types.ConfigOptions{
		ShowDelay:     time.Duration(c.Splash.ShowDelay) * time.Second,
		DeviceTimeout: time.Duration(c.Splash.DeviceTimeout) * time.Second,
		Theme:         c.Splash.Theme,
		ExtraLines:    c.Splash.ExtraConfig,
	}
}

// BuildContext produces the context threaded through resolution,
// assembly and wire-up
func (c *Config) BuildContext(fsys types.FS) types.BuildContext {
	return types.BuildContext{
		FS:          fsys,
		StoreRoot:   c.Trees.StoreRoot,
		ThemesDir:   c.Trees.ThemesDir,
		PluginsDir:  c.Trees.PluginsDir,
		FullRoot:    c.Trees.FullRoot,
		MinimalRoot: c.Trees.MinimalRoot,
		RuntimeDir:  c.Trees.RuntimeDir,
	}
}
