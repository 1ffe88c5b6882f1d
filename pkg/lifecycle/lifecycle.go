// Package lifecycle declares how the splash daemon's units map onto
// init-system target stages, and which runtime links the early-boot
// fallback path needs before any of those units start.
//
// Everything here is declarative data for the external init system;
// nothing in this package starts a process. The unit-to-target table
// is owned by this package and identical for both target
// environments.
package lifecycle

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bootsplash/splashgen/pkg/errors"
	"github.com/bootsplash/splashgen/pkg/logging"
	"github.com/bootsplash/splashgen/pkg/paths"
	"github.com/bootsplash/splashgen/pkg/types"
)

// unitTargets is the fixed mapping from the daemon's shipped units to
// the init-system targets that activate them
var unitTargets = []types.LifecycleBinding{
	{UnitName: "plymouth-start.service", Targets: []string{"sysinit.target"}},
	{UnitName: "plymouth-read-write.service", Targets: []string{"sysinit.target"}},
	{UnitName: "plymouth-quit.service", Targets: []string{"multi-user.target"}},
	{UnitName: "plymouth-quit-wait.service", Targets: []string{"multi-user.target"}},
	{UnitName: "plymouth-switch-root.service", Targets: []string{"initrd-switch-root.target"}},
	{UnitName: "plymouth-halt.service", Targets: []string{"halt.target"}},
	{UnitName: "plymouth-kexec.service", Targets: []string{"kexec.target"}},
	{UnitName: "plymouth-poweroff.service", Targets: []string{"poweroff.target"}},
	{UnitName: "plymouth-reboot.service", Targets: []string{"reboot.target"}},
	{UnitName: "systemd-ask-password-plymouth.path", Targets: []string{"multi-user.target"}},
	{UnitName: "systemd-ask-password-plymouth.service", Targets: []string{"multi-user.target"}},
}

// Bindings returns the lifecycle bindings for every unit shipped with
// the daemon. The result is the same regardless of target
// environment.
func Bindings() []types.LifecycleBinding {
	out := make([]types.LifecycleBinding, len(unitTargets))
	copy(out, unitTargets)
	return out
}

// RuntimeLinks returns the link bindings the early-boot fallback path
// materializes: known-good files from the minimal tree linked into the
// writable runtime directory, before any unit depending on the daemon
// starts.
func RuntimeLinks(ctx types.BuildContext) []types.LinkBinding {
	root := ctx.MinimalRoot
	return []types.LinkBinding{
		{Source: paths.DaemonConfPath(root), Link: filepath.Join(ctx.RuntimeDir, paths.DaemonConfName)},
		{Source: paths.DaemonDefaultsPath(root), Link: filepath.Join(ctx.RuntimeDir, paths.DaemonDefaultsName)},
		{Source: paths.LogoPath(root), Link: filepath.Join(ctx.RuntimeDir, paths.LogoName)},
		{Source: paths.ThemesDir(root), Link: filepath.Join(ctx.RuntimeDir, paths.ThemesDirName)},
	}
}

// ApplyLinks materializes link bindings as symlinks. Existing links
// are replaced so the step is safe to re-run across boots.
func ApplyLinks(fsys types.FS, links []types.LinkBinding) error {
	logger := logging.GetLogger("lifecycle")
	for _, link := range links {
		if err := fsys.MkdirAll(filepath.Dir(link.Link), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(link.Link))
		}
		if _, err := fsys.Lstat(link.Link); err == nil {
			if err := fsys.Remove(link.Link); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot replace %s", link.Link)
			}
		}
		if err := fsys.Symlink(link.Source, link.Link); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate,
				"cannot link %s to %s", link.Link, link.Source)
		}
		logger.Debug().Str("link", link.Link).Str("source", link.Source).Msg("runtime link created")
	}
	return nil
}

// Manifest is the declarative wire-up record handed to the external
// init-system consumer
type Manifest struct {
	Units        []types.LifecycleBinding `yaml:"units"`
	RuntimeLinks []types.LinkBinding      `yaml:"runtime_links,omitempty"`
}

// BuildManifest assembles the manifest for a target environment. Unit
// bindings are environment-independent; runtime links only apply to
// the early-boot environment.
func BuildManifest(ctx types.BuildContext, env types.TargetEnvironment) Manifest {
	m := Manifest{Units: Bindings()}
	if env == types.EnvMinimal {
		m.RuntimeLinks = RuntimeLinks(ctx)
	}
	return m
}

// Marshal renders the manifest as YAML
func (m Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot marshal lifecycle manifest")
	}
	return data, nil
}
