package types

// BuildContext carries everything an assembly pass needs: the
// filesystem to operate on, the build-store root whose paths get
// rewritten, the source directories feeding the repository index, and
// the destination roots for both target environments. It is threaded
// explicitly through every component; there is no process-wide build
// state.
type BuildContext struct {
	// FS is the filesystem all reads and writes go through
	FS FS

	// StoreRoot is the immutable build-store root, e.g. "/blk/store".
	// Absolute references under it embedded in theme descriptors are
	// rewritten to destination-tree paths.
	StoreRoot string

	// ThemesDir is the base themes directory feeding the repository
	// index, before extra theme packages are merged in
	ThemesDir string

	// PluginsDir holds the daemon's renderer and module plugins
	// (opaque .so binaries)
	PluginsDir string

	// FullRoot and MinimalRoot are the disjoint destination roots for
	// the two target environments
	FullRoot    string
	MinimalRoot string

	// RuntimeDir is the writable directory the early-boot fallback
	// links known-good runtime files into
	RuntimeDir string
}

// RootFor returns the destination root for a target environment
func (c BuildContext) RootFor(env TargetEnvironment) string {
	if env == EnvMinimal {
		return c.MinimalRoot
	}
	return c.FullRoot
}
